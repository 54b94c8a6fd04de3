package local

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/repository"
)

// Store는 문서 스토어를 SQLite 저장소 위에 구현합니다.
type Store struct {
	RestaurantRepo  repository.RestaurantRepository
	ReservationRepo repository.ReservationRepository
	IdentityRepo    repository.IdentityRepository

	now func() time.Time
	log *logrus.Entry
}

func NewStore(
	restaurantRepo repository.RestaurantRepository,
	reservationRepo repository.ReservationRepository,
	identityRepo repository.IdentityRepository,
	log *logrus.Entry,
) *Store {
	return &Store{
		RestaurantRepo:  restaurantRepo,
		ReservationRepo: reservationRepo,
		IdentityRepo:    identityRepo,
		now:             func() time.Time { return time.Now().UTC() },
		log:             log,
	}
}

func (s *Store) FetchRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.RestaurantRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", backend.CollectionRestaurants, err)
	}
	return restaurants, nil
}

// CreateReservation: 활성 익명 아이덴티티라면 누구나 쓸 수 있습니다.
func (s *Store) CreateReservation(ctx context.Context, reservation model.Reservation) (string, error) {
	if reservation.UserID == "" {
		return "", backend.ErrUnauthenticated
	}
	owner, err := s.IdentityRepo.FindByUID(ctx, reservation.UserID)
	if err != nil {
		return "", fmt.Errorf("failed to check identity: %w", err)
	}
	if owner == nil || owner.EndedAt != nil {
		return "", backend.ErrUnauthenticated
	}

	reservation.ID = uuid.NewString()
	reservation.CreatedAt = s.now()
	if err := s.ReservationRepo.Create(ctx, &reservation); err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", backend.CollectionReservations, err)
	}

	s.log.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"restaurant_id":  reservation.RestaurantID,
		"people":         reservation.NumberOfPeople,
	}).Info("reservation stored")
	return reservation.ID, nil
}
