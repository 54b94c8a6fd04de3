package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

type ReservationRepository interface {
	// 예약 레코드를 reservations 테이블에 추가, ID와 CreatedAt은 호출자가 채움
	Create(ctx context.Context, reservation *model.Reservation) error
	// 없으면 nil, nil
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	CountByRestaurant(ctx context.Context, restaurantID string) (int, error)
}

type ReservationRepoImpl struct {
	DB *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) ReservationRepository {
	return &ReservationRepoImpl{DB: db}
}

func (r *ReservationRepoImpl) Create(ctx context.Context, reservation *model.Reservation) error {
	if reservation.ID == "" {
		return errors.New("reservation id is required")
	}
	if reservation.CreatedAt.IsZero() {
		return errors.New("reservation created_at is required")
	}

	query := `
	INSERT INTO reservations (
	id,
	restaurant_id,
	user_name,
	date,
	time,
	number_of_people,
	user_id,
	created_at
	) VALUES (:id, :restaurant_id, :user_name, :date, :time, :number_of_people, :user_id, :created_at)`

	if _, err := r.DB.NamedExecContext(ctx, query, reservation); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepoImpl) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	query := `
	SELECT id, restaurant_id, user_name, date, time, number_of_people, user_id, created_at
	FROM reservations
	WHERE id = ?`

	reservation := &model.Reservation{}
	if err := r.DB.GetContext(ctx, reservation, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return reservation, nil
}

func (r *ReservationRepoImpl) CountByRestaurant(ctx context.Context, restaurantID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reservations WHERE restaurant_id = ?`
	if err := r.DB.GetContext(ctx, &count, query, restaurantID); err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}
