package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// ReservationService는 세션, 카탈로그, 예약 제출을 묶어 헤드리스 명령(CLI)에서 씁니다.
// TUI는 같은 컴포넌트를 직접 이벤트 루프에 연결합니다.
type ReservationService struct {
	Session   *Session
	Catalog   *CatalogLoader
	Submitter *Submitter
}

func NewReservationService(b *backend.Backend, log *logrus.Entry) *ReservationService {
	return &ReservationService{
		Session:   NewSession(b.Identity, log.WithField("component", "session")),
		Catalog:   NewCatalogLoader(b.Store, log.WithField("component", "catalog")),
		Submitter: NewSubmitter(b.Store, log.WithField("component", "reservation")),
	}
}

// Connect: 세션을 시작하고 ready가 될 때까지 기다립니다. 인증 실패는 AuthError로 돌려줍니다.
func (s *ReservationService) Connect(ctx context.Context) (SessionState, error) {
	if err := s.Session.Start(ctx, nil); err != nil {
		return s.Session.State(), err
	}
	st, err := s.Session.WaitReady(ctx)
	if err != nil {
		return st, err
	}
	return st, st.Err
}

// FindRestaurants: 카탈로그를 불러와 검색어/요리로 거른 목록
func (s *ReservationService) FindRestaurants(ctx context.Context, query CatalogQuery) ([]model.Restaurant, error) {
	st := s.Session.State()
	if !st.HasIdentity() {
		return nil, newError(LoadError, "fetch restaurants", backend.ErrUnauthenticated)
	}

	var catalog CatalogState
	if s.Catalog.Activate(st) {
		catalog = s.Catalog.Load(ctx, st.Identity)
	} else {
		catalog = s.Catalog.State()
	}
	if catalog.Err != nil {
		return nil, catalog.Err
	}
	return Filter(catalog.Restaurants, query), nil
}

// Reserve: 현재 아이덴티티로 예약을 제출합니다.
func (s *ReservationService) Reserve(ctx context.Context, restaurantID string, form ReservationForm) (Ack, error) {
	return s.Submitter.Submit(ctx, restaurantID, form, s.Session.State().Identity)
}

func (s *ReservationService) Close() {
	s.Session.Close()
}
