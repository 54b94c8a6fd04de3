// Package local은 관리형 백엔드를 로컬 SQLite 파일로 흉내 냅니다.
package local

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/db"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/repository"
)

// Open: DB를 초기화하고 Repository, Auth, Store를 연결합니다.
func Open(ctx context.Context, path string, log *logrus.Entry) (*backend.Backend, *sqlx.DB, error) {
	conn, err := db.Init(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return New(conn, log), conn, nil
}

// New: 이미 열린 연결 위에 백엔드를 구성합니다.
func New(conn *sqlx.DB, log *logrus.Entry) *backend.Backend {
	identityRepo := repository.NewIdentityRepository(conn)
	restaurantRepo := repository.NewRestaurantRepository(conn)
	reservationRepo := repository.NewReservationRepository(conn)

	return &backend.Backend{
		Identity: NewAuth(identityRepo, log.WithField("component", "local-auth")),
		Store:    NewStore(restaurantRepo, reservationRepo, identityRepo, log.WithField("component", "local-store")),
		Close:    conn.Close,
	}
}
