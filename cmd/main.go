package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend/local"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend/rest"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/config"
	"github.com/adriana13032025/sistema-reservas-fase1/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// system: 명령 하나가 쓰는 백엔드와 서비스 묶음
type system struct {
	backend *backend.Backend
	conn    *sqlx.DB // local 백엔드일 때만
	svc     *service.ReservationService
	log     *logrus.Entry
}

// initSystem: 설정에 맞는 백엔드를 열고 Service를 연결합니다.
func initSystem(ctx context.Context, cfg config.Config, log *logrus.Logger) (*system, error) {
	entry := logrus.NewEntry(log).WithField("backend", cfg.Backend)

	sys := &system{log: entry}
	switch cfg.Backend {
	case config.BackendREST:
		b, err := rest.Open(rest.Config{
			URL:     cfg.BackendURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.HTTPTimeout,
		}, cfg.SessionFile, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to open rest backend: %w", err)
		}
		sys.backend = b
	default:
		b, conn, err := local.Open(ctx, cfg.DBPath, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to open local backend: %w", err)
		}
		sys.backend = b
		sys.conn = conn
	}

	sys.svc = service.NewReservationService(sys.backend, entry)
	return sys, nil
}

func (s *system) Close() {
	s.svc.Close()
	if s.backend.Close != nil {
		if err := s.backend.Close(); err != nil {
			s.log.WithError(err).Warn("failed to close backend")
		}
	}
}
