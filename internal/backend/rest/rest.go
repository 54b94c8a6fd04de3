package rest

import (
	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
)

// Open: REST 클라이언트 하나를 Auth와 Store가 공유합니다 (세션 토큰 공유).
func Open(cfg Config, sessionFile string, log *logrus.Entry) (*backend.Backend, error) {
	client, err := New(cfg)
	if err != nil {
		return nil, err
	}
	auth := NewAuth(client, sessionFile, log.WithField("component", "rest-auth"))
	return &backend.Backend{
		Identity: auth,
		Store:    NewStore(client, log.WithField("component", "rest-store")),
		Refresh:  auth.Refresh,
	}, nil
}
