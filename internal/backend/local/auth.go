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

// Auth는 identities 테이블 위에 익명 아이덴티티 제공자를 구현합니다.
// 활성 아이덴티티는 로그아웃 전까지 프로세스 재시작 후에도 유지됩니다.
type Auth struct {
	Identities repository.IdentityRepository

	observers backend.Observers
	now       func() time.Time
	log       *logrus.Entry
}

func NewAuth(identities repository.IdentityRepository, log *logrus.Entry) *Auth {
	return &Auth{
		Identities: identities,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

func (a *Auth) Observe(ctx context.Context, fn func(*model.Identity)) (func(), error) {
	unsubscribe := a.observers.Add(fn)

	current, err := a.Identities.FindActive(ctx)
	if err != nil {
		unsubscribe()
		return nil, fmt.Errorf("failed to read current identity: %w", err)
	}
	fn(current)
	return unsubscribe, nil
}

// SignInAnonymously: 이미 활성 아이덴티티가 있으면 그대로 돌려줍니다.
func (a *Auth) SignInAnonymously(ctx context.Context) (*model.Identity, error) {
	current, err := a.Identities.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read current identity: %w", err)
	}
	if current != nil {
		return current, nil
	}

	identity := &model.Identity{
		UID:       uuid.NewString(),
		Anonymous: true,
		CreatedAt: a.now(),
	}
	if err := a.Identities.Create(ctx, identity); err != nil {
		return nil, fmt.Errorf("failed to create anonymous identity: %w", err)
	}
	a.log.WithField("uid", identity.UID).Info("anonymous identity created")

	a.observers.Notify(identity)
	return identity, nil
}

// SignOut: 활성 세션이 없으면 아무 일도 하지 않습니다.
func (a *Auth) SignOut(ctx context.Context) error {
	current, err := a.Identities.FindActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current identity: %w", err)
	}
	if current == nil {
		return nil
	}
	if err := a.Identities.End(ctx, current.UID, a.now()); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	a.log.WithField("uid", current.UID).Info("session ended")

	a.observers.Notify(nil)
	return nil
}

// Subscribers: 활성 구독 수 (테스트/진단용)
func (a *Auth) Subscribers() int {
	return a.observers.Len()
}
