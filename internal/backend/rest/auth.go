package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// session은 세션 파일에 저장되는 로그인 결과입니다.
type session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *authUser `json:"user"`
}

type authUser struct {
	ID          string    `json:"id"`
	IsAnonymous bool      `json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *authUser) identity() *model.Identity {
	if u == nil || u.ID == "" {
		return nil
	}
	return &model.Identity{UID: u.ID, Anonymous: u.IsAnonymous, CreatedAt: u.CreatedAt}
}

// Auth는 GoTrue 익명 로그인 위에 아이덴티티 제공자를 구현합니다.
// 세션은 SessionFile에 저장되어 재시작 후에도 유지됩니다.
type Auth struct {
	client      *Client
	sessionFile string
	log         *logrus.Entry

	observers backend.Observers

	mu      sync.Mutex
	current *session
}

func NewAuth(client *Client, sessionFile string, log *logrus.Entry) *Auth {
	return &Auth{client: client, sessionFile: sessionFile, log: log}
}

func (a *Auth) Observe(ctx context.Context, fn func(*model.Identity)) (func(), error) {
	unsubscribe := a.observers.Add(fn)

	identity, err := a.restore(ctx)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	fn(identity)
	return unsubscribe, nil
}

// restore: 저장된 세션이 아직 유효한지 /auth/v1/user로 확인합니다.
func (a *Auth) restore(ctx context.Context) (*model.Identity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		return a.current.User.identity(), nil
	}

	saved, err := a.readSession()
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, nil
	}

	a.client.SetAccessToken(saved.AccessToken)
	resp, err := a.client.authRequest(ctx, http.MethodGet, "user", nil)
	if err != nil {
		a.client.SetAccessToken("")
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if err := resp.Error(); err != nil {
		a.client.SetAccessToken("")
		if errors.Is(err, backend.ErrUnauthenticated) {
			// 만료된 세션은 버리고 새로 익명 로그인하게 둠
			a.log.WithError(err).Info("stored session expired")
			a.removeSession()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	var user authUser
	if err := resp.JSON(&user); err != nil {
		a.client.SetAccessToken("")
		return nil, err
	}
	saved.User = &user
	a.current = saved
	return user.identity(), nil
}

func (a *Auth) SignInAnonymously(ctx context.Context) (*model.Identity, error) {
	a.mu.Lock()
	if a.current != nil {
		identity := a.current.User.identity()
		a.mu.Unlock()
		return identity, nil
	}

	a.client.SetAccessToken("")
	resp, err := a.client.authRequest(ctx, http.MethodPost, "signup", map[string]any{"data": map[string]any{}})
	if err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("failed to sign in anonymously: %w", err)
	}
	if err := resp.Error(); err != nil {
		a.mu.Unlock()
		return nil, fmt.Errorf("failed to sign in anonymously: %w", err)
	}

	var s session
	if err := resp.JSON(&s); err != nil {
		a.mu.Unlock()
		return nil, err
	}
	identity := s.User.identity()
	if identity == nil || s.AccessToken == "" {
		a.mu.Unlock()
		return nil, errors.New("failed to sign in anonymously: empty session")
	}

	a.current = &s
	a.client.SetAccessToken(s.AccessToken)
	if err := a.writeSession(&s); err != nil {
		a.log.WithError(err).Warn("could not persist session")
	}
	a.mu.Unlock()

	a.log.WithField("uid", identity.UID).Info("anonymous identity created")
	a.observers.Notify(identity)
	return identity, nil
}

// Refresh: refresh token으로 access token을 갱신합니다. 세션이 없으면 아무 일도 하지 않습니다.
// 서버가 refresh token을 거부하면 세션을 버리고 관찰자에게 nil을 알립니다.
func (a *Auth) Refresh(ctx context.Context) error {
	a.mu.Lock()
	if a.current == nil || a.current.RefreshToken == "" {
		a.mu.Unlock()
		return nil
	}

	resp, err := a.client.authRequest(ctx, http.MethodPost, "token?grant_type=refresh_token",
		map[string]string{"refresh_token": a.current.RefreshToken})
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("failed to refresh session: %w", err)
	}
	if err := resp.Error(); err != nil {
		if !errors.Is(err, backend.ErrUnauthenticated) {
			a.mu.Unlock()
			return fmt.Errorf("failed to refresh session: %w", err)
		}
		uid := a.current.User.ID
		a.current = nil
		a.client.SetAccessToken("")
		a.removeSession()
		a.mu.Unlock()

		a.log.WithField("uid", uid).Warn("refresh token rejected, session dropped")
		a.observers.Notify(nil)
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	var s session
	if err := resp.JSON(&s); err != nil {
		a.mu.Unlock()
		return err
	}
	if s.AccessToken == "" {
		a.mu.Unlock()
		return errors.New("failed to refresh session: empty access token")
	}
	if s.User == nil {
		s.User = a.current.User
	}
	if s.RefreshToken == "" {
		s.RefreshToken = a.current.RefreshToken
	}
	a.current = &s
	a.client.SetAccessToken(s.AccessToken)
	if err := a.writeSession(&s); err != nil {
		a.log.WithError(err).Warn("could not persist session")
	}
	a.mu.Unlock()

	a.log.WithField("uid", s.User.ID).Debug("session refreshed")
	return nil
}

// SignOut: 서버가 이미 세션을 모르더라도(401) 로컬 세션은 정리합니다.
func (a *Auth) SignOut(ctx context.Context) error {
	a.mu.Lock()
	if a.current == nil {
		a.mu.Unlock()
		return nil
	}

	resp, err := a.client.authRequest(ctx, http.MethodPost, "logout", nil)
	if err != nil {
		a.mu.Unlock()
		return fmt.Errorf("failed to end session: %w", err)
	}
	if err := resp.Error(); err != nil && !errors.Is(err, backend.ErrUnauthenticated) {
		a.mu.Unlock()
		return fmt.Errorf("failed to end session: %w", err)
	}

	uid := a.current.User.ID
	a.current = nil
	a.client.SetAccessToken("")
	a.removeSession()
	a.mu.Unlock()

	a.log.WithField("uid", uid).Info("session ended")
	a.observers.Notify(nil)
	return nil
}

func (a *Auth) readSession() (*session, error) {
	if a.sessionFile == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(a.sessionFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	var s session
	if err := json.Unmarshal(raw, &s); err != nil {
		// 깨진 파일은 없는 것으로 취급
		a.log.WithError(err).Warn("ignoring corrupt session file")
		return nil, nil
	}
	if s.AccessToken == "" {
		return nil, nil
	}
	return &s, nil
}

func (a *Auth) writeSession(s *session) error {
	if a.sessionFile == "" {
		return nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return os.WriteFile(a.sessionFile, raw, 0o600)
}

func (a *Auth) removeSession() {
	if a.sessionFile == "" {
		return
	}
	if err := os.Remove(a.sessionFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		a.log.WithError(err).Warn("could not remove session file")
	}
}
