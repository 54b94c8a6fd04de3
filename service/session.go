package service

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// SessionState: {identity, ready, error}
type SessionState struct {
	Identity *model.Identity
	Ready    bool
	// Err는 AuthError 종류의 *Error
	Err error
}

// HasIdentity: 카탈로그 로딩 조건 (ready && identity != nil)
func (s SessionState) HasIdentity() bool {
	return s.Ready && s.Identity != nil
}

func (s SessionState) uid() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.UID
}

// Session은 아이덴티티 제공자 구독을 하나만 유지하면서 현재 익명 사용자를 추적합니다.
type Session struct {
	provider backend.IdentityProvider
	log      *logrus.Entry

	mu          sync.Mutex
	ctx         context.Context
	state       SessionState
	onChange    func(SessionState)
	unsubscribe func()
	started     bool
	closed      bool

	ready     chan struct{}
	readyOnce sync.Once
}

func NewSession(provider backend.IdentityProvider, log *logrus.Entry) *Session {
	return &Session{
		provider: provider,
		log:      log,
		ready:    make(chan struct{}),
	}
}

// Start: 아이덴티티 변경 구독을 시작합니다. onChange는 상태가 바뀔 때마다 호출되며 nil이어도 됩니다.
func (s *Session) Start(ctx context.Context, onChange func(SessionState)) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return errors.New("session already started")
	}
	s.started = true
	s.ctx = ctx
	s.onChange = onChange
	s.mu.Unlock()

	unsubscribe, err := s.provider.Observe(ctx, s.handle)
	if err != nil {
		authErr := newError(AuthError, "observe identity", err)
		s.log.WithError(err).Error("could not subscribe to identity changes")
		s.set(SessionState{Ready: true, Err: authErr})
		return authErr
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		unsubscribe()
		return nil
	}
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
	return nil
}

// handle: 구독 콜백. 아이덴티티가 없으면 익명 로그인을 한 번 요청합니다.
func (s *Session) handle(identity *model.Identity) {
	s.mu.Lock()
	closed := s.closed
	ctx := s.ctx
	current := s.state
	s.mu.Unlock()
	if closed {
		return
	}

	if identity != nil {
		s.set(SessionState{Identity: identity, Ready: true})
		return
	}

	// 로그아웃 직후: 이전 아이덴티티는 버리고 준비 상태는 그대로 둠
	s.set(SessionState{Ready: current.Ready})

	created, err := s.provider.SignInAnonymously(ctx)
	if err != nil {
		s.log.WithError(err).Error("anonymous sign-in failed")
		s.set(SessionState{Ready: true, Err: newError(AuthError, "sign in anonymously", err)})
		return
	}
	s.set(SessionState{Identity: created, Ready: true})
}

func (s *Session) set(next SessionState) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	prev := s.state
	s.state = next
	onChange := s.onChange
	s.mu.Unlock()

	if next.Ready {
		s.readyOnce.Do(func() { close(s.ready) })
	}
	if sameSession(prev, next) {
		return
	}
	if next.Identity != nil && prev.uid() != next.uid() {
		s.log.WithField("uid", next.Identity.UID).Info("identity adopted")
	}
	if onChange != nil {
		onChange(next)
	}
}

func sameSession(a, b SessionState) bool {
	return a.Ready == b.Ready && a.uid() == b.uid() && a.Err == nil && b.Err == nil
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ready: 첫 번째로 ready 상태가 되면 닫히는 채널
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// WaitReady: 헤드리스 명령(CLI)용
func (s *Session) WaitReady(ctx context.Context) (SessionState, error) {
	select {
	case <-s.ready:
		return s.State(), nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// SignOut: 원격 세션을 끝냅니다. 성공하면 구독 콜백이 새 익명 아이덴티티를 만듭니다.
func (s *Session) SignOut(ctx context.Context) error {
	if err := s.provider.SignOut(ctx); err != nil {
		s.log.WithError(err).Error("sign-out failed")
		return newError(AuthError, "sign out", err)
	}
	return nil
}

// Close: 구독을 해제합니다. 여러 번 호출해도 됩니다.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
