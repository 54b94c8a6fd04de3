package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// fakeProvider는 메모리 안에서 익명 로그인을 흉내 냅니다.
type fakeProvider struct {
	observers backend.Observers

	mu         sync.Mutex
	current    *model.Identity
	signIns    int
	signInErr  error
	signOutErr error
	observeErr error
	nextUID    int
}

func (p *fakeProvider) Observe(ctx context.Context, fn func(*model.Identity)) (func(), error) {
	if p.observeErr != nil {
		return nil, p.observeErr
	}
	unsubscribe := p.observers.Add(fn)
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	fn(current)
	return unsubscribe, nil
}

func (p *fakeProvider) SignInAnonymously(ctx context.Context) (*model.Identity, error) {
	p.mu.Lock()
	p.signIns++
	if p.signInErr != nil {
		p.mu.Unlock()
		return nil, p.signInErr
	}
	p.nextUID++
	identity := &model.Identity{UID: fmt.Sprintf("anon-%02d-0000", p.nextUID), Anonymous: true}
	p.current = identity
	p.mu.Unlock()

	p.observers.Notify(identity)
	return identity, nil
}

func (p *fakeProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	if p.signOutErr != nil {
		p.mu.Unlock()
		return p.signOutErr
	}
	p.current = nil
	p.mu.Unlock()

	p.observers.Notify(nil)
	return nil
}

func (p *fakeProvider) signInCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signIns
}

// fakeStore는 호출 기록을 남기는 문서 스토어입니다.
type fakeStore struct {
	mu          sync.Mutex
	restaurants []model.Restaurant
	fetchErr    error
	createErr   error
	fetches     int
	created     []model.Reservation

	// fetchHook: FetchRestaurants 도중에 실행 (경쟁 상황 재현용)
	fetchHook func()
}

func (s *fakeStore) FetchRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	s.mu.Lock()
	s.fetches++
	hook := s.fetchHook
	restaurants := append([]model.Restaurant(nil), s.restaurants...)
	err := s.fetchErr
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *fakeStore) CreateReservation(ctx context.Context, r model.Reservation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, r)
	return fmt.Sprintf("res-%d", len(s.created)), nil
}

func (s *fakeStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.created)
}

var errRemote = errors.New("remote unavailable")

func sampleCatalog() []model.Restaurant {
	return []model.Restaurant{
		{ID: "rest_1", Name: "El Buen Sabor", Cuisine: "Mexicana", Rating: 4.8},
		{ID: "rest_2", Name: "Sushi Zen", Cuisine: "Japonesa", Rating: 4.5},
	}
}
