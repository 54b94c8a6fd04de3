// Package backend는 외부 관리형 백엔드(익명 아이덴티티 제공자 + 문서 스토어)와의 경계입니다.
package backend

import (
	"context"
	"errors"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

const (
	CollectionRestaurants  = "restaurants"
	CollectionReservations = "reservations"
)

var (
	// ErrUnauthenticated: 세션 없이 쓰기를 시도했거나 세션이 만료됨
	ErrUnauthenticated = errors.New("backend: unauthenticated")
	ErrNotFound        = errors.New("backend: not found")
)

// IdentityProvider: observe-identity-changes / create-anonymous-identity / end-session
type IdentityProvider interface {
	// Observe: 현재 아이덴티티(없으면 nil)를 즉시 한 번 전달하고 이후 변경마다 다시 호출합니다.
	// 반환된 함수로 구독을 해제합니다.
	Observe(ctx context.Context, fn func(*model.Identity)) (unsubscribe func(), err error)
	SignInAnonymously(ctx context.Context) (*model.Identity, error)
	SignOut(ctx context.Context) error
}

// DocumentStore: fetch-collection("restaurants") / create-record("reservations")
type DocumentStore interface {
	FetchRestaurants(ctx context.Context) ([]model.Restaurant, error)
	// CreateReservation: 새 레코드 id를 돌려줍니다. 생성 시각은 스토어가 기록합니다.
	CreateReservation(ctx context.Context, reservation model.Reservation) (string, error)
}

// Backend: 세션 전체에서 공유하는 백엔드 핸들
type Backend struct {
	Identity IdentityProvider
	Store    DocumentStore
	// Close: 연결 해제, nil일 수 있음
	Close func() error
	// Refresh: 세션 토큰 갱신, 만료가 없는 백엔드는 nil
	Refresh func(ctx context.Context) error
}
