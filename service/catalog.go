package service

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// CatalogState: {restaurants, loading, error}
type CatalogState struct {
	Restaurants []model.Restaurant
	Loading     bool
	// Err는 LoadError 종류의 *Error
	Err error
}

// CatalogLoader는 아이덴티티가 정해진 뒤 식당 컬렉션을 한 번 가져옵니다.
// 자동 재시도는 없고, 아이덴티티가 바뀔 때만 다시 가져옵니다.
type CatalogLoader struct {
	store backend.DocumentStore
	log   *logrus.Entry

	mu        sync.Mutex
	state     CatalogState
	activeUID string // 가장 최근에 로딩을 시작한 아이덴티티
}

func NewCatalogLoader(store backend.DocumentStore, log *logrus.Entry) *CatalogLoader {
	return &CatalogLoader{store: store, log: log}
}

// Activate: 세션 상태를 보고 새 로딩이 필요한지 결정합니다.
// true면 Loading으로 표시하고 호출자가 Load를 실행해야 합니다.
func (l *CatalogLoader) Activate(session SessionState) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !session.HasIdentity() {
		// 로그아웃 중에는 이후 도착하는 결과를 버림
		l.activeUID = ""
		l.state.Loading = false
		return false
	}
	if session.Identity.UID == l.activeUID {
		return false
	}
	l.activeUID = session.Identity.UID
	l.state.Loading = true
	l.state.Err = nil
	return true
}

// Load: 컬렉션 전체를 가져와서 목록을 통째로 교체합니다.
// 도중에 아이덴티티가 바뀌었다면 결과는 버리고 현재 상태를 돌려줍니다.
func (l *CatalogLoader) Load(ctx context.Context, identity *model.Identity) CatalogState {
	uid := ""
	if identity != nil {
		uid = identity.UID
	}

	restaurants, err := l.store.FetchRestaurants(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if uid == "" || uid != l.activeUID {
		l.log.WithField("uid", uid).Debug("discarding catalog result for stale identity")
		return l.snapshot()
	}

	l.state.Loading = false
	if err != nil {
		l.log.WithError(err).Error("catalog load failed")
		l.state.Restaurants = nil
		l.state.Err = newError(LoadError, "fetch restaurants", err)
		return l.snapshot()
	}

	l.state.Restaurants = restaurants
	l.state.Err = nil
	l.log.WithField("count", len(restaurants)).Info("catalog loaded")
	return l.snapshot()
}

func (l *CatalogLoader) State() CatalogState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *CatalogLoader) snapshot() CatalogState {
	st := l.state
	if st.Restaurants != nil {
		st.Restaurants = append([]model.Restaurant(nil), st.Restaurants...)
	}
	return st
}
