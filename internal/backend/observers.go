package backend

import (
	"slices"
	"sync"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// Observers는 아이덴티티 변경 콜백 목록입니다. 두 백엔드 구현이 같이 씁니다.
type Observers struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(*model.Identity)
}

// Add: 콜백을 등록하고 해제 함수를 돌려줍니다. 해제는 여러 번 호출해도 됩니다.
func (o *Observers) Add(fn func(*model.Identity)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.handlers == nil {
		o.handlers = make(map[int]func(*model.Identity))
	}
	id := o.nextID
	o.nextID++
	o.handlers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.handlers, id)
			o.mu.Unlock()
		})
	}
}

// Notify: 등록 순서대로 콜백을 호출합니다. 락은 호출 전에 풀어서
// 콜백 안에서 다시 로그인해도 교착되지 않습니다.
func (o *Observers) Notify(identity *model.Identity) {
	o.mu.RLock()
	ids := make([]int, 0, len(o.handlers))
	for id := range o.handlers {
		ids = append(ids, id)
	}
	handlers := make([]func(*model.Identity), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		handlers = append(handlers, o.handlers[id])
	}
	o.mu.RUnlock()

	for _, fn := range handlers {
		var snapshot *model.Identity
		if identity != nil {
			copied := *identity
			snapshot = &copied
		}
		fn(snapshot)
	}
}

// Len: 활성 구독 수
func (o *Observers) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.handlers)
}
