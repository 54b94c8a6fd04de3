package service

import (
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// Screen: HomeScreen | DetailScreen
type Screen interface {
	screen()
}

type HomeScreen struct{}

// DetailScreen은 선택된 식당을 담고 있으므로 "detail이면 선택이 있다"가 타입으로 보장됩니다.
type DetailScreen struct {
	Restaurant model.Restaurant
}

func (HomeScreen) screen()   {}
func (DetailScreen) screen() {}

// Navigator: 현재 화면 + 프로필 패널 열림 여부. 값 타입이라 전이는 새 값을 돌려줍니다.
type Navigator struct {
	current     Screen
	profileOpen bool
}

func NewNavigator() Navigator {
	return Navigator{current: HomeScreen{}}
}

func (n Navigator) Screen() Screen {
	if n.current == nil {
		return HomeScreen{}
	}
	return n.current
}

// Selected: detail 화면일 때만 식당을 돌려줍니다.
func (n Navigator) Selected() (model.Restaurant, bool) {
	if d, ok := n.current.(DetailScreen); ok {
		return d.Restaurant, true
	}
	return model.Restaurant{}, false
}

func (n Navigator) ProfileOpen() bool {
	return n.profileOpen
}

// Select: nil이면 아무 일도 없음. detail 화면에서 호출하면 선택만 바뀝니다.
func (n Navigator) Select(r *model.Restaurant) Navigator {
	if r == nil {
		return n
	}
	n.current = DetailScreen{Restaurant: *r}
	return n
}

func (n Navigator) Back() Navigator {
	n.current = HomeScreen{}
	return n
}

func (n Navigator) ToggleProfile() Navigator {
	n.profileOpen = !n.profileOpen
	return n
}

// Reconcile: 카탈로그를 다시 불러온 뒤 선택된 식당이 사라졌으면 홈으로 돌아갑니다.
// 아직 있으면 새 카탈로그의 값으로 갱신합니다.
func (n Navigator) Reconcile(restaurants []model.Restaurant) Navigator {
	selected, ok := n.Selected()
	if !ok {
		return n
	}
	for _, r := range restaurants {
		if r.ID == selected.ID {
			n.current = DetailScreen{Restaurant: r}
			return n
		}
	}
	return n.Back()
}
