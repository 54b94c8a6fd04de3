package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
	"github.com/adriana13032025/sistema-reservas-fase1/service"
)

// 이벤트 루프로 돌아오는 메시지들. 뷰 상태는 Update 안에서만 바뀝니다.

type sessionMsg struct {
	State service.SessionState
}

type catalogMsg struct {
	State service.CatalogState
}

// submitMsg: Form은 제출 당시 폼의 세대 번호
type submitMsg struct {
	RestaurantID string
	Form         int
	Ack          service.Ack
	Err          error
}

type signOutMsg struct {
	Err error
}

// startSession: 구독을 시작하고, 변경 알림을 updates 채널로 넘깁니다.
func startSession(ctx context.Context, svc *service.ReservationService, updates chan<- service.SessionState) tea.Cmd {
	return func() tea.Msg {
		// 실패해도 AuthError 상태가 채널로 전달됨
		_ = svc.Session.Start(ctx, func(st service.SessionState) {
			select {
			case updates <- st:
			case <-ctx.Done():
			}
		})
		return nil
	}
}

// waitForSession: 다음 세션 변경을 기다립니다. 처리 후 다시 등록해야 합니다.
func waitForSession(ctx context.Context, updates <-chan service.SessionState) tea.Cmd {
	return func() tea.Msg {
		select {
		case st := <-updates:
			return sessionMsg{State: st}
		case <-ctx.Done():
			return nil
		}
	}
}

func loadCatalog(ctx context.Context, loader *service.CatalogLoader, identity *model.Identity) tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{State: loader.Load(ctx, identity)}
	}
}

func submitReservation(ctx context.Context, submitter *service.Submitter, gen int, restaurantID string, form service.ReservationForm, identity *model.Identity) tea.Cmd {
	return func() tea.Msg {
		ack, err := submitter.Submit(ctx, restaurantID, form, identity)
		return submitMsg{RestaurantID: restaurantID, Form: gen, Ack: ack, Err: err}
	}
}

func signOut(ctx context.Context, session *service.Session) tea.Cmd {
	return func() tea.Msg {
		return signOutMsg{Err: session.SignOut(ctx)}
	}
}
