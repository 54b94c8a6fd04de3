// Package tui는 ReservaMesa 터미널 클라이언트입니다.
//
// bubbletea의 이벤트 루프가 단일 스레드 루프 역할을 합니다. 원격 호출은 tea.Cmd로
// 실행되고, 결과는 메시지로 돌아와 Update 안에서만 뷰 상태를 바꿉니다.
package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
	"github.com/adriana13032025/sistema-reservas-fase1/service"
)

const (
	msgSigningOut = "Cerrando sesión..."
	msgSignedOut  = "Sesión cerrada. Se intentará iniciar sesión anónima de nuevo."
)

type detailTab int

const (
	tabDetails detailTab = iota
	tabMenu
)

// 예약 폼 입력 순서
const (
	fieldName = iota
	fieldDate
	fieldTime
	fieldPeople
	fieldCount
)

// Model: 화면 전체 상태
type Model struct {
	svc     *service.ReservationService
	log     *logrus.Entry
	ctx     context.Context
	cancel  context.CancelFunc
	updates chan service.SessionState

	session service.SessionState
	catalog service.CatalogState
	nav     service.Navigator

	// 홈 화면
	search     textinput.Model
	cuisineIdx int
	cursor     int

	// 상세 화면
	tab     detailTab
	inputs  []textinput.Model
	focus   int
	desk    service.ReservationDesk
	formGen int // 상세 화면을 열고 닫을 때마다 증가

	notice  string
	spinner spinner.Model

	width    int
	height   int
	quitting bool
}

func New(ctx context.Context, svc *service.ReservationService, log *logrus.Entry) Model {
	ctx, cancel := context.WithCancel(ctx)

	search := textinput.New()
	search.Placeholder = "Buscar por nombre del restaurante..."
	search.Prompt = "🔍 "
	search.CharLimit = 80
	search.Width = 40
	search.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = infoStyle

	return Model{
		svc:     svc,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		updates: make(chan service.SessionState),
		nav:     service.NewNavigator(),
		search:  search,
		inputs:  newFormInputs(),
		spinner: sp,
	}
}

func newFormInputs() []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Width = 30
		switch i {
		case fieldName:
			ti.Placeholder = "Tu Nombre"
			ti.Prompt = "Nombre:   "
			ti.CharLimit = 60
		case fieldDate:
			ti.Placeholder = "AAAA-MM-DD"
			ti.Prompt = "Fecha:    "
			ti.CharLimit = 10
		case fieldTime:
			ti.Placeholder = "HH:MM"
			ti.Prompt = "Hora:     "
			ti.CharLimit = 5
		case fieldPeople:
			ti.Prompt = "Personas: "
			ti.CharLimit = 3
		}
		inputs[i] = ti
	}
	return inputs
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startSession(m.ctx, m.svc, m.updates),
		waitForSession(m.ctx, m.updates),
		m.spinner.Tick,
		textinput.Blink,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionMsg:
		return m.handleSession(msg.State)

	case catalogMsg:
		return m.handleCatalog(msg.State), nil

	case submitMsg:
		return m.handleSubmit(msg), nil

	case signOutMsg:
		if msg.Err != nil {
			m.notice = service.Message(msg.Err)
			return m, nil
		}
		m.notice = msgSignedOut
		if m.nav.ProfileOpen() {
			m.nav = m.nav.ToggleProfile()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleSession(st service.SessionState) (Model, tea.Cmd) {
	m.session = st
	cmds := []tea.Cmd{waitForSession(m.ctx, m.updates)}

	if m.svc.Catalog.Activate(st) {
		cmds = append(cmds, loadCatalog(m.ctx, m.svc.Catalog, st.Identity))
	}
	m.catalog = m.svc.Catalog.State()

	if st.Err != nil {
		m.log.WithError(st.Err).Warn("session error")
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleCatalog(st service.CatalogState) Model {
	m.catalog = st

	_, wasDetail := m.nav.Selected()
	m.nav = m.nav.Reconcile(st.Restaurants)
	if _, isDetail := m.nav.Selected(); wasDetail && !isDetail {
		m = m.leaveDetail()
	}

	if m.cuisineIdx >= len(service.Cuisines(st.Restaurants)) {
		m.cuisineIdx = 0
	}
	m.clampCursor()
	return m
}

func (m Model) handleSubmit(msg submitMsg) Model {
	if msg.Form != m.formGen || msg.RestaurantID != m.desk.RestaurantID || !m.desk.Submitting {
		m.log.WithFields(logrus.Fields{
			"restaurant_id": msg.RestaurantID,
			"form":          msg.Form,
		}).Debug("dropping result for closed reservation form")
		return m
	}
	m.desk.Finish(msg.Ack, msg.Err)
	if m.desk.Success {
		m.setFormInputs(m.desk.Form)
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}

	if !m.session.Ready {
		return m, nil
	}
	m.notice = ""

	switch msg.String() {
	case "ctrl+p":
		m.nav = m.nav.ToggleProfile()
		return m, nil
	case "ctrl+o":
		if m.nav.ProfileOpen() {
			m.notice = msgSigningOut
			return m, signOut(m.ctx, m.svc.Session)
		}
		return m, nil
	}

	if m.nav.ProfileOpen() {
		if msg.String() == "esc" {
			m.nav = m.nav.ToggleProfile()
		}
		return m, nil
	}

	switch m.nav.Screen().(type) {
	case service.DetailScreen:
		return m.handleDetailKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.cuisineIdx = (m.cuisineIdx + 1) % len(m.cuisines())
		m.cursor = 0
		return m, nil
	case "shift+tab":
		n := len(m.cuisines())
		m.cuisineIdx = (m.cuisineIdx - 1 + n) % n
		m.cursor = 0
		return m, nil
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		m.cursor++
		m.clampCursor()
		return m, nil
	case "enter":
		visible := m.visible()
		if m.cursor < len(visible) {
			return m.openDetail(&visible[m.cursor])
		}
		return m, nil
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != prev {
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.nav = m.nav.Back()
		return m.leaveDetail(), nil
	case "ctrl+t":
		if m.tab == tabDetails {
			m.tab = tabMenu
		} else {
			m.tab = tabDetails
		}
		return m, nil
	case "tab", "down":
		return m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return m.focusField((m.focus - 1 + fieldCount) % fieldCount)
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.focus == fieldCount-1 {
			return m.submit()
		}
		return m.focusField(m.focus + 1)
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.desk.Form = m.formFromInputs()
	return m, cmd
}

func (m Model) openDetail(r *model.Restaurant) (tea.Model, tea.Cmd) {
	m.nav = m.nav.Select(r)
	m.formGen++
	m.desk = service.NewReservationDesk(r.ID)
	m.tab = tabDetails
	m.inputs = newFormInputs()
	m.setFormInputs(m.desk.Form)
	m.search.Blur()
	return m.focusField(fieldName)
}

// leaveDetail: 홈으로 돌아올 때 폼 포커스를 정리합니다. 진행 중인 제출 결과는 버려집니다.
func (m Model) leaveDetail() Model {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.formGen++
	m.desk = service.ReservationDesk{}
	m.search.Focus()
	return m
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	restaurant, ok := m.nav.Selected()
	if !ok {
		return m, nil
	}
	m.desk.Form = m.formFromInputs()
	form, ok := m.desk.Begin()
	if !ok {
		return m, nil
	}
	return m, submitReservation(m.ctx, m.svc.Submitter, m.formGen, restaurant.ID, form, m.session.Identity)
}

// formFromInputs: 인원수가 숫자가 아니면 0으로 두어 검증에서 걸러지게 합니다.
func (m Model) formFromInputs() service.ReservationForm {
	people, err := strconv.Atoi(strings.TrimSpace(m.inputs[fieldPeople].Value()))
	if err != nil {
		people = 0
	}
	return service.ReservationForm{
		Name:      m.inputs[fieldName].Value(),
		Date:      m.inputs[fieldDate].Value(),
		Time:      m.inputs[fieldTime].Value(),
		PartySize: people,
	}
}

func (m Model) setFormInputs(form service.ReservationForm) {
	m.inputs[fieldName].SetValue(form.Name)
	m.inputs[fieldDate].SetValue(form.Date)
	m.inputs[fieldTime].SetValue(form.Time)
	m.inputs[fieldPeople].SetValue(strconv.Itoa(form.PartySize))
}

func (m Model) cuisines() []string {
	return service.Cuisines(m.catalog.Restaurants)
}

func (m Model) query() service.CatalogQuery {
	cuisines := m.cuisines()
	cuisine := service.AllCuisines
	if m.cuisineIdx < len(cuisines) {
		cuisine = cuisines[m.cuisineIdx]
	}
	return service.CatalogQuery{Search: m.search.Value(), Cuisine: cuisine}
}

func (m Model) visible() []model.Restaurant {
	return service.Filter(m.catalog.Restaurants, m.query())
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
