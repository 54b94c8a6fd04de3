package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
	"github.com/adriana13032025/sistema-reservas-fase1/service"
)

const (
	msgConnecting     = "Conectando con la base de datos..."
	msgLoading        = "Cargando restaurantes..."
	msgNoResults      = "No se encontraron restaurantes que coincidan con la búsqueda."
	msgMenuEmpty      = "Menú no disponible."
	msgSubmitting     = "Guardando Reserva..."
	msgSubmitButton   = "Confirmar Reserva (ctrl+s)"
	msgProfileHelp    = "ctrl+p perfil"
	msgProfileActions = "ctrl+o Cerrar Sesión (Anónima) · esc cerrar"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.session.Ready {
		return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), infoStyle.Render(msgConnecting))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.session.Err != nil {
		b.WriteString(errorStyle.Render(service.Message(m.session.Err)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(infoStyle.Render(m.notice))
		b.WriteString("\n")
	}

	switch {
	case m.nav.ProfileOpen():
		b.WriteString(m.renderProfile())
	default:
		if restaurant, ok := m.nav.Selected(); ok {
			b.WriteString(m.renderDetail(restaurant))
		} else {
			b.WriteString(m.renderHome())
		}
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		brandStyle.Render("ReservaMesa"),
		"  ",
		mutedStyle.Render(msgProfileHelp),
	)
}

func (m Model) renderHome() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Encuentra tu mesa ideal"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	b.WriteString(mutedStyle.Render("Filtrar por Cocina:"))
	b.WriteString(" ")
	for i, cuisine := range m.cuisines() {
		if i == m.cuisineIdx {
			b.WriteString(activeChipStyle.Render(cuisine))
		} else {
			b.WriteString(chipStyle.Render(cuisine))
		}
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Restaurantes Disponibles"))
	b.WriteString("\n")

	switch {
	case m.catalog.Loading:
		b.WriteString(m.spinner.View() + " " + infoStyle.Render(msgLoading))
	case m.catalog.Err != nil:
		b.WriteString(errorStyle.Render(service.Message(m.catalog.Err)))
	default:
		visible := m.visible()
		if len(visible) == 0 {
			b.WriteString(mutedStyle.Render(msgNoResults))
			break
		}
		for i, r := range visible {
			b.WriteString(m.renderRow(r, i == m.cursor))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(r model.Restaurant, selected bool) string {
	line := fmt.Sprintf("%s  %s  %s", r.Name, mutedStyle.Render(r.Cuisine), ratingStyle.Render(fmt.Sprintf("★ %.1f", r.Rating)))
	if selected {
		return selectedStyle.Render("▸ ") + line
	}
	return "  " + line
}

func (m Model) renderDetail(r model.Restaurant) string {
	var b strings.Builder

	b.WriteString(mutedStyle.Render("← Volver al listado (esc)"))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(r.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", r.Cuisine, ratingStyle.Render(fmt.Sprintf("★ %.1f", r.Rating))))
	if r.Description != "" {
		b.WriteString(italicStyle.Render(r.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(panelStyle.Render(m.renderForm()))
	b.WriteString("\n")
	b.WriteString(m.renderTabs(r))
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Realizar Reserva"))
	b.WriteString("\n")
	for _, input := range m.inputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	if m.desk.Message != "" {
		b.WriteString("\n")
		if m.desk.Success {
			b.WriteString(successStyle.Render(m.desk.Message))
		} else {
			b.WriteString(errorStyle.Render(m.desk.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.desk.Submitting {
		b.WriteString(m.spinner.View() + " " + mutedStyle.Render(msgSubmitting))
	} else {
		b.WriteString(selectedStyle.Render(msgSubmitButton))
	}
	return b.String()
}

func (m Model) renderTabs(r model.Restaurant) string {
	details, menu := chipStyle.Render("Detalles"), chipStyle.Render("Menú")
	if m.tab == tabDetails {
		details = activeChipStyle.Render("Detalles")
	} else {
		menu = activeChipStyle.Render("Menú")
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, details, " ", menu))
	b.WriteString(mutedStyle.Render("  (ctrl+t)"))
	b.WriteString("\n\n")

	switch m.tab {
	case tabMenu:
		b.WriteString(titleStyle.Render("Menú Destacado"))
		b.WriteString("\n")
		if len(r.Menu) == 0 {
			b.WriteString(mutedStyle.Render(msgMenuEmpty))
			b.WriteString("\n")
		}
		for _, item := range r.Menu {
			b.WriteString("• " + item + "\n")
		}
	default:
		b.WriteString(titleStyle.Render("Información de Contacto y Ubicación"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Dirección: %s\n", r.Address))
		b.WriteString(fmt.Sprintf("Teléfono:  %s\n", r.Phone))
		b.WriteString(fmt.Sprintf("Horario:   %s\n", r.Hours))
	}
	return b.String()
}

func (m Model) renderProfile() string {
	profile := service.ProfileFor(m.session.Identity)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Mi Perfil"))
	b.WriteString("\n")
	b.WriteString(profile.Name + "\n")
	b.WriteString(mutedStyle.Render("ID: "+profile.Handle) + "\n")
	if profile.Level != "" {
		b.WriteString(ratingStyle.Render("Nivel: "+profile.Level) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(msgProfileActions))
	return panelStyle.Render(b.String()) + "\n"
}

func (m Model) renderHelp() string {
	keys := "escribe para buscar · tab cocina · ↑/↓ mover · enter abrir · ctrl+c salir"
	if m.nav.ProfileOpen() {
		keys = "esc cerrar perfil · ctrl+c salir"
	} else if _, ok := m.nav.Selected(); ok {
		keys = "tab siguiente campo · ctrl+s reservar · ctrl+t detalles/menú · esc volver · ctrl+c salir"
	}
	return helpStyle.Render(keys)
}
