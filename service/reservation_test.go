package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/logger"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

var anon = &model.Identity{UID: "anon-uid-1234", Anonymous: true}

func validForm() ReservationForm {
	return ReservationForm{Name: "Ana", Date: "2025-12-01", Time: "20:00", PartySize: 2}
}

func TestNewReservationFormDefaults(t *testing.T) {
	assert.Equal(t, ReservationForm{PartySize: 2}, NewReservationForm())
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	tests := []struct {
		name         string
		restaurantID string
		mutate       func(*ReservationForm)
	}{
		{"empty name", "rest_1", func(f *ReservationForm) { f.Name = "" }},
		{"empty date", "rest_1", func(f *ReservationForm) { f.Date = "" }},
		{"empty time", "rest_1", func(f *ReservationForm) { f.Time = "" }},
		{"zero party", "rest_1", func(f *ReservationForm) { f.PartySize = 0 }},
		{"negative party", "rest_1", func(f *ReservationForm) { f.PartySize = -3 }},
		{"empty restaurant", "", func(f *ReservationForm) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			submitter := NewSubmitter(store, logger.Discard())

			form := validForm()
			tt.mutate(&form)
			_, err := submitter.Submit(context.Background(), tt.restaurantID, form, anon)

			require.Error(t, err)
			assert.True(t, IsKind(err, ValidationError))
			assert.Equal(t, "Todos los campos son obligatorios.", Message(err))
			assert.Zero(t, store.writes())
		})
	}
}

func TestSubmitWritesReservation(t *testing.T) {
	store := &fakeStore{}
	submitter := NewSubmitter(store, logger.Discard())

	ack, err := submitter.Submit(context.Background(), "rest_1", validForm(), anon)
	require.NoError(t, err)
	assert.Equal(t, "res-1", ack.ID)

	require.Len(t, store.created, 1)
	got := store.created[0]
	assert.Equal(t, model.Reservation{
		RestaurantID:   "rest_1",
		UserName:       "Ana",
		Date:           "2025-12-01",
		Time:           "20:00",
		NumberOfPeople: 2,
		UserID:         "anon-uid-1234",
	}, got)
}

func TestSubmitWithoutIdentity(t *testing.T) {
	store := &fakeStore{}
	submitter := NewSubmitter(store, logger.Discard())

	_, err := submitter.Submit(context.Background(), "rest_1", validForm(), nil)
	assert.True(t, IsKind(err, SubmissionError))
	assert.ErrorIs(t, err, backend.ErrUnauthenticated)
	assert.Zero(t, store.writes())
}

func TestSubmitRemoteFailure(t *testing.T) {
	store := &fakeStore{createErr: errRemote}
	submitter := NewSubmitter(store, logger.Discard())

	_, err := submitter.Submit(context.Background(), "rest_1", validForm(), anon)
	assert.True(t, IsKind(err, SubmissionError))
	assert.ErrorIs(t, err, errRemote)
	assert.Equal(t, "Error al procesar la reserva. Intenta de nuevo.", Message(err))
}

func TestReservationDeskSuccessResetsForm(t *testing.T) {
	store := &fakeStore{}
	submitter := NewSubmitter(store, logger.Discard())

	desk := NewReservationDesk("rest_1")
	desk.Form = validForm()

	form, ok := desk.Begin()
	require.True(t, ok)
	assert.True(t, desk.Submitting)

	// 진행 중에는 두 번째 제출 불가
	_, again := desk.Begin()
	assert.False(t, again)

	ack, err := submitter.Submit(context.Background(), desk.RestaurantID, form, anon)
	desk.Finish(ack, err)

	assert.False(t, desk.Submitting)
	assert.True(t, desk.Success)
	assert.Equal(t, "¡Reserva exitosa! Te esperamos.", desk.Message)
	assert.Equal(t, ReservationForm{Name: "", Date: "", Time: "", PartySize: 2}, desk.Form)
	assert.Equal(t, 1, store.writes())
}

func TestReservationDeskFailureKeepsFields(t *testing.T) {
	store := &fakeStore{createErr: errRemote}
	submitter := NewSubmitter(store, logger.Discard())

	desk := NewReservationDesk("rest_1")
	desk.Form = validForm()

	form, ok := desk.Begin()
	require.True(t, ok)
	ack, err := submitter.Submit(context.Background(), desk.RestaurantID, form, anon)
	desk.Finish(ack, err)

	assert.False(t, desk.Submitting)
	assert.False(t, desk.Success)
	assert.Equal(t, "Error al procesar la reserva. Intenta de nuevo.", desk.Message)
	assert.Equal(t, validForm(), desk.Form)

	// 다시 제출할 수 있음
	_, ok = desk.Begin()
	assert.True(t, ok)
	assert.Empty(t, desk.Message)
}

func TestReservationDeskValidationMessage(t *testing.T) {
	submitter := NewSubmitter(&fakeStore{}, logger.Discard())
	desk := NewReservationDesk("rest_1")

	form, _ := desk.Begin()
	ack, err := submitter.Submit(context.Background(), desk.RestaurantID, form, anon)
	desk.Finish(ack, err)

	assert.Equal(t, "Todos los campos son obligatorios.", desk.Message)
	assert.Equal(t, NewReservationForm(), desk.Form)
}
