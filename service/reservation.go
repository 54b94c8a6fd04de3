package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

const (
	DefaultPartySize = 2

	MsgReservationOK = "¡Reserva exitosa! Te esperamos."
)

// ReservationForm: 예약 입력 폼. 형식 검사는 하지 않고 존재 여부와 인원수만 봅니다.
type ReservationForm struct {
	Name      string `validate:"required"`
	Date      string `validate:"required"`
	Time      string `validate:"required"`
	PartySize int    `validate:"min=1"`
}

// NewReservationForm: 초기값 (빈 이름/날짜/시간, 2명)
func NewReservationForm() ReservationForm {
	return ReservationForm{PartySize: DefaultPartySize}
}

type reservationRequest struct {
	RestaurantID string `validate:"required"`
	Form         ReservationForm
}

// Ack: 새 레코드 id. 이후에 쓰이지는 않습니다.
type Ack struct {
	ID string
}

// Submitter는 예약을 검증한 뒤 문서 스토어에 씁니다.
type Submitter struct {
	store    backend.DocumentStore
	validate *validator.Validate
	log      *logrus.Entry
}

func NewSubmitter(store backend.DocumentStore, log *logrus.Entry) *Submitter {
	return &Submitter{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// Submit: 검증 실패(ValidationError)나 아이덴티티 없음(SubmissionError)이면 원격 쓰기를 하지 않습니다.
func (s *Submitter) Submit(ctx context.Context, restaurantID string, form ReservationForm, identity *model.Identity) (Ack, error) {
	if err := s.Validate(restaurantID, form); err != nil {
		return Ack{}, err
	}
	if identity == nil || identity.UID == "" {
		return Ack{}, newError(SubmissionError, "create reservation", backend.ErrUnauthenticated)
	}

	id, err := s.store.CreateReservation(ctx, model.Reservation{
		RestaurantID:   restaurantID,
		UserName:       form.Name,
		Date:           form.Date,
		Time:           form.Time,
		NumberOfPeople: form.PartySize,
		UserID:         identity.UID,
	})
	if err != nil {
		s.log.WithError(err).WithField("restaurant_id", restaurantID).Error("reservation write failed")
		return Ack{}, newError(SubmissionError, "create reservation", err)
	}

	s.log.WithFields(logrus.Fields{
		"reservation_id": id,
		"restaurant_id":  restaurantID,
		"uid":            identity.UID,
	}).Info("reservation submitted")
	return Ack{ID: id}, nil
}

// Validate: 로컬 검사만 합니다 (네트워크 없음).
func (s *Submitter) Validate(restaurantID string, form ReservationForm) error {
	err := s.validate.Struct(reservationRequest{RestaurantID: restaurantID, Form: form})
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
		return newError(ValidationError, "validate reservation", fmt.Errorf("invalid fields: %s", strings.Join(fields, ", ")))
	}
	return newError(ValidationError, "validate reservation", err)
}

// ReservationDesk: 폼 하나의 제출 상태. 제출 중에는 다시 제출할 수 없습니다.
type ReservationDesk struct {
	RestaurantID string
	Form         ReservationForm
	Submitting   bool
	Message      string
	Success      bool
}

func NewReservationDesk(restaurantID string) ReservationDesk {
	return ReservationDesk{RestaurantID: restaurantID, Form: NewReservationForm()}
}

// Begin: 제출을 시작합니다. 이미 진행 중이면 false.
func (d *ReservationDesk) Begin() (ReservationForm, bool) {
	if d.Submitting {
		return ReservationForm{}, false
	}
	d.Submitting = true
	d.Message = ""
	d.Success = false
	return d.Form, true
}

// Finish: 성공하면 폼을 초기화하고, 실패하면 입력값을 그대로 둡니다.
func (d *ReservationDesk) Finish(ack Ack, err error) {
	d.Submitting = false
	if err != nil {
		d.Success = false
		d.Message = Message(err)
		return
	}
	d.Success = true
	d.Message = MsgReservationOK
	d.Form = NewReservationForm()
}
