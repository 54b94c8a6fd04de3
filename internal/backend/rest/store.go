package rest

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/backend"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// Store는 PostgREST 테이블을 문서 컬렉션처럼 다룹니다.
type Store struct {
	client *Client
	log    *logrus.Entry
}

func NewStore(client *Client, log *logrus.Entry) *Store {
	return &Store{client: client, log: log}
}

func (s *Store) FetchRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	resp, err := s.client.Select(ctx, backend.CollectionRestaurants, url.Values{"select": {"*"}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", backend.CollectionRestaurants, err)
	}
	if err := resp.Error(); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", backend.CollectionRestaurants, err)
	}

	var restaurants []model.Restaurant
	if err := resp.JSON(&restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

// reservationPayload: id와 createdAt은 서버가 채웁니다.
type reservationPayload struct {
	RestaurantID   string `json:"restaurantId"`
	UserName       string `json:"userName"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	NumberOfPeople int    `json:"numberOfPeople"`
	UserID         string `json:"userId"`
}

func (s *Store) CreateReservation(ctx context.Context, reservation model.Reservation) (string, error) {
	if reservation.UserID == "" {
		return "", backend.ErrUnauthenticated
	}

	resp, err := s.client.Insert(ctx, backend.CollectionReservations, reservationPayload{
		RestaurantID:   reservation.RestaurantID,
		UserName:       reservation.UserName,
		Date:           reservation.Date,
		Time:           reservation.Time,
		NumberOfPeople: reservation.NumberOfPeople,
		UserID:         reservation.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", backend.CollectionReservations, err)
	}
	if err := resp.Error(); err != nil {
		return "", fmt.Errorf("failed to create %s record: %w", backend.CollectionReservations, err)
	}

	var created []struct {
		ID string `json:"id"`
	}
	if err := resp.JSON(&created); err != nil {
		return "", err
	}
	if len(created) == 0 || created[0].ID == "" {
		return "", errors.New("failed to create reservations record: empty representation")
	}

	s.log.WithFields(logrus.Fields{
		"reservation_id": created[0].ID,
		"restaurant_id":  reservation.RestaurantID,
	}).Info("reservation stored")
	return created[0].ID, nil
}
