package model

import (
	"time"
)

// Reservation은 제출 성공 시 한 번만 생성되고 이후 클라이언트가 다시 읽지 않습니다.
type Reservation struct {
	// id TEXT PRIMARY KEY -- 스토어가 할당
	ID string `db:"id" json:"id,omitempty"`

	// restaurant_id TEXT NOT NULL -- Restaurant 참조
	RestaurantID string `db:"restaurant_id" json:"restaurantId"`

	UserName string `db:"user_name" json:"userName"`
	Date     string `db:"date" json:"date"`
	Time     string `db:"time" json:"time"`

	// number_of_people INTEGER NOT NULL CHECK (number_of_people >= 1)
	NumberOfPeople int `db:"number_of_people" json:"numberOfPeople"`

	// user_id TEXT NOT NULL -- 제출한 Identity의 uid
	UserID string `db:"user_id" json:"userId"`

	// created_at DATETIME NOT NULL -- 스토어 시계 기준
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
