package model

import (
	"time"
)

// Identity는 아이덴티티 제공자가 발급한 익명 사용자입니다.
type Identity struct {
	// uid TEXT PRIMARY KEY
	UID string `db:"uid" json:"id"`

	// is_anonymous BOOLEAN NOT NULL DEFAULT 1
	Anonymous bool `db:"is_anonymous" json:"is_anonymous"`

	// created_at DATETIME NOT NULL
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// ended_at DATETIME -- 로그아웃 시각, NULL이면 활성 세션
	EndedAt *time.Time `db:"ended_at" json:"-"`
}

// ShortUID: 프로필 패널용으로 uid 앞 8글자만 보여줍니다.
func (i Identity) ShortUID() string {
	if len(i.UID) <= 8 {
		return i.UID + "..."
	}
	return i.UID[:8] + "..."
}
