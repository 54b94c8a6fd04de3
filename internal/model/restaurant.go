package model

// Restaurant은 카탈로그에 노출되는 식당 문서입니다.
// 클라이언트는 읽기만 하며 생성/삭제는 백엔드에서만 일어납니다.
type Restaurant struct {
	// id TEXT PRIMARY KEY -- 스토어가 할당
	ID string `db:"id" json:"id"`

	// name TEXT NOT NULL
	Name string `db:"name" json:"name"`

	// cuisine TEXT NOT NULL -- 필터 기준 (정확히 일치)
	Cuisine string `db:"cuisine" json:"cuisine"`

	// rating REAL NOT NULL DEFAULT 0
	Rating float64 `db:"rating" json:"rating"`

	Description    string `db:"description" json:"description"`
	Address        string `db:"address" json:"address"`
	Phone          string `db:"phone" json:"phone"`
	Hours          string `db:"hours" json:"hours"`
	DetailImageURL string `db:"detail_image_url" json:"detailImageUrl"`

	// menu TEXT NOT NULL DEFAULT '[]' -- 메뉴 항목 이름 배열 (json)
	Menu []string `db:"-" json:"menu"`
}
