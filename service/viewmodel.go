package service

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// AllCuisines: "필터 없음"을 뜻하는 센티널
const AllCuisines = "Todas"

// CatalogQuery: 검색어와 요리 필터 입력. Cuisine은 AllCuisines일 때만 필터 없음입니다.
type CatalogQuery struct {
	Search  string
	Cuisine string
}

// Cuisines: 센티널 + 카탈로그 순서대로 중복 제거한 요리 목록
func Cuisines(restaurants []model.Restaurant) []string {
	cuisines := []string{AllCuisines}
	seen := make(map[string]struct{}, len(restaurants))
	for _, r := range restaurants {
		if _, ok := seen[r.Cuisine]; ok {
			continue
		}
		seen[r.Cuisine] = struct{}{}
		cuisines = append(cuisines, r.Cuisine)
	}
	return cuisines
}

// Filter: 이름 부분 일치(대소문자 무시) AND 요리 정확히 일치. 카탈로그 순서를 유지합니다.
func Filter(restaurants []model.Restaurant, query CatalogQuery) []model.Restaurant {
	folder := cases.Fold()
	needle := folder.String(query.Search)

	filtered := make([]model.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if needle != "" && !strings.Contains(folder.String(r.Name), needle) {
			continue
		}
		if query.Cuisine != AllCuisines && r.Cuisine != query.Cuisine {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
