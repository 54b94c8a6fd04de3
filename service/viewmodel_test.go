package service

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

func TestCuisinesEmptyCatalog(t *testing.T) {
	assert.Equal(t, []string{"Todas"}, Cuisines(nil))
}

func TestCuisinesFirstSeenOrder(t *testing.T) {
	rs := []model.Restaurant{
		{ID: "1", Cuisine: "Italiana"},
		{ID: "2", Cuisine: "Mexicana"},
		{ID: "3", Cuisine: "Italiana"},
		{ID: "4", Cuisine: "Japonesa"},
	}
	assert.Equal(t, []string{"Todas", "Italiana", "Mexicana", "Japonesa"}, Cuisines(rs))
}

func TestFilterBySearchAndCuisine(t *testing.T) {
	rs := sampleCatalog()

	tests := []struct {
		name  string
		query CatalogQuery
		want  []string
	}{
		{"no filter", CatalogQuery{Cuisine: AllCuisines}, []string{"rest_1", "rest_2"}},
		{"case insensitive search", CatalogQuery{Search: "sUsHi", Cuisine: AllCuisines}, []string{"rest_2"}},
		{"substring", CatalogQuery{Search: "buen", Cuisine: AllCuisines}, []string{"rest_1"}},
		{"cuisine", CatalogQuery{Cuisine: "Mexicana"}, []string{"rest_1"}},
		{"search and cuisine disagree", CatalogQuery{Search: "sushi", Cuisine: "Mexicana"}, nil},
		{"unknown cuisine", CatalogQuery{Cuisine: "Francesa"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, r := range Filter(rs, tt.query) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterEmptyCuisineIsNotAll(t *testing.T) {
	// Given: 요리 필드가 비어 있는 문서가 섞인 카탈로그
	rs := []model.Restaurant{
		{ID: "a", Name: "Sin Cocina", Cuisine: ""},
		{ID: "b", Name: "El Buen Sabor", Cuisine: "Mexicana"},
	}

	// When: 빈 요리 옵션을 고르면
	options := Cuisines(rs)
	require.Equal(t, []string{"Todas", "", "Mexicana"}, options)
	got := Filter(rs, CatalogQuery{Cuisine: options[1]})

	// Then: 요리가 빈 식당만 남음
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
	assert.Len(t, Filter(rs, CatalogQuery{}), 1)
	assert.Len(t, Filter(rs, CatalogQuery{Cuisine: AllCuisines}), 2)
}

func TestFilterProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	names := []string{"El Buen Sabor", "Sushi Zen", "Trattoria Bella", "La Taquería", "Zen Garden"}
	cuisines := []string{"Mexicana", "Japonesa", "Italiana", ""}
	searches := []string{"", "zen", "LA", "a", "bella", "xyz"}

	for round := 0; round < 50; round++ {
		rs := make([]model.Restaurant, rng.Intn(8))
		for i := range rs {
			rs[i] = model.Restaurant{
				ID:      fmt.Sprintf("r%d", i),
				Name:    names[rng.Intn(len(names))],
				Cuisine: cuisines[rng.Intn(len(cuisines))],
			}
		}
		options := Cuisines(rs)
		query := CatalogQuery{
			Search:  searches[rng.Intn(len(searches))],
			Cuisine: options[rng.Intn(len(options))],
		}

		got := Filter(rs, query)

		// 부분집합 + 순서 유지
		next := 0
		for _, r := range got {
			for next < len(rs) && rs[next].ID != r.ID {
				next++
			}
			require.Less(t, next, len(rs), "result not an ordered subset")
			next++

			assert.True(t, strings.Contains(strings.ToLower(r.Name), strings.ToLower(query.Search)))
			if query.Cuisine != AllCuisines {
				assert.Equal(t, query.Cuisine, r.Cuisine)
			}
		}

		// 멱등성
		assert.Equal(t, got, Filter(got, query))

		// 조건을 만족하는 항목은 빠지지 않음
		want := 0
		for _, r := range rs {
			if strings.Contains(strings.ToLower(r.Name), strings.ToLower(query.Search)) &&
				(query.Cuisine == AllCuisines || r.Cuisine == query.Cuisine) {
				want++
			}
		}
		assert.Len(t, got, want)
	}
}
