package db

import (
	"context"
	"fmt"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// RestaurantWriter: 시드에 필요한 최소 쓰기 기능 (repository.RestaurantRepository가 만족)
type RestaurantWriter interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	Count(ctx context.Context) (int, error)
}

// DemoCatalog: 로컬 백엔드용 데모 카탈로그
func DemoCatalog() []model.Restaurant {
	return []model.Restaurant{
		{
			ID:             "rest_1",
			Name:           "El Buen Sabor",
			Cuisine:        "Mexicana",
			Rating:         4.8,
			Description:    "Cocina tradicional mexicana con recetas de la abuela y tortillas hechas a mano.",
			Address:        "Av. Reforma 123, Ciudad de México",
			Phone:          "+52 55 1234 5678",
			Hours:          "Lun-Dom 13:00 - 23:00",
			DetailImageURL: "https://placehold.co/800x400/3B82F6/FFFFFF?text=El+Buen+Sabor",
			Menu:           []string{"Tacos al pastor", "Mole poblano", "Chiles en nogada", "Agua de horchata"},
		},
		{
			ID:             "rest_2",
			Name:           "Sushi Zen",
			Cuisine:        "Japonesa",
			Rating:         4.5,
			Description:    "Barra de sushi con pescado fresco del día y un ambiente minimalista.",
			Address:        "Calle Roble 45, Monterrey",
			Phone:          "+52 81 2345 6789",
			Hours:          "Mar-Dom 14:00 - 22:30",
			DetailImageURL: "https://placehold.co/800x400/3B82F6/FFFFFF?text=Sushi+Zen",
			Menu:           []string{"Nigiri de salmón", "Uramaki California", "Ramen tonkotsu", "Mochi de té verde"},
		},
		{
			ID:             "rest_3",
			Name:           "Trattoria Bella",
			Cuisine:        "Italiana",
			Rating:         4.6,
			Description:    "Pasta fresca y pizzas al horno de leña en un rincón familiar.",
			Address:        "Paseo de la Luz 9, Guadalajara",
			Phone:          "+52 33 3456 7890",
			Hours:          "Lun-Sáb 12:00 - 23:00",
			DetailImageURL: "https://placehold.co/800x400/3B82F6/FFFFFF?text=Trattoria+Bella",
			Menu:           []string{"Pizza margherita", "Tagliatelle al ragú", "Risotto de hongos", "Tiramisú"},
		},
		{
			ID:             "rest_4",
			Name:           "La Taquería del Centro",
			Cuisine:        "Mexicana",
			Rating:         4.2,
			Description:    "Tacos de guisado y salsas caseras a precios de barrio.",
			Address:        "Calle Madero 77, Puebla",
			Phone:          "+52 22 4567 8901",
			Hours:          "Lun-Vie 09:00 - 18:00",
			DetailImageURL: "https://placehold.co/800x400/3B82F6/FFFFFF?text=La+Taqueria",
			Menu:           []string{"Tacos de chicharrón", "Quesadillas", "Tostadas de tinga"},
		},
	}
}

// Seed: 테이블이 비어 있을 때만 카탈로그를 넣습니다. 넣은 개수를 반환합니다.
func Seed(ctx context.Context, repo RestaurantWriter, catalog []model.Restaurant) (int, error) {
	count, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range catalog {
		if err := repo.Create(ctx, &catalog[i]); err != nil {
			return i, fmt.Errorf("failed to seed restaurant %q: %w", catalog[i].Name, err)
		}
	}
	return len(catalog), nil
}
