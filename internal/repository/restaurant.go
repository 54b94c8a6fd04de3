package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

// RestaurantRepository: restaurants 테이블에 접근합니다.
type RestaurantRepository interface {
	// FindAll: 카탈로그 전체를 저장 순서대로 조회합니다.
	FindAll(ctx context.Context) ([]model.Restaurant, error)
	// FindByID: 없으면 nil, nil
	FindByID(ctx context.Context, id string) (*model.Restaurant, error)
	// Create: 식당 문서를 추가합니다. ID가 비어 있으면 새로 할당합니다.
	Create(ctx context.Context, restaurant *model.Restaurant) error
	Count(ctx context.Context) (int, error)
}

// RestaurantRepoImpl은 RestaurantRepository 인터페이스를 구현합니다.
type RestaurantRepoImpl struct {
	DB *sqlx.DB
}

func NewRestaurantRepository(db *sqlx.DB) RestaurantRepository {
	return &RestaurantRepoImpl{DB: db}
}

// menu 컬럼은 json 텍스트라서 스캔용 구조체를 따로 둡니다.
type restaurantRow struct {
	model.Restaurant
	MenuJSON string `db:"menu"`
}

func (row restaurantRow) toModel() (model.Restaurant, error) {
	r := row.Restaurant
	if row.MenuJSON != "" {
		if err := json.Unmarshal([]byte(row.MenuJSON), &r.Menu); err != nil {
			return model.Restaurant{}, fmt.Errorf("failed to decode menu of %s: %w", r.ID, err)
		}
	}
	return r, nil
}

const restaurantColumns = `id, name, cuisine, rating, description, address, phone, hours, detail_image_url, menu`

func (r *RestaurantRepoImpl) FindAll(ctx context.Context) ([]model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants ORDER BY position, rowid`

	var rows []restaurantRow
	if err := r.DB.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}

	restaurants := make([]model.Restaurant, 0, len(rows))
	for _, row := range rows {
		restaurant, err := row.toModel()
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, restaurant)
	}
	return restaurants, nil
}

func (r *RestaurantRepoImpl) FindByID(ctx context.Context, id string) (*model.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ?`

	var row restaurantRow
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find restaurant by ID: %w", err)
	}

	restaurant, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepoImpl) Create(ctx context.Context, restaurant *model.Restaurant) error {
	if restaurant.ID == "" {
		restaurant.ID = uuid.NewString()
	}
	menu := restaurant.Menu
	if menu == nil {
		menu = []string{}
	}
	menuJSON, err := json.Marshal(menu)
	if err != nil {
		return fmt.Errorf("failed to encode menu: %w", err)
	}

	query := `
	INSERT INTO restaurants (
	id, name, cuisine, rating, description, address, phone, hours, detail_image_url, menu, position
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM restaurants))`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		restaurant.ID,
		restaurant.Name,
		restaurant.Cuisine,
		restaurant.Rating,
		restaurant.Description,
		restaurant.Address,
		restaurant.Phone,
		restaurant.Hours,
		restaurant.DetailImageURL,
		string(menuJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}
	return nil
}

func (r *RestaurantRepoImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM restaurants`); err != nil {
		return 0, fmt.Errorf("failed to count restaurants: %w", err)
	}
	return count, nil
}
