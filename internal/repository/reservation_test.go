package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
	"github.com/adriana13032025/sistema-reservas-fase1/internal/repository"
)

func TestCreateReservation(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()

	// 1. Given: FK 대상 식당과 아이덴티티
	insertMockRestaurant(t, conn, model.Restaurant{ID: "rest_1", Name: "El Buen Sabor", Cuisine: "Mexicana"})
	if err := repository.NewIdentityRepository(conn).Create(ctx, &model.Identity{UID: "anon-1", Anonymous: true}); err != nil {
		t.Fatalf("Setup identity failed: %v", err)
	}
	repo := repository.NewReservationRepository(conn)

	createdAt := time.Date(2025, 10, 30, 18, 0, 0, 0, time.UTC)
	reservation := model.Reservation{
		ID:             "res-1",
		RestaurantID:   "rest_1",
		UserName:       "Ana",
		Date:           "2025-12-01",
		Time:           "20:00",
		NumberOfPeople: 2,
		UserID:         "anon-1",
		CreatedAt:      createdAt,
	}

	// 2. When
	err := repo.Create(ctx, &reservation)

	// 3. Then
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fetched, err := repo.FindByID(ctx, "res-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if fetched == nil {
		t.Fatalf("Expected reservation to be stored")
	}
	if fetched.UserName != "Ana" || fetched.NumberOfPeople != 2 || fetched.Time != "20:00" {
		t.Errorf("Unexpected reservation: %+v", fetched)
	}
	if !fetched.CreatedAt.Equal(createdAt) {
		t.Errorf("Expected created_at %v, got %v", createdAt, fetched.CreatedAt)
	}

	count, err := repo.CountByRestaurant(ctx, "rest_1")
	if err != nil {
		t.Fatalf("CountByRestaurant failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 reservation, got %d", count)
	}
}

func TestCreateReservationRejectsInvalidRows(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	repo := repository.NewReservationRepository(conn)

	// ID 없음
	if err := repo.Create(ctx, &model.Reservation{CreatedAt: time.Now()}); err == nil {
		t.Errorf("Expected error for missing id")
	}

	// 참조 대상이 없으면 FK 위반
	err := repo.Create(ctx, &model.Reservation{
		ID:             "res-x",
		RestaurantID:   "missing",
		UserName:       "Ana",
		Date:           "2025-12-01",
		Time:           "20:00",
		NumberOfPeople: 2,
		UserID:         "missing",
		CreatedAt:      time.Now(),
	})
	if err == nil {
		t.Errorf("Expected foreign key violation")
	}
}

// TestCreateReservationDriverError: 드라이버 오류가 감싸져서 올라오는지 sqlmock으로 확인
func TestCreateReservationDriverError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer mockDB.Close()

	driverErr := errors.New("disk I/O error")
	mock.ExpectExec("INSERT INTO reservations").WillReturnError(driverErr)

	repo := repository.NewReservationRepository(sqlx.NewDb(mockDB, "sqlite3"))
	err = repo.Create(context.Background(), &model.Reservation{
		ID:             "res-1",
		RestaurantID:   "rest_1",
		UserName:       "Ana",
		Date:           "2025-12-01",
		Time:           "20:00",
		NumberOfPeople: 2,
		UserID:         "anon-1",
		CreatedAt:      time.Now(),
	})
	if !errors.Is(err, driverErr) {
		t.Fatalf("Expected wrapped driver error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestFindAllRestaurantsDriverError(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer mockDB.Close()

	mock.ExpectQuery("SELECT (.+) FROM restaurants").WillReturnError(errors.New("database is locked"))

	repo := repository.NewRestaurantRepository(sqlx.NewDb(mockDB, "sqlite3"))
	restaurants, err := repo.FindAll(context.Background())
	if err == nil {
		t.Fatalf("Expected error, got %v", restaurants)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
