package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestApplyExecutesAllStatements(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	stmts := Statements()
	if len(stmts) != 4 {
		t.Fatalf("expected 4 schema statements, got %d", len(stmts))
	}
	for range stmts {
		mock.ExpectExec(".*").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Apply(context.Background(), conn); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer conn.Close()

	boom := errors.New("syntax error")
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS restaurants").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS identities").WillReturnError(boom)

	err = Apply(context.Background(), conn)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInitIsRepeatable(t *testing.T) {
	ctx := context.Background()
	conn, err := Init(ctx, ":memory:")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	defer conn.Close()

	if err := Apply(ctx, conn); err != nil {
		t.Fatalf("second apply: %v", err)
	}
}
