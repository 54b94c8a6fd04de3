package db

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // DB 드라이버
)

//go:embed schema.sql
var schemaSQL string

// Open: SQLite 파일(또는 ":memory:")을 연결합니다.
// sqlite는 동시 쓰기에 약하므로 커넥션을 하나로 제한합니다.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", path)
	conn, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database connection: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("could not ping database: %w", err)
	}
	return conn, nil
}

// Statements: 임베드된 스키마를 실행 단위로 나눕니다.
func Statements() []string {
	var stmts []string
	for _, raw := range strings.Split(schemaSQL, ";") {
		if stmt := strings.TrimSpace(raw); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// Apply: 스키마를 순서대로 실행합니다. 모든 문장이 IF NOT EXISTS라 여러 번 실행해도 됩니다.
func Apply(ctx context.Context, conn sqlx.ExecerContext) error {
	for i, stmt := range Statements() {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// Init: Open + Apply.
func Init(ctx context.Context, path string) (*sqlx.DB, error) {
	conn, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := Apply(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
