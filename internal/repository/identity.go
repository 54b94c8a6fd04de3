package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/adriana13032025/sistema-reservas-fase1/internal/model"
)

type IdentityRepository interface {
	// 새로운 익명 아이덴티티를 identities 테이블에 추가
	Create(ctx context.Context, identity *model.Identity) error
	// uid로 아이덴티티를 찾음, 없으면 nil, nil
	FindByUID(ctx context.Context, uid string) (*model.Identity, error)
	// 아직 로그아웃하지 않은 가장 최근 아이덴티티, 없으면 nil, nil
	FindActive(ctx context.Context) (*model.Identity, error)
	// 로그아웃 처리 (ended_at 기록)
	End(ctx context.Context, uid string, at time.Time) error
}

type IdentityRepoImpl struct {
	DB *sqlx.DB
}

func NewIdentityRepository(db *sqlx.DB) IdentityRepository {
	return &IdentityRepoImpl{DB: db}
}

func (r *IdentityRepoImpl) Create(ctx context.Context, identity *model.Identity) error {
	if identity.UID == "" {
		return errors.New("identity uid is required")
	}
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO identities (
	uid,
	is_anonymous,
	created_at
	) VALUES (?, ?, ?)`

	_, err := r.DB.ExecContext(ctx, query, identity.UID, identity.Anonymous, identity.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}
	return nil
}

func (r *IdentityRepoImpl) FindByUID(ctx context.Context, uid string) (*model.Identity, error) {
	query := `SELECT uid, is_anonymous, created_at, ended_at FROM identities WHERE uid = ?`
	return r.findOne(ctx, query, uid)
}

func (r *IdentityRepoImpl) FindActive(ctx context.Context) (*model.Identity, error) {
	query := `
	SELECT uid, is_anonymous, created_at, ended_at
	FROM identities
	WHERE ended_at IS NULL
	ORDER BY created_at DESC, rowid DESC
	LIMIT 1`
	return r.findOne(ctx, query)
}

func (r *IdentityRepoImpl) findOne(ctx context.Context, query string, args ...interface{}) (*model.Identity, error) {
	identity := &model.Identity{}
	if err := r.DB.GetContext(ctx, identity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}
	return identity, nil
}

func (r *IdentityRepoImpl) End(ctx context.Context, uid string, at time.Time) error {
	query := `UPDATE identities SET ended_at = ? WHERE uid = ? AND ended_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, at, uid)
	if err != nil {
		return fmt.Errorf("failed to end identity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no active identity %s", uid)
	}
	return nil
}
