package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/futplanner/internal/domain/credential"
	qb "github.com/riskibarqy/futplanner/internal/platform/querybuilder"
)

const credentialsTable = "user_credentials"

type credentialTableModel struct {
	UserID       int64     `db:"user_id"`
	Name         string    `db:"name"`
	RefreshToken string    `db:"refresh_token"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type CredentialRepository struct {
	db *sqlx.DB
}

var _ credential.Repository = (*CredentialRepository)(nil)

func NewCredentialRepository(db *sqlx.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Get(ctx context.Context, userID int64) (credential.Credential, bool, error) {
	query, args, err := qb.Select("user_id", "name", "refresh_token", "updated_at").
		From(credentialsTable).
		Where(qb.Eq("user_id", userID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return credential.Credential{}, false, fmt.Errorf("build get credential query: %w", err)
	}

	var row credentialTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return credential.Credential{}, false, nil
		}
		return credential.Credential{}, false, fmt.Errorf("get credential: %w", err)
	}

	return credential.Credential{
		UserID:       row.UserID,
		Name:         row.Name,
		RefreshToken: row.RefreshToken,
		UpdatedAt:    row.UpdatedAt,
	}, true, nil
}

func (r *CredentialRepository) Upsert(ctx context.Context, item credential.Credential) error {
	query, args, err := buildCredentialUpsert(item, time.Now().UTC())
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert credential user=%d: %w", item.UserID, err)
	}
	return nil
}

func buildCredentialUpsert(item credential.Credential, now time.Time) (string, []any, error) {
	if err := item.Validate(); err != nil {
		return "", nil, err
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}

	query, args, err := qb.UpsertModel(credentialsTable, credentialTableModel{
		UserID:       item.UserID,
		Name:         item.Name,
		RefreshToken: item.RefreshToken,
		UpdatedAt:    item.UpdatedAt,
	}, []string{"user_id"})
	if err != nil {
		return "", nil, fmt.Errorf("build upsert credential query: %w", err)
	}
	return query, args, nil
}
