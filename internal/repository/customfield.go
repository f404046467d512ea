package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datapoolml/outreach-crm/internal/logger"
	"github.com/datapoolml/outreach-crm/internal/models"
)

type CustomFieldRepository struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCustomFieldRepository(db *sql.DB, log logger.Logger) *CustomFieldRepository {
	return &CustomFieldRepository{
		db:     db,
		logger: log,
	}
}

func (r *CustomFieldRepository) List(ctx context.Context) ([]models.CustomFieldDefinition, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM custom_fields
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query custom fields: %w", err)
	}
	defer rows.Close()

	fields := make([]models.CustomFieldDefinition, 0)
	for rows.Next() {
		var f models.CustomFieldDefinition
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan custom field: %w", err)
		}
		fields = append(fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate custom fields: %w", err)
	}
	return fields, nil
}

// Create registers a new field definition. Name matching is case
// insensitive, so "Region" and "region" conflict.
func (r *CustomFieldRepository) Create(ctx context.Context, name string) (*models.CustomFieldDefinition, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM custom_fields WHERE LOWER(name) = LOWER($1))`, name,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check custom field: %w", err)
	}
	if exists {
		return nil, ErrDuplicate
	}

	field := models.CustomFieldDefinition{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO custom_fields (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		field.ID, field.Name, field.CreatedAt, field.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert custom field: %w", err)
	}
	return &field, nil
}

// EnsureMany upserts every name, keeping existing definitions untouched.
// Used by imports so unseen custom field keys land in the registry.
func (r *CustomFieldRepository) EnsureMany(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("rollback custom field upsert", logger.Error(rbErr))
			}
		}
	}()

	query := `
		INSERT INTO custom_fields (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`
	for _, name := range names {
		now := time.Now()
		if _, err = tx.ExecContext(ctx, query, uuid.New().String(), name, now, now); err != nil {
			err = fmt.Errorf("upsert custom field %q: %w", name, err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
