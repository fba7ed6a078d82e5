package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const table = "form_templates"

// Repository репозиторий шаблонов анкет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория шаблонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает шаблон по виду
func (r *Repository) Get(ctx context.Context, kind domain.TemplateKind) (*domain.FormTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("kind", "fields", "updated_by", "updated_at").
		From(table).
		Where(squirrel.Eq{"kind": kind}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.FormTemplate
	var raw []byte
	var updatedBy sql.NullInt64
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.Kind, &raw, &updatedBy, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan template: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(raw, &t.Fields); err != nil {
		return nil, fmt.Errorf("%w: Get - decode fields: %v", ErrScanRow, err)
	}
	if updatedBy.Valid {
		t.UpdatedBy = &updatedBy.Int64
	}
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// Upsert сохраняет шаблон, заменяя список полей целиком
func (r *Repository) Upsert(ctx context.Context, t *domain.FormTemplate) (*domain.FormTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fields := t.Fields
	if fields == nil {
		fields = []domain.TemplateField{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - %v", ErrEncode, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("kind", "fields", "updated_by").
		Values(t.Kind, string(raw), t.UpdatedBy).
		Suffix(`ON CONFLICT (kind) DO UPDATE SET
			fields = EXCLUDED.fields,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	t.UpdatedAt = updatedAt.Time
	return t, nil
}
