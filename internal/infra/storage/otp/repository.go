package otp

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const table = "otps"

// Repository репозиторий одноразовых кодов
// Просроченные коды не возвращаются запросами и удаляются PurgeExpired
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет код
func (r *Repository) Create(ctx context.Context, o *domain.OTP) (*domain.OTP, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("mobile", "code_hash", "attempts", "max_attempts", "expires_at").
		Values(o.Mobile, o.CodeHash, o.Attempts, o.MaxAttempts, o.ExpiresAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&o.ID, &o.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return o, nil
}

// GetLatestActive получает последний непросроченный код для номера
func (r *Repository) GetLatestActive(ctx context.Context, mobile string, now time.Time) (*domain.OTP, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "mobile", "code_hash", "attempts", "max_attempts", "expires_at", "created_at").
		From(table).
		Where(squirrel.Eq{"mobile": mobile}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestActive - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.OTP
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.Mobile,
		&o.CodeHash,
		&o.Attempts,
		&o.MaxAttempts,
		&o.ExpiresAt,
		&o.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOTPNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLatestActive - scan otp: %v", ErrScanRow, err)
	}

	return &o, nil
}

// IncrementAttempts расходует одну попытку и возвращает новое значение счетчика
// Попытка засчитывается только пока attempts < max_attempts
func (r *Repository) IncrementAttempts(ctx context.Context, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := incrementAttemptsQuery(id)
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementAttempts - build update query: %v", ErrBuildQuery, err)
	}

	var attempts int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&attempts)
	if err == sql.ErrNoRows {
		return 0, ErrAttemptsExhausted
	}
	if err != nil {
		return 0, fmt.Errorf("%w: IncrementAttempts - execute update: %v", ErrExecQuery, err)
	}

	return attempts, nil
}

func incrementAttemptsQuery(id int64) (string, []interface{}, error) {
	return psqlbuilder.Update(table).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"id": id}).
		Where("attempts < max_attempts").
		Suffix("RETURNING attempts").
		ToSql()
}

// Delete удаляет код
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, "Delete", squirrel.Eq{"id": id})
}

// DeleteByMobile удаляет все коды номера (перед выдачей нового)
func (r *Repository) DeleteByMobile(ctx context.Context, mobile string) error {
	return r.delete(ctx, "DeleteByMobile", squirrel.Eq{"mobile": mobile})
}

// PurgeExpired удаляет просроченные коды и возвращает их количество
func (r *Repository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - execute delete: %v", ErrExecQuery, err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return purged, nil
}

func (r *Repository) delete(ctx context.Context, op string, where squirrel.Sqlizer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build delete query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute delete: %v", ErrExecQuery, op, err)
	}

	return nil
}
