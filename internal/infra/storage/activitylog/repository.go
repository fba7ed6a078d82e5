package activitylog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const (
	table        = "activity_logs"
	defaultLimit = 50
)

// Repository журнал действий (только добавление и чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет запись в журнал
// Внутри транзакции запись откатывается вместе с действием
func (r *Repository) Append(ctx context.Context, entry *domain.ActivityLog) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	details := entry.Details
	if details == nil {
		details = domain.Fields{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("actor_type", "actor_id", "actor_ref", "action", "entity_type", "entity_id", "details").
		Values(entry.Actor.Type, entry.Actor.ID, entry.Actor.Ref, entry.Action, entry.EntityType, entry.EntityID, details).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return nil
}

// List получает последние записи журнала
func (r *Repository) List(ctx context.Context, filter domain.ActivityFilter) ([]*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	limit := filter.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	selectBuilder := psqlbuilder.Select(
		"id",
		"actor_type",
		"actor_id",
		"actor_ref",
		"action",
		"entity_type",
		"entity_id",
		"details",
		"created_at",
	).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	if filter.EntityType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"entity_type": *filter.EntityType})
	}
	if filter.EntityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"entity_id": *filter.EntityID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	logs := make([]*domain.ActivityLog, 0)
	for rows.Next() {
		var entry domain.ActivityLog
		var actorID sql.NullInt64

		err := rows.Scan(
			&entry.ID,
			&entry.Actor.Type,
			&actorID,
			&entry.Actor.Ref,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&entry.Details,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		if actorID.Valid {
			entry.Actor.ID = &actorID.Int64
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return logs, nil
}
