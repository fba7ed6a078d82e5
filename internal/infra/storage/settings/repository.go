package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const (
	table     = "slot_settings"
	singleton = 1
)

// Repository репозиторий настроек расписания собеседований
// В таблице хранится не больше одной строки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает сохраненные настройки
func (r *Repository) Get(ctx context.Context) (*domain.SlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_duration_minutes",
		"gap_minutes",
		"parents_per_slot",
		"max_slots_per_day",
		"day_start_time",
		"reminder_days",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": singleton}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.SlotSettings
	var reminderDays pq.Int64Array
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.SlotDurationMinutes,
		&s.GapMinutes,
		&s.ParentsPerSlot,
		&s.MaxSlotsPerDay,
		&s.DayStartTime,
		&reminderDays,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.ReminderDays = make([]int, 0, len(reminderDays))
	for _, d := range reminderDays {
		s.ReminderDays = append(s.ReminderDays, int(d))
	}
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert сохраняет настройки (создает строку при первом сохранении)
func (r *Repository) Upsert(ctx context.Context, s *domain.SlotSettings) (*domain.SlotSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	reminderDays := make([]int64, 0, len(s.ReminderDays))
	for _, d := range s.ReminderDays {
		reminderDays = append(reminderDays, int64(d))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"slot_duration_minutes",
			"gap_minutes",
			"parents_per_slot",
			"max_slots_per_day",
			"day_start_time",
			"reminder_days",
		).
		Values(
			singleton,
			s.SlotDurationMinutes,
			s.GapMinutes,
			s.ParentsPerSlot,
			s.MaxSlotsPerDay,
			s.DayStartTime,
			pq.Array(reminderDays),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			gap_minutes = EXCLUDED.gap_minutes,
			parents_per_slot = EXCLUDED.parents_per_slot,
			max_slots_per_day = EXCLUDED.max_slots_per_day,
			day_start_time = EXCLUDED.day_start_time,
			reminder_days = EXCLUDED.reminder_days,
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

	s.UpdatedAt = updatedAt.Time
	return s, nil
}
