package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/pgerr"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const table = "counselling_slots"

var columns = []string{
	"id",
	"slot_date",
	"start_time",
	"end_time",
	"capacity",
	"booked_count",
	"disabled",
	"created_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий слотов собеседований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот
// Дубликат (дата, время начала) возвращает ErrSlotExists
func (r *Repository) Create(ctx context.Context, s *domain.CounsellingSlot) (*domain.CounsellingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("slot_date", "start_time", "end_time", "capacity", "booked_count", "disabled", "created_by").
		Values(s.Date.Format(domain.DateFormat), s.StartTime, s.EndTime, s.Capacity, s.BookedCount, s.Disabled, s.CreatedBy).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSlotExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// CreateIfAbsent создает слот, если на эту дату нет слота с тем же временем начала
// Возвращает false, если слот уже существовал
func (r *Repository) CreateIfAbsent(ctx context.Context, s *domain.CounsellingSlot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("slot_date", "start_time", "end_time", "capacity", "booked_count", "disabled", "created_by").
		Values(s.Date.Format(domain.DateFormat), s.StartTime, s.EndTime, s.Capacity, 0, false, s.CreatedBy).
		Suffix("ON CONFLICT (slot_date, start_time) DO NOTHING RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: CreateIfAbsent - execute insert: %v", ErrExecQuery, err)
	}

	return true, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.CounsellingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты с фильтрацией по периоду и вычисляемому статусу
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.CounsellingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("slot_date ASC", "start_time ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": filter.To.Format(domain.DateFormat)})
	}

	// Статус не хранится, поэтому фильтр повторяет DeriveSlotStatus
	if filter.Status != nil {
		switch *filter.Status {
		case domain.SlotStatusFull:
			selectBuilder = selectBuilder.Where("booked_count >= capacity")
		case domain.SlotStatusDisabled:
			selectBuilder = selectBuilder.Where("booked_count < capacity AND disabled = TRUE")
		case domain.SlotStatusAvailable:
			selectBuilder = selectBuilder.Where("booked_count < capacity AND disabled = FALSE")
		}
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

	slots := make([]*domain.CounsellingSlot, 0)
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Update сохраняет изменения сотрудника: дату, время, вместимость и ручное отключение
// Счетчик записей здесь не меняется
func (r *Repository) Update(ctx context.Context, s *domain.CounsellingSlot) (*domain.CounsellingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_date", s.Date.Format(domain.DateFormat)).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("capacity", s.Capacity).
		Set("disabled", s.Disabled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrSlotExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// IncrementBooked атомарно занимает место в слоте
// Строка меняется только если есть свободное место и слот не отключен,
// поэтому параллельные записи не могут превысить вместимость
func (r *Repository) IncrementBooked(ctx context.Context, id int64) (*domain.CounsellingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := incrementBookedQuery(id)
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBooked - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// DecrementBooked освобождает место в слоте (счетчик не опускается ниже нуля)
func (r *Repository) DecrementBooked(ctx context.Context, id int64) (*domain.CounsellingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := decrementBookedQuery(id)
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBooked - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

func incrementBookedQuery(id int64) (string, []interface{}, error) {
	return psqlbuilder.Update(table).
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "disabled": false}).
		Where("booked_count < capacity").
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
}

func decrementBookedQuery(id int64) (string, []interface{}, error) {
	return psqlbuilder.Update(table).
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("booked_count > 0").
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
}

// CountUpcoming количество слотов начиная с даты from
func (r *Repository) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.GtOrEq{"slot_date": from.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountUpcoming - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountUpcoming - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func scanSlot(row rowScanner) (*domain.CounsellingSlot, error) {
	var s domain.CounsellingSlot
	var createdBy sql.NullInt64

	err := row.Scan(
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.BookedCount,
		&s.Disabled,
		&createdBy,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if createdBy.Valid {
		s.CreatedBy = &createdBy.Int64
	}

	return &s, nil
}
