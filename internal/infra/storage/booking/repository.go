package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/pgerr"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const table = "slot_bookings"

var columns = []string{
	"b.id",
	"b.slot_id",
	"b.admission_id",
	"b.enquiry_id",
	"b.token_id",
	"b.parent_email",
	"b.calendar_invite_sent",
	"b.principal_invite_sent",
	"b.reminders_sent",
	"b.booked_at",
}

var slotColumns = []string{
	"s.id",
	"s.slot_date",
	"s.start_time",
	"s.end_time",
	"s.capacity",
	"s.booked_count",
	"s.disabled",
	"s.created_at",
	"s.updated_at",
}

// Repository репозиторий для работы с записями на слоты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись на слот
// Вызывается в транзакции вместе с IncrementBooked слота: если у дела или обращения
// уже есть запись, возвращается ErrAlreadyBooked и транзакция откатывает увеличение счетчика
func (r *Repository) Create(ctx context.Context, b *domain.SlotBooking) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	reminders := b.RemindersSent
	if reminders == nil {
		reminders = []int{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"slot_id",
			"admission_id",
			"enquiry_id",
			"token_id",
			"parent_email",
			"calendar_invite_sent",
			"principal_invite_sent",
			"reminders_sent",
		).
		Values(
			b.SlotID,
			b.AdmissionID,
			b.EnquiryID,
			b.TokenID,
			b.ParentEmail,
			b.CalendarInviteSent,
			b.PrincipalInviteSent,
			pq.Array(toInt64(reminders)),
		).
		Suffix("RETURNING id, booked_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var bookedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &bookedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrAlreadyBooked
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.BookedAt = bookedAt.Time
	b.RemindersSent = reminders

	return b, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotBooking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"b.id": id})
}

// GetByAdmissionID получает запись дела о поступлении
func (r *Repository) GetByAdmissionID(ctx context.Context, admissionID int64) (*domain.SlotBooking, error) {
	return r.getOne(ctx, "GetByAdmissionID", squirrel.Eq{"b.admission_id": admissionID})
}

// GetByEnquiryID получает запись по обращению
func (r *Repository) GetByEnquiryID(ctx context.Context, enquiryID int64) (*domain.SlotBooking, error) {
	return r.getOne(ctx, "GetByEnquiryID", squirrel.Eq{"b.enquiry_id": enquiryID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table + " b").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return b, nil
}

// ListBySlot получает записи на слот в порядке записи
func (r *Repository) ListBySlot(ctx context.Context, slotID int64) ([]*domain.SlotBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table + " b").
		Where(squirrel.Eq{"b.slot_id": slotID}).
		OrderBy("b.booked_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.SlotBooking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySlot - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// ListByEmail получает записи родителя вместе со слотами
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*domain.BookingWithSlot, error) {
	return r.listWithSlot(ctx, "ListByEmail", squirrel.Expr("LOWER(b.parent_email) = LOWER(?)", email))
}

// ListByTokenIDs получает записи по токенам обращений родителя
func (r *Repository) ListByTokenIDs(ctx context.Context, tokenIDs []string) ([]*domain.BookingWithSlot, error) {
	if len(tokenIDs) == 0 {
		return []*domain.BookingWithSlot{}, nil
	}
	return r.listWithSlot(ctx, "ListByTokenIDs", squirrel.Eq{"b.token_id": tokenIDs})
}

// ListUpcoming получает записи на слоты в диапазоне дат [from, to] включительно
func (r *Repository) ListUpcoming(ctx context.Context, from, to time.Time) ([]*domain.BookingWithSlot, error) {
	return r.listWithSlot(ctx, "ListUpcoming", squirrel.And{
		squirrel.GtOrEq{"s.slot_date": from.Format(domain.DateFormat)},
		squirrel.LtOrEq{"s.slot_date": to.Format(domain.DateFormat)},
	})
}

// CountUpcoming количество записей на слоты начиная с даты from
func (r *Repository) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table + " b").
		Join("counselling_slots s ON s.id = b.slot_id").
		Where(squirrel.GtOrEq{"s.slot_date": from.Format(domain.DateFormat)}).
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

func (r *Repository) listWithSlot(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.BookingWithSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(append(append([]string{}, columns...), slotColumns...)...).
		From(table + " b").
		Join("counselling_slots s ON s.id = b.slot_id").
		Where(where).
		OrderBy("s.slot_date ASC", "s.start_time ASC", "b.booked_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithSlot, 0)
	for rows.Next() {
		item, err := scanBookingWithSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return result, nil
}

// Delete удаляет запись
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// MarkInvites сохраняет флаги отправки приглашений родителю и директору
func (r *Repository) MarkInvites(ctx context.Context, id int64, calendarSent, principalSent bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("calendar_invite_sent", calendarSent).
		Set("principal_invite_sent", principalSent).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkInvites - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkInvites - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkInvites - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// AddReminderSent отмечает, что напоминание за days дней отправлено
// Повторная отметка того же дня не дублирует значение
func (r *Repository) AddReminderSent(ctx context.Context, id int64, days int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("reminders_sent", squirrel.Expr("array_append(reminders_sent, ?::int)", days)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("NOT (?::int = ANY(reminders_sent))", days)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddReminderSent - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func scanBooking(row rowScanner) (*domain.SlotBooking, error) {
	var b domain.SlotBooking
	var admissionID, enquiryID sql.NullInt64
	var reminders pq.Int64Array

	err := row.Scan(
		&b.ID,
		&b.SlotID,
		&admissionID,
		&enquiryID,
		&b.TokenID,
		&b.ParentEmail,
		&b.CalendarInviteSent,
		&b.PrincipalInviteSent,
		&reminders,
		&b.BookedAt,
	)
	if err != nil {
		return nil, err
	}

	fillBooking(&b, admissionID, enquiryID, reminders)
	return &b, nil
}

func scanBookingWithSlot(row rowScanner) (*domain.BookingWithSlot, error) {
	var item domain.BookingWithSlot
	var admissionID, enquiryID sql.NullInt64
	var reminders pq.Int64Array

	b := &item.Booking
	s := &item.Slot
	err := row.Scan(
		&b.ID,
		&b.SlotID,
		&admissionID,
		&enquiryID,
		&b.TokenID,
		&b.ParentEmail,
		&b.CalendarInviteSent,
		&b.PrincipalInviteSent,
		&reminders,
		&b.BookedAt,
		&s.ID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.BookedCount,
		&s.Disabled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	fillBooking(b, admissionID, enquiryID, reminders)
	return &item, nil
}

func fillBooking(b *domain.SlotBooking, admissionID, enquiryID sql.NullInt64, reminders pq.Int64Array) {
	if admissionID.Valid {
		b.AdmissionID = &admissionID.Int64
	}
	if enquiryID.Valid {
		b.EnquiryID = &enquiryID.Int64
	}
	b.RemindersSent = make([]int, 0, len(reminders))
	for _, d := range reminders {
		b.RemindersSent = append(b.RemindersSent, int(d))
	}
}

func toInt64(values []int) []int64 {
	out := make([]int64, 0, len(values))
	for _, v := range values {
		out = append(out, int64(v))
	}
	return out
}
