package enquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AdmissionsService/internal/domain"
	"github.com/m04kA/SMC-AdmissionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AdmissionsService/pkg/pgerr"
	"github.com/m04kA/SMC-AdmissionsService/pkg/psqlbuilder"
)

const (
	table        = "enquiries"
	defaultLimit = 50
)

var columns = []string{
	"id",
	"token_id",
	"parent_name",
	"student_name",
	"mobile",
	"email",
	"grade",
	"status",
	"fields",
	"created_at",
	"updated_at",
}

// Repository репозиторий обращений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория обращений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет обращение
// Совпадение токена не перегенерируется: возвращается ErrDuplicateToken
func (r *Repository) Create(ctx context.Context, e *domain.Enquiry) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fields := e.Fields
	if fields == nil {
		fields = domain.Fields{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("token_id", "parent_name", "student_name", "mobile", "email", "grade", "status", "fields").
		Values(e.TokenID, e.ParentName, e.StudentName, e.Mobile, e.Email, e.Grade, e.Status, fields).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrDuplicateToken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	e.Fields = fields
	return e, nil
}

// GetByID получает обращение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Enquiry, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByTokenID получает обращение по токену
func (r *Repository) GetByTokenID(ctx context.Context, tokenID string) (*domain.Enquiry, error) {
	return r.getOne(ctx, "GetByTokenID", squirrel.Eq{"token_id": tokenID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	e, err := scanEnquiry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan enquiry: %v", ErrScanRow, op, err)
	}

	return e, nil
}

// List получает обращения по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.EnquiryFilter) ([]*domain.Enquiry, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(filter.Offset)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Grade != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"grade": *filter.Grade})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"parent_name": pattern},
			squirrel.ILike{"student_name": pattern},
			squirrel.ILike{"mobile": pattern},
			squirrel.ILike{"token_id": pattern},
		})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"created_at": *filter.To})
	}

	return r.list(ctx, "List", selectBuilder)
}

// ListByMobile получает обращения родителя по номеру телефона
func (r *Repository) ListByMobile(ctx context.Context, mobile string) ([]*domain.Enquiry, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"mobile": mobile}).
		OrderBy("created_at DESC")

	return r.list(ctx, "ListByMobile", selectBuilder)
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	enquiries := make([]*domain.Enquiry, 0)
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		enquiries = append(enquiries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return enquiries, nil
}

// UpdateStatus меняет статус обращения
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.EnquiryStatus) (*domain.Enquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, token_id, parent_name, student_name, mobile, email, grade, status, fields, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	e, err := scanEnquiry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return e, nil
}

// CountByStatus количество обращений по статусам
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.EnquiryStatus]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From(table).
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[domain.EnquiryStatus]int, len(domain.EnquiryStatuses))
	for _, s := range domain.EnquiryStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status domain.EnquiryStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

func scanEnquiry(row rowScanner) (*domain.Enquiry, error) {
	var e domain.Enquiry
	err := row.Scan(
		&e.ID,
		&e.TokenID,
		&e.ParentName,
		&e.StudentName,
		&e.Mobile,
		&e.Email,
		&e.Grade,
		&e.Status,
		&e.Fields,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
