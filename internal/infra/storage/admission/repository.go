package admission

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

const (
	table          = "admissions"
	documentsTable = "admission_documents"
	defaultLimit   = 50
)

var columns = []string{
	"a.id",
	"a.enquiry_id",
	"a.token_id",
	"a.status",
	"a.fields",
	"a.principal_remarks",
	"a.reviewed_by",
	"a.reviewed_at",
	"a.submitted_at",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий дел о поступлении и их документов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория дел
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create открывает дело
// Второе дело по тому же обращению возвращает ErrAdmissionExists
func (r *Repository) Create(ctx context.Context, a *domain.Admission) (*domain.Admission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fields := a.Fields
	if fields == nil {
		fields = domain.Fields{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("enquiry_id", "token_id", "status", "fields").
		Values(a.EnquiryID, a.TokenID, a.Status, fields).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrAdmissionExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.Fields = fields
	a.Documents = []domain.AdmissionDocument{}
	return a, nil
}

// GetByID получает дело по ID (без документов)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Admission, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"a.id": id})
}

// GetByEnquiryID получает дело, открытое по обращению
func (r *Repository) GetByEnquiryID(ctx context.Context, enquiryID int64) (*domain.Admission, error) {
	return r.getOne(ctx, "GetByEnquiryID", squirrel.Eq{"a.enquiry_id": enquiryID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Admission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table + " a").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAdmission(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan admission: %v", ErrScanRow, op, err)
	}

	return a, nil
}

// List получает дела по фильтру, новые первыми
// Поиск идет по токену и по именам из обращения
func (r *Repository) List(ctx context.Context, filter domain.AdmissionFilter) ([]*domain.Admission, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	selectBuilder := psqlbuilder.Select(columns...).
		From(table + " a").
		Join("enquiries e ON e.id = a.enquiry_id").
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(limit).
		Offset(filter.Offset)

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"a.token_id": pattern},
			squirrel.ILike{"e.parent_name": pattern},
			squirrel.ILike{"e.student_name": pattern},
		})
	}

	return r.list(ctx, "List", selectBuilder)
}

// ListByMobile получает дела родителя по номеру телефона из обращения
func (r *Repository) ListByMobile(ctx context.Context, mobile string) ([]*domain.Admission, error) {
	selectBuilder := psqlbuilder.Select(columns...).
		From(table + " a").
		Join("enquiries e ON e.id = a.enquiry_id").
		Where(squirrel.Eq{"e.mobile": mobile}).
		OrderBy("a.created_at DESC")

	return r.list(ctx, "ListByMobile", selectBuilder)
}

func (r *Repository) list(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) ([]*domain.Admission, error) {
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

	admissions := make([]*domain.Admission, 0)
	for rows.Next() {
		a, err := scanAdmission(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		admissions = append(admissions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return admissions, nil
}

// Update сохраняет поля анкеты и статус дела
func (r *Repository) Update(ctx context.Context, a *domain.Admission) (*domain.Admission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("fields", a.Fields).
		Set("status", a.Status).
		Set("submitted_at", a.SubmittedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrAdmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return a, nil
}

// Review сохраняет решение директора
// Строка меняется только если дело все еще в статусе submitted
func (r *Repository) Review(ctx context.Context, id int64, decision domain.AdmissionStatus, remarks *string, reviewerID int64, at time.Time) (*domain.Admission, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table+" a").
		Set("status", decision).
		Set("principal_remarks", remarks).
		Set("reviewed_by", reviewerID).
		Set("reviewed_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"a.id": id, "a.status": domain.AdmissionStatusSubmitted}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Review - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAdmission(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Review - execute update: %v", ErrExecQuery, err)
	}

	return a, nil
}

// AddDocument прикрепляет документ к делу
func (r *Repository) AddDocument(ctx context.Context, doc *domain.AdmissionDocument) (*domain.AdmissionDocument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(documentsTable).
		Columns("admission_id", "name", "url").
		Values(doc.AdmissionID, doc.Name, doc.URL).
		Suffix("RETURNING id, uploaded_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddDocument - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &doc.UploadedAt)
	if pgerr.IsForeignKeyViolation(err) {
		return nil, ErrAdmissionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AddDocument - execute insert: %v", ErrExecQuery, err)
	}

	return doc, nil
}

// DeleteDocument удаляет документ дела
func (r *Repository) DeleteDocument(ctx context.Context, admissionID, documentID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(documentsTable).
		Where(squirrel.Eq{"id": documentID, "admission_id": admissionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDocument - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDocument - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDocument - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

// ListDocuments получает документы дела в порядке загрузки
func (r *Repository) ListDocuments(ctx context.Context, admissionID int64) ([]domain.AdmissionDocument, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "admission_id", "name", "url", "uploaded_at").
		From(documentsTable).
		Where(squirrel.Eq{"admission_id": admissionID}).
		OrderBy("uploaded_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocuments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocuments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	docs := make([]domain.AdmissionDocument, 0)
	for rows.Next() {
		var d domain.AdmissionDocument
		if err := rows.Scan(&d.ID, &d.AdmissionID, &d.Name, &d.URL, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("%w: ListDocuments - scan row: %v", ErrScanRow, err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDocuments - rows error: %v", ErrScanRow, err)
	}

	return docs, nil
}

// CountByStatus количество дел по статусам
func (r *Repository) CountByStatus(ctx context.Context) (map[domain.AdmissionStatus]int, error) {
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

	counts := make(map[domain.AdmissionStatus]int, len(domain.AdmissionStatuses))
	for _, s := range domain.AdmissionStatuses {
		counts[s] = 0
	}
	for rows.Next() {
		var status domain.AdmissionStatus
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

func scanAdmission(row rowScanner) (*domain.Admission, error) {
	var a domain.Admission
	var remarks sql.NullString
	var reviewedBy sql.NullInt64
	var reviewedAt, submittedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.EnquiryID,
		&a.TokenID,
		&a.Status,
		&a.Fields,
		&remarks,
		&reviewedBy,
		&reviewedAt,
		&submittedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if remarks.Valid {
		a.PrincipalRemarks = &remarks.String
	}
	if reviewedBy.Valid {
		a.ReviewedBy = &reviewedBy.Int64
	}
	if reviewedAt.Valid {
		a.ReviewedAt = &reviewedAt.Time
	}
	if submittedAt.Valid {
		a.SubmittedAt = &submittedAt.Time
	}

	return &a, nil
}
