package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/dbmetrics"
	"github.com/kappsme/appo/pkg/psqlbuilder"
	"github.com/kappsme/appo/pkg/types"
)

// appointmentColumns колонки, выбираемые при чтении записи.
// Длительность и название услуги подтягиваются LEFT JOIN'ом из services:
// если услуга удалена, оба поля будут NULL и сработает фолбэк длительности.
var appointmentColumns = []string{
	"a.id",
	"a.date",
	"a.time",
	"a.client",
	"a.phone",
	"a.service_id",
	"a.recurrence",
	"a.recurrence_end",
	"a.parent_appointment_id",
	"a.status",
	"a.notes",
	"s.name",
	"s.duration_minutes",
	"a.created_at",
	"a.updated_at",
}

// UpdateFields частичное обновление записи (nil = поле не трогаем)
type UpdateFields struct {
	Client *string
	Phone  *string
	Notes  *string
	Status *domain.AppointmentStatus
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись на приём.
// Если в контексте передана активная транзакция, использует её.
// Частичный уникальный индекс (date, time) WHERE status = 'active'
// служит последней защитой от гонки двух одновременных бронирований:
// проверка пересечений в usecase необходима, но сама по себе недостаточна.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"date",
			"time",
			"client",
			"phone",
			"service_id",
			"recurrence",
			"recurrence_end",
			"parent_appointment_id",
			"status",
			"notes",
		).
		Values(
			appt.Date,
			appt.Time,
			appt.Client,
			appt.Phone,
			appt.ServiceID,
			appt.Recurrence,
			appt.RecurrenceEnd,
			appt.ParentAppointmentID,
			appt.Status,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		LeftJoin("services s ON s.id = a.service_id").
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := r.scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// GetActiveByDate получает все активные записи на конкретную дату,
// упорядоченные по времени начала.
// Внутри транзакции добавляет FOR UPDATE OF a для блокировки строк
// на время последовательности "прочитали - проверили - записали".
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		LeftJoin("services s ON s.id = a.service_id").
		Where(squirrel.Eq{"a.date": date}).
		Where(squirrel.Eq{"a.status": domain.StatusActive}).
		OrderBy("a.time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF a")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// List получает записи с опциональной фильтрацией по дате и статусу,
// упорядоченные по дате и времени (как в клиентском календаре)
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		LeftJoin("services s ON s.id = a.service_id").
		OrderBy("a.date ASC, a.time ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
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

	return r.scanAppointments(rows)
}

// ExistsActiveAt проверяет наличие активной записи на точную пару
// (дата, время). Используется при размещении повторяющихся записей:
// занятые даты молча пропускаются, а не ломают всю серию.
func (r *Repository) ExistsActiveAt(ctx context.Context, date time.Time, t types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"time": t}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveAt - execute query: %v", ErrExecQuery, err)
	}

	return true, nil
}

// Update частично обновляет запись (клиент, телефон, заметки, статус)
func (r *Repository) Update(ctx context.Context, id int64, fields UpdateFields) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fields.Client != nil {
		updateBuilder = updateBuilder.Set("client", *fields.Client)
	}
	if fields.Phone != nil {
		updateBuilder = updateBuilder.Set("phone", *fields.Phone)
	}
	if fields.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *fields.Notes)
	}
	if fields.Status != nil {
		updateBuilder = updateBuilder.Set("status", *fields.Status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Cancel отменяет запись (статус cancelled, физическое удаление не используется)
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	status := domain.StatusCancelled
	return r.Update(ctx, id, UpdateFields{Status: &status})
}

// CancelChildren отменяет все активные дочерние записи повторяющейся серии
// Возвращает даты отмененных записей (для сброса кеша слотов)
func (r *Repository) CancelChildren(ctx context.Context, parentID int64) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"parent_appointment_id": parentID}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Suffix("RETURNING date").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CancelChildren - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CancelChildren - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]time.Time, 0)
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("%w: CancelChildren - scan date: %v", ErrScanRow, err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CancelChildren - iterate rows: %v", ErrExecQuery, err)
	}

	return dates, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appt                 domain.Appointment
		recurrenceEnd        sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appt.ID,
		&appt.Date,
		&appt.Time,
		&appt.Client,
		&appt.Phone,
		&appt.ServiceID,
		&appt.Recurrence,
		&recurrenceEnd,
		&appt.ParentAppointmentID,
		&appt.Status,
		&appt.Notes,
		&appt.ServiceName,
		&appt.ServiceDuration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if recurrenceEnd.Valid {
		appt.RecurrenceEnd = &recurrenceEnd.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := r.scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
