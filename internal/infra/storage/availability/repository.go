package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/kappsme/appo/internal/domain"
	"github.com/kappsme/appo/pkg/dbmetrics"
	"github.com/kappsme/appo/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var windowColumns = []string{
	"id",
	"day_of_week",
	"start_time",
	"end_time",
	"slot_duration_minutes",
	"enabled",
	"created_at",
}

// Repository репозиторий для работы с окнами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает окно доступности для дня недели
func (r *Repository) Create(ctx context.Context, w *domain.Availability) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability").
		Columns("day_of_week", "start_time", "end_time", "slot_duration_minutes", "enabled").
		Values(w.DayOfWeek, w.StartTime, w.EndTime, w.SlotDurationMinutes, w.Enabled).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	return w, nil
}

// GetByID получает окно по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	w, err := r.scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// GetEnabledByDayOfWeek получает включенное окно для дня недели
// (0 = понедельник .. 6 = воскресенье). Если окон несколько, берётся
// первое по id - хранилище уникальность не гарантирует.
func (r *Repository) GetEnabledByDayOfWeek(ctx context.Context, dayOfWeek int) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability").
		Where(squirrel.Eq{"day_of_week": dayOfWeek}).
		Where(squirrel.Eq{"enabled": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetEnabledByDayOfWeek - build select query: %v", ErrBuildQuery, err)
	}

	w, err := r.scanWindow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetEnabledByDayOfWeek - scan window: %v", ErrScanRow, err)
	}

	return w, nil
}

// List получает все окна доступности, упорядоченные по дню недели
func (r *Repository) List(ctx context.Context) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability").
		OrderBy("day_of_week ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.Availability, 0)
	for rows.Next() {
		w, err := r.scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// Update полностью обновляет параметры окна
func (r *Repository) Update(ctx context.Context, id int64, w *domain.Availability) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability").
		Set("start_time", w.StartTime).
		Set("end_time", w.EndTime).
		Set("slot_duration_minutes", w.SlotDurationMinutes).
		Set("enabled", w.Enabled).
		Where(squirrel.Eq{"id": id}).
		ToSql()

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
		return ErrWindowNotFound
	}

	return nil
}

// Delete физически удаляет окно доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrWindowNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanWindow(row rowScanner) (*domain.Availability, error) {
	var (
		w         domain.Availability
		createdAt sql.NullTime
	)

	err := row.Scan(
		&w.ID,
		&w.DayOfWeek,
		&w.StartTime,
		&w.EndTime,
		&w.SlotDurationMinutes,
		&w.Enabled,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	w.CreatedAt = createdAt.Time
	return &w, nil
}
