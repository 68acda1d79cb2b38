package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/PMS-FacilityService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения exclusion constraint
const pgExclusionViolation = "23P01"

// Repository репозиторий для работы с бронированиями площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Таблица bookings защищена exclusion constraint на пересечение интервалов
// активных бронирований одной площадки: при проигрыше гонки вставка падает
// с кодом 23P01, который транслируется в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"facility_id",
			"requester_id",
			"start_time",
			"end_time",
			"status",
			"purpose",
			"attendees_count",
			"total_fee",
			"deposit_due",
		).
		Values(
			booking.FacilityID,
			booking.RequesterID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Purpose,
			booking.Attendees,
			booking.TotalFee,
			booking.DepositDue,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrSlotTaken, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"facility_id",
		"requester_id",
		"start_time",
		"end_time",
		"status",
		"purpose",
		"attendees_count",
		"total_fee",
		"deposit_due",
		"approved_by",
		"approved_at",
		"rejected_by",
		"rejected_at",
		"rejection_reason",
		"cancelled_at",
		"cancellation_reason",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.FacilityID,
		&booking.RequesterID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Purpose,
		&booking.Attendees,
		&booking.TotalFee,
		&booking.DepositDue,
		&booking.ApprovedBy,
		&booking.ApprovedAt,
		&booking.RejectedBy,
		&booking.RejectedAt,
		&booking.RejectionReason,
		&booking.CancelledAt,
		&booking.CancellationReason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// FindActiveByFacility получает активные бронирования площадки,
// пересекающие полуоткрытый интервал [from, to)
//
// Внутри транзакции добавляет FOR UPDATE: usecase создания бронирования
// блокирует конкурирующие вставки на время проверки доступности.
func (r *Repository) FindActiveByFacility(ctx context.Context, facilityID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"facility_id",
		"requester_id",
		"start_time",
		"end_time",
		"status",
		"purpose",
		"attendees_count",
		"total_fee",
		"deposit_due",
		"approved_by",
		"approved_at",
		"rejected_by",
		"rejected_at",
		"rejection_reason",
		"cancelled_at",
		"cancellation_reason",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"facility_id": facilityID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByFacility - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByFacility - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByRequester получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByRequester(ctx context.Context, requesterID uuid.UUID, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"facility_id",
		"requester_id",
		"start_time",
		"end_time",
		"status",
		"purpose",
		"attendees_count",
		"total_fee",
		"deposit_due",
		"approved_by",
		"approved_at",
		"rejected_by",
		"rejected_at",
		"rejection_reason",
		"cancelled_at",
		"cancellation_reason",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"requester_id": requesterID}).
		OrderBy("start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequester - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByFacilityWithFilter получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Периоду (From, To) - опционально, полуоткрытый интервал
// - Статусу (Status) - опционально
// - Только активные (ActiveOnly)
func (r *Repository) GetByFacilityWithFilter(ctx context.Context, filter domain.FacilityBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"facility_id",
		"requester_id",
		"start_time",
		"end_time",
		"status",
		"purpose",
		"attendees_count",
		"total_fee",
		"deposit_due",
		"approved_by",
		"approved_at",
		"rejected_by",
		"rejected_at",
		"rejection_reason",
		"cancelled_at",
		"cancellation_reason",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"facility_id": filter.FacilityID})

	// Фильтрация по периоду
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	// Для выборки за период сортируем по началу (ASC), иначе сначала новые
	if filter.From != nil && filter.To != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// FindPendingByBuilding получает очередь бронирований на модерацию
// по всем площадкам здания, старые заявки первыми
func (r *Repository) FindPendingByBuilding(ctx context.Context, buildingID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.facility_id",
		"b.requester_id",
		"b.start_time",
		"b.end_time",
		"b.status",
		"b.purpose",
		"b.attendees_count",
		"b.total_fee",
		"b.deposit_due",
		"b.approved_by",
		"b.approved_at",
		"b.rejected_by",
		"b.rejected_at",
		"b.rejection_reason",
		"b.cancelled_at",
		"b.cancellation_reason",
		"b.created_at",
		"b.updated_at",
	).
		From("bookings b").
		Join("facilities f ON f.id = b.facility_id").
		Where(squirrel.Eq{"f.building_id": buildingID}).
		Where(squirrel.Eq{"b.status": domain.StatusPending}).
		OrderBy("b.created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingByBuilding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindPendingByBuilding - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Approve переводит бронирование pending -> approved с фиксацией модератора
// Обновление условное: если строка уже не в статусе pending, возвращает
// ErrStatusConflict и ничего не меняет
func (r *Repository) Approve(ctx context.Context, id uuid.UUID, approverID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusApproved).
		Set("approved_by", approverID).
		Set("approved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Approve - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditionalUpdate(ctx, executor, "Approve", query, args)
}

// Reject переводит бронирование pending -> rejected с причиной отказа
func (r *Repository) Reject(ctx context.Context, id uuid.UUID, rejecterID uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusRejected).
		Set("rejected_by", rejecterID).
		Set("rejected_at", squirrel.Expr("NOW()")).
		Set("rejection_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reject - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditionalUpdate(ctx, executor, "Reject", query, args)
}

// Cancel отменяет бронирование с опциональной причиной
// fromStatus - статус, из которого ожидается переход (pending или approved)
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, fromStatus domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("cancellation_reason", reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": fromStatus}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditionalUpdate(ctx, executor, "Cancel", query, args)
}

// UpdateStatus выполняет условный переход fromStatus -> toStatus без
// дополнительных полей аудита (completed, no_show)
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", toStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": fromStatus}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditionalUpdate(ctx, executor, "UpdateStatus", query, args)
}

// CompleteElapsed массово переводит approved -> completed все бронирования,
// закончившиеся не позже now. Условие WHERE и есть проверка перехода,
// поэтому повторный запуск ничего не ломает. Возвращает число обновленных строк.
func (r *Repository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusApproved}).
		Where(squirrel.LtOrEq{"end_time": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CompleteElapsed - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// execConditionalUpdate выполняет условное обновление одной строки
func (r *Repository) execConditionalUpdate(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.FacilityID,
			&booking.RequesterID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.Purpose,
			&booking.Attendees,
			&booking.TotalFee,
			&booking.DepositDue,
			&booking.ApprovedBy,
			&booking.ApprovedAt,
			&booking.RejectedBy,
			&booking.RejectedAt,
			&booking.RejectionReason,
			&booking.CancelledAt,
			&booking.CancellationReason,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// activeStatusStrings возвращает активные статусы в виде строк для IN-условия
func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
