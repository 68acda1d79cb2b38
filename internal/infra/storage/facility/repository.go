package facility

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/PMS-FacilityService/internal/domain"
	"github.com/m04kA/PMS-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/PMS-FacilityService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникального индекса
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с площадками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую площадку
// Имя площадки уникально в пределах здания: нарушение уникального
// индекса транслируется в ErrDuplicateName
func (r *Repository) Create(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(
			"building_id",
			"name",
			"type",
			"description",
			"location",
			"rules",
			"capacity",
			"is_bookable",
			"requires_approval",
			"max_booking_hours",
			"max_advance_days",
			"min_advance_hours",
			"available_from",
			"available_to",
			"available_days",
			"hourly_fee",
			"deposit_amount",
			"amenities",
			"is_active",
		).
		Values(
			facility.BuildingID,
			facility.Name,
			facility.Type,
			facility.Description,
			facility.Location,
			facility.Rules,
			facility.Capacity,
			facility.IsBookable,
			facility.RequiresApproval,
			facility.MaxBookingHours,
			facility.MaxAdvanceDays,
			facility.MinAdvanceHours,
			facility.AvailableFrom,
			facility.AvailableTo,
			facility.AvailableDays,
			facility.HourlyFee,
			facility.DepositAmount,
			pq.Array(facility.Amenities),
			facility.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&facility.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrDuplicateName, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return facility, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns()...).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	facility, err := r.scanFacility(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return facility, nil
}

// ListByBuilding получает площадки здания
// По умолчанию только активные; фильтр по типу опционален
func (r *Repository) ListByBuilding(ctx context.Context, buildingID uuid.UUID, filter domain.FacilityListFilter) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(facilityColumns()...).
		From("facilities").
		Where(squirrel.Eq{"building_id": buildingID}).
		OrderBy("name ASC")

	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filter.Type})
	}
	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBuilding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBuilding - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	facilities := make([]*domain.Facility, 0)
	for rows.Next() {
		facility, err := r.scanFacility(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBuilding - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, facility)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBuilding - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

// Update сохраняет измененные поля площадки по её ID
// Сервис работает по схеме "прочитал - применил изменения - сохранил",
// поэтому сюда приходит полная модель
func (r *Repository) Update(ctx context.Context, facility *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("name", facility.Name).
		Set("type", facility.Type).
		Set("description", facility.Description).
		Set("location", facility.Location).
		Set("rules", facility.Rules).
		Set("capacity", facility.Capacity).
		Set("is_bookable", facility.IsBookable).
		Set("requires_approval", facility.RequiresApproval).
		Set("max_booking_hours", facility.MaxBookingHours).
		Set("max_advance_days", facility.MaxAdvanceDays).
		Set("min_advance_hours", facility.MinAdvanceHours).
		Set("available_from", facility.AvailableFrom).
		Set("available_to", facility.AvailableTo).
		Set("available_days", facility.AvailableDays).
		Set("hourly_fee", facility.HourlyFee).
		Set("deposit_amount", facility.DepositAmount).
		Set("amenities", pq.Array(facility.Amenities)).
		Set("is_active", facility.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": facility.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: Update: %v", ErrDuplicateName, err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return facility, nil
}

// Deactivate выполняет мягкое удаление площадки
// История бронирований сохраняется, новые бронирования невозможны
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("facilities").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

// rowScanner объединяет *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanFacility сканирует одну строку в модель площадки
func (r *Repository) scanFacility(row rowScanner) (*domain.Facility, error) {
	var facility domain.Facility
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&facility.ID,
		&facility.BuildingID,
		&facility.Name,
		&facility.Type,
		&facility.Description,
		&facility.Location,
		&facility.Rules,
		&facility.Capacity,
		&facility.IsBookable,
		&facility.RequiresApproval,
		&facility.MaxBookingHours,
		&facility.MaxAdvanceDays,
		&facility.MinAdvanceHours,
		&facility.AvailableFrom,
		&facility.AvailableTo,
		&facility.AvailableDays,
		&facility.HourlyFee,
		&facility.DepositAmount,
		pq.Array(&facility.Amenities),
		&facility.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	facility.CreatedAt = createdAt.Time
	facility.UpdatedAt = updatedAt.Time

	return &facility, nil
}

// facilityColumns возвращает список колонок таблицы facilities
// в порядке сканирования scanFacility
func facilityColumns() []string {
	return []string{
		"id",
		"building_id",
		"name",
		"type",
		"description",
		"location",
		"rules",
		"capacity",
		"is_bookable",
		"requires_approval",
		"max_booking_hours",
		"max_advance_days",
		"min_advance_hours",
		"available_from",
		"available_to",
		"available_days",
		"hourly_fee",
		"deposit_amount",
		"amenities",
		"is_active",
		"created_at",
		"updated_at",
	}
}
