package customerrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormCustomerRepository creates a new GormCustomerRepository instance.
func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{db: db, tracker: tracker}
}

// Get retrieves a customer's loyalty state by id.
func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	var dto CustomerDTO
	result := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id.String())
		}
		return nil, result.Error
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return aggregate, nil
}

// Update persists a re-ranked customer.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"total_spending": dto.TotalSpending,
			"ranking_id":     dto.RankingID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("customer %s: %w", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

// GormRankingRepository implements ports.RankingRepository using GORM. The
// band table is reference data read once at startup, so no transaction or
// tracking is involved.
type GormRankingRepository struct {
	db *gorm.DB
}

// NewGormRankingRepository creates a new GormRankingRepository instance.
func NewGormRankingRepository(db *gorm.DB) *GormRankingRepository {
	return &GormRankingRepository{db: db}
}

// GetAllBands retrieves every ranking band ordered by their lower bound.
func (r *GormRankingRepository) GetAllBands(ctx context.Context) ([]customer.Band, error) {
	var dtos []BandDTO
	result := r.db.WithContext(ctx).Order("min_spending").Find(&dtos)
	if result.Error != nil {
		return nil, result.Error
	}

	bands := make([]customer.Band, 0, len(dtos))
	for _, dto := range dtos {
		band, err := bandToDomain(dto)
		if err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	return bands, nil
}
