package discountrepo

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/discount"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDiscountRepository implements DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GORM discount repository.
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// Add saves a new discount to the database.
func (r *GormDiscountRepository) Add(ctx context.Context, aggregate *discount.Discount) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing discount to the database. Used is written
// explicitly because marking a code used is the one mutation this
// aggregate has.
func (r *GormDiscountRepository) Update(ctx context.Context, aggregate *discount.Discount) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DiscountDTO{}).
		Where("code = ?", dto.Code).
		Updates(map[string]any{
			"kind":        dto.Kind,
			"value":       dto.Value,
			"valid_from":  dto.ValidFrom,
			"valid_until": dto.ValidUntil,
			"used":        dto.Used,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetByCode retrieves a discount by its code. Lookup normalizes the code
// the same way the aggregate does, so callers can pass user input as-is.
func (r *GormDiscountRepository) GetByCode(
	ctx context.Context,
	code string,
) (*discount.Discount, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var dto DiscountDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", normalized).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("discount", normalized)
		}
		return nil, err
	}

	return toDomain(dto)
}
