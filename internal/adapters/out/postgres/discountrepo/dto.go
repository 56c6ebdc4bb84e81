// Package discountrepo provides data transfer objects and mapping functions
// for discount code persistence.
package discountrepo

import (
	"time"

	"dispatch/internal/core/domain/model/discount"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DiscountDTO represents the database structure for persisting discount
// aggregates. The normalized code is the natural key.
type DiscountDTO struct {
	Code       string `gorm:"primaryKey"`
	Kind       int
	Value      int64
	ValidFrom  time.Time
	ValidUntil time.Time
	Used       bool
	ClientID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for discount entities.
func (DiscountDTO) TableName() string {
	return "discounts"
}

// fromDomain converts a discount domain aggregate to its database
// representation.
func fromDomain(aggregate *discount.Discount) DiscountDTO {
	var clientID *uuid.UUID
	if id := aggregate.ClientID(); id != nil {
		raw := id.Bytes()
		clientID = &raw
	}

	return DiscountDTO{
		Code:       aggregate.Code(),
		Kind:       int(aggregate.Kind()),
		Value:      aggregate.Value(),
		ValidFrom:  aggregate.ValidFrom(),
		ValidUntil: aggregate.ValidUntil(),
		Used:       aggregate.Used(),
		ClientID:   clientID,
	}
}

// toDomain converts a database DTO to a discount domain aggregate using
// RestoreDiscount.
func toDomain(dto DiscountDTO) (*discount.Discount, error) {
	var clientID *kernel.UUID
	if dto.ClientID != nil {
		cID, err := kernel.UUIDFromBytes((*dto.ClientID)[:])
		if err != nil {
			return nil, err
		}
		clientID = &cID
	}

	return discount.RestoreDiscount(
		dto.Code,
		discount.Kind(dto.Kind),
		dto.Value,
		dto.ValidFrom, dto.ValidUntil,
		dto.Used,
		clientID)
}
