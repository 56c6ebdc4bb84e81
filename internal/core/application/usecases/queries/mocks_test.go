package queries_test

import (
	"context"

	"dispatch/internal/core/domain/model/discount"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/request"
	"dispatch/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/mock"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRequestRepository) UpdateIfStatus(
	ctx context.Context, aggregate *request.Request, expected request.Status,
) error {
	args := m.Called(ctx, aggregate, expected)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockRequestRepository) GetAllPending(ctx context.Context) ([]*request.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockDiscountRepository struct{ mock.Mock }

func (m *MockDiscountRepository) Add(ctx context.Context, aggregate *discount.Discount) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDiscountRepository) Update(ctx context.Context, aggregate *discount.Discount) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDiscountRepository) GetByCode(
	ctx context.Context, code string,
) (*discount.Discount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discount.Discount), args.Error(1)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) Put(ctx context.Context, aggregate *schedule.Schedule) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockScheduleRepository) GetByCourier(
	ctx context.Context, courierID kernel.UUID,
) (*schedule.Schedule, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Schedule), args.Error(1)
}

type MockDistanceProvider struct{ mock.Mock }

func (m *MockDistanceProvider) DistanceKm(
	ctx context.Context, from, to kernel.GeoPoint,
) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}
