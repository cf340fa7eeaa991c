package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/launch-webhooks/internal/entity"
	"github.com/xavierca1/launch-webhooks/internal/infra/queue"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindOrCreate(ctx context.Context, lead *entity.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Upsert(ctx context.Context, sale *entity.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

type MockLaunchRepository struct {
	mock.Mock
}

func (m *MockLaunchRepository) FindByCode(ctx context.Context, launchCode string) (*entity.Launch, error) {
	args := m.Called(ctx, launchCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Launch), args.Error(1)
}

func (m *MockLaunchRepository) FindByID(ctx context.Context, id string) (*entity.Launch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Launch), args.Error(1)
}

type MockIntegrationRepository struct {
	mock.Mock
}

func (m *MockIntegrationRepository) FindActiveByWebhookID(ctx context.Context, permanentWebhookID string) (*entity.WebhookIntegration, error) {
	args := m.Called(ctx, permanentWebhookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WebhookIntegration), args.Error(1)
}

type MockSaleEventProducer struct {
	mock.Mock
}

func (m *MockSaleEventProducer) PublishSaleEvent(ctx context.Context, payload queue.SaleEventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
