package handlers

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

// fakeLeadStore emula o upsert pela chave natural (launch_id, email) em
// memória: replay sobrescreve name/phone, zera tags e troca o metadata por
// inteiro, devolvendo o id da linha existente.
type fakeLeadStore struct {
	byKey map[string]*entity.Lead
	rows  []*entity.Lead
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{byKey: make(map[string]*entity.Lead)}
}

func leadKey(launchID, email string) string {
	return launchID + "|" + email
}

func (f *fakeLeadStore) Upsert(ctx context.Context, lead *entity.Lead) error {
	key := leadKey(lead.LaunchID, lead.Email)
	if existing, ok := f.byKey[key]; ok {
		existing.Name = lead.Name
		existing.Phone = lead.Phone
		existing.Tags = lead.Tags
		existing.Metadata = lead.Metadata
		lead.ID = existing.ID
		return nil
	}
	copy := *lead
	f.byKey[key] = &copy
	f.rows = append(f.rows, &copy)
	return nil
}

func (f *fakeLeadStore) FindOrCreate(ctx context.Context, lead *entity.Lead) (string, error) {
	key := leadKey(lead.LaunchID, lead.Email)
	if existing, ok := f.byKey[key]; ok {
		return existing.ID, nil
	}
	copy := *lead
	f.byKey[key] = &copy
	f.rows = append(f.rows, &copy)
	return copy.ID, nil
}

// fakeSaleStore emula o upsert por transaction_id em memória, para testar a
// idempotência de replays fim a fim no handler.
type fakeSaleStore struct {
	byTransaction map[string]*entity.Sale
	rows          []*entity.Sale
	failNext      bool
}

func newFakeSaleStore() *fakeSaleStore {
	return &fakeSaleStore{byTransaction: make(map[string]*entity.Sale)}
}

func (f *fakeSaleStore) Upsert(ctx context.Context, sale *entity.Sale) error {
	if f.failNext {
		f.failNext = false
		return context.DeadlineExceeded
	}

	if sale.TransactionID != "" {
		if existing, ok := f.byTransaction[sale.TransactionID]; ok {
			existing.ProductName = sale.ProductName
			existing.AmountCents = sale.AmountCents
			existing.Status = sale.Status
			existing.PaymentMethod = sale.PaymentMethod
			if sale.LeadID != "" {
				existing.LeadID = sale.LeadID
			}
			sale.ID = existing.ID
			return nil
		}
		copy := *sale
		f.byTransaction[sale.TransactionID] = &copy
		f.rows = append(f.rows, &copy)
		return nil
	}

	copy := *sale
	f.rows = append(f.rows, &copy)
	return nil
}
