package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/launch-webhooks/internal/entity"
	"github.com/xavierca1/launch-webhooks/internal/infra/queue"
)

func newRecordSaleFixture() (*MockLeadRepository, *MockSaleRepository, *MockSaleEventProducer, *RecordSaleUseCase) {
	mockLeadRepo := new(MockLeadRepository)
	mockSaleRepo := new(MockSaleRepository)
	mockProducer := new(MockSaleEventProducer)
	uc := NewRecordSaleUseCase(mockLeadRepo, mockSaleRepo, DefaultStatusNormalizer(), mockProducer)
	return mockLeadRepo, mockSaleRepo, mockProducer, uc
}

var saleLaunch = &entity.Launch{ID: "launch-1", LaunchCode: "lanc-01"}

// TestRecordSaleHotmartApproved - Cenário principal: approved vira paid
func TestRecordSaleHotmartApproved(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("lead-1", nil)

	var saved *entity.Sale
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.Sale)
	}).Return(nil)
	mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(nil)

	input := RecordSaleInput{
		Email:         "cliente@example.com",
		Name:          "Cliente",
		Product:       "Curso Completo",
		Amount:        100.00,
		Status:        "approved",
		PaymentMethod: "credit_card",
		TransactionID: "T1",
	}

	output, err := uc.Execute(context.Background(), saleLaunch, "hotmart", input)

	assert.NoError(t, err)
	assert.Equal(t, "lead-1", output.LeadID)
	assert.Equal(t, "paid", output.Status)
	assert.NotEmpty(t, output.SaleID)

	assert.Equal(t, "paid", saved.Status)
	assert.Equal(t, int64(10000), saved.AmountCents)
	assert.Equal(t, "hotmart", saved.Platform)
	assert.Equal(t, "T1", saved.TransactionID)
	assert.Equal(t, "lead-1", saved.LeadID)

	mockProducer.AssertCalled(t, "PublishSaleEvent", mock.Anything, mock.MatchedBy(func(p queue.SaleEventPayload) bool {
		return p.Status == "paid" && p.AmountCents == 10000 && p.Email == "cliente@example.com"
	}))
}

// TestRecordSaleNormalizesPlatformCase - O output carrega a plataforma já
// normalizada, pronta para label de métrica
func TestRecordSaleNormalizesPlatformCase(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("lead-1", nil)

	var saved *entity.Sale
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.Sale)
	}).Return(nil)
	mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(nil)

	output, err := uc.Execute(context.Background(), saleLaunch, " HOTMART ", RecordSaleInput{
		Email:  "x@example.com",
		Status: "approved",
	})

	assert.NoError(t, err)
	assert.Equal(t, "hotmart", output.Platform)
	assert.Equal(t, "hotmart", saved.Platform)
	assert.Equal(t, "paid", output.Status)
}

// TestRecordSaleAmountDerivation - amount_cents explícito > amount decimal > 0
func TestRecordSaleAmountDerivation(t *testing.T) {
	tests := []struct {
		name     string
		input    RecordSaleInput
		expected int64
	}{
		{"decimal half-up", RecordSaleInput{Email: "a@b.c", Amount: 49.9}, 4990},
		{"cents passthrough", RecordSaleInput{Email: "a@b.c", AmountCents: 4990}, 4990},
		{"cents vence sobre decimal", RecordSaleInput{Email: "a@b.c", Amount: 10.0, AmountCents: 1500}, 1500},
		{"ambos ausentes", RecordSaleInput{Email: "a@b.c"}, 0},
		{"meio centavo arredonda pra cima", RecordSaleInput{Email: "a@b.c", Amount: 0.005}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()
			mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("lead-1", nil)

			var saved *entity.Sale
			mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
				saved = args.Get(1).(*entity.Sale)
			}).Return(nil)
			mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(nil)

			_, err := uc.Execute(context.Background(), saleLaunch, "hotmart", tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, saved.AmountCents)
		})
	}
}

// TestRecordSaleMissingEmail - Sem email nada é escrito
func TestRecordSaleMissingEmail(t *testing.T) {
	mockLeadRepo, mockSaleRepo, _, uc := newRecordSaleFixture()

	_, err := uc.Execute(context.Background(), saleLaunch, "hotmart", RecordSaleInput{Status: "approved"})

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "Email is required", err.Error())
	mockLeadRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything)
	mockSaleRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

// TestRecordSaleLeadFailureDoesNotAbort - Venda persiste sem lead_id
func TestRecordSaleLeadFailureDoesNotAbort(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("", errors.New("unique violation"))

	var saved *entity.Sale
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.Sale)
	}).Return(nil)
	mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(nil)

	output, err := uc.Execute(context.Background(), saleLaunch, "hubla", RecordSaleInput{Email: "x@example.com", Status: "paid"})

	assert.NoError(t, err)
	assert.Empty(t, output.LeadID)
	assert.Empty(t, saved.LeadID)
	assert.Equal(t, "paid", saved.Status)
}

// TestRecordSalePlaceholderLead - Lead criado a partir da venda leva tag customer
func TestRecordSalePlaceholderLead(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	var placeholder *entity.Lead
	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		placeholder = args.Get(1).(*entity.Lead)
	}).Return("lead-9", nil)
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), saleLaunch, "Monetizze", RecordSaleInput{Email: "novo@example.com", Name: "Novo", Status: "paid"})

	assert.NoError(t, err)
	assert.Equal(t, []string{"customer"}, placeholder.Tags)
	assert.Equal(t, "sales_webhook", placeholder.Metadata["source"])
	assert.Equal(t, "monetizze", placeholder.Metadata["platform"])
	assert.Equal(t, true, placeholder.Metadata["created_from_sale"])
}

// TestRecordSaleSaleRepoFailure - Falha na escrita vira TechnicalError
func TestRecordSaleSaleRepoFailure(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("lead-1", nil)
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("timeout"))

	_, err := uc.Execute(context.Background(), saleLaunch, "hotmart", RecordSaleInput{Email: "x@example.com", Status: "approved"})

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	assert.Equal(t, "Failed to save sale", err.Error())
	mockProducer.AssertNotCalled(t, "PublishSaleEvent", mock.Anything, mock.Anything)
}

// TestRecordSalePublishFailureStillSucceeds - Venda durável responde 200 mesmo sem fila
func TestRecordSalePublishFailureStillSucceeds(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("lead-1", nil)
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	output, err := uc.Execute(context.Background(), saleLaunch, "hotmart", RecordSaleInput{Email: "x@example.com", Status: "approved"})

	assert.NoError(t, err)
	assert.NotEmpty(t, output.SaleID)
}

// TestRecordSaleDefaultProductName
func TestRecordSaleDefaultProductName(t *testing.T) {
	mockLeadRepo, mockSaleRepo, mockProducer, uc := newRecordSaleFixture()

	mockLeadRepo.On("FindOrCreate", mock.Anything, mock.Anything).Return("lead-1", nil)

	var saved *entity.Sale
	mockSaleRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.Sale)
	}).Return(nil)
	mockProducer.On("PublishSaleEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), saleLaunch, "hotmart", RecordSaleInput{Email: "x@example.com", Status: "approved"})

	assert.NoError(t, err)
	assert.Equal(t, "Produto", saved.ProductName)
}
