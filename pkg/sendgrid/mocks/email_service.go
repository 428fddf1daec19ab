package mocks

import (
	"context"

	"github.com/strixcommerce/storefront-platform/internal/models"
	"github.com/stretchr/testify/mock"
)

// EmailService is a testify mock of sendgrid.EmailService.
type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}
