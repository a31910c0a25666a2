package services

import (
	"context"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

type InvoiceService interface {
	List(ctx context.Context, page, limit int) (models.Page[models.Invoice], error)
	Get(ctx context.Context, id string) (models.Invoice, error)
	Create(ctx context.Context, inv models.NewInvoice) (models.Invoice, error)
	Resync(ctx context.Context, id string) (string, error)
	RetryAll(ctx context.Context) (models.RetryAllResult, error)
}

type invoiceService struct {
	client *api.Client
}

func NewInvoiceService(client *api.Client) InvoiceService {
	return &invoiceService{client: client}
}

func (s *invoiceService) List(ctx context.Context, page, limit int) (models.Page[models.Invoice], error) {
	return decodePage[models.Invoice](s.client.Invoices(ctx, page, limit))
}

func (s *invoiceService) Get(ctx context.Context, id string) (models.Invoice, error) {
	return api.Decode[models.Invoice](s.client.Invoice(ctx, id))
}

func (s *invoiceService) Create(ctx context.Context, inv models.NewInvoice) (models.Invoice, error) {
	return api.Decode[models.Invoice](s.client.CreateInvoice(ctx, inv))
}

// Resync asks the backend to resubmit one invoice and returns its message.
func (s *invoiceService) Resync(ctx context.Context, id string) (string, error) {
	return messageOf(s.client.ResyncInvoice(ctx, id))
}

func (s *invoiceService) RetryAll(ctx context.Context) (models.RetryAllResult, error) {
	env := s.client.RetryAllInvoices(ctx)
	if err := env.Err(); err != nil {
		return models.RetryAllResult{}, err
	}
	if len(env.Data) == 0 {
		return models.RetryAllResult{}, nil
	}
	return api.Decode[models.RetryAllResult](env)
}

// messageOf returns the "message" of a success payload, if any.
func messageOf(env api.Envelope) (string, error) {
	if err := env.Err(); err != nil {
		return "", err
	}
	if len(env.Data) == 0 {
		return "", nil
	}
	m, err := api.Decode[struct {
		Message string `json:"message"`
	}](env)
	if err != nil {
		return "", nil
	}
	return m.Message, nil
}
