package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marketpro/pos-server/internal/export"
	"github.com/marketpro/pos-server/internal/models"
)

// CreateInvoice records a purchase invoice against a company. The
// company must exist; an empty item list produces a zero-total invoice,
// which is allowed. The invoice id comes from a counter seeded once at
// store construction, so consecutive invoices in a session get
// consecutive ids.
func (s *DefaultService) CreateInvoice(ctx context.Context, req models.CreateInvoiceRequest) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.repo.GetCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	items := make([]models.InvoiceItem, 0, len(req.Items))
	var total float64
	for _, in := range req.Items {
		item := models.InvoiceItem{Code: in.Code, Name: in.Name}
		item.SetPrice(in.Price)
		item.SetQuantity(in.Quantity)
		items = append(items, item)
		total += item.Subtotal
	}

	invoice := &models.Invoice{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Items:       items,
		Total:       total,
		Date:        time.Now().UTC(),
		Status:      models.StatusPending,
		Payments:    []models.Payment{},
		IsPaid:      false,
	}

	if err := s.repo.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("error creating invoice: %w", err)
	}
	return invoice, nil
}

// ListInvoices filters by a substring match on invoice id or company
// name.
func (s *DefaultService) ListInvoices(ctx context.Context, search string) ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices: %w", err)
	}
	if search == "" {
		return invoices, nil
	}

	filtered := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if strings.Contains(inv.CompanyName, search) || strings.Contains(strconv.Itoa(inv.ID), search) {
			filtered = append(filtered, inv)
		}
	}
	return filtered, nil
}

func (s *DefaultService) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getInvoice(ctx, id)
}

func (s *DefaultService) getInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting invoice: %w", err)
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// ToggleDelivery flips an invoice between pending and delivered. The
// pending-to-delivered transition credits stock, once, for every item
// whose code still exists in the originating company's price list;
// items whose product is gone are skipped. The reverse transition
// changes status only: stock credited on delivery is never rolled back,
// so repeated toggling inflates stock once per delivery.
func (s *DefaultService) ToggleDelivery(ctx context.Context, id int) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if invoice.Status == models.StatusDelivered {
		invoice.Status = models.StatusPending
	} else {
		invoice.Status = models.StatusDelivered
		if err := s.creditStock(ctx, invoice); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("error updating invoice: %w", err)
	}
	return invoice, nil
}

// creditStock applies the one-time stock increment for a delivered
// invoice, scoped to the invoice's originating company only.
func (s *DefaultService) creditStock(ctx context.Context, invoice *models.Invoice) error {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return fmt.Errorf("error listing companies: %w", err)
	}

	for i := range companies {
		if companies[i].ID != invoice.CompanyID {
			continue
		}
		for _, item := range invoice.Items {
			if p := companies[i].FindProduct(item.Code); p != nil {
				p.Stock += item.Quantity
			}
		}
	}

	if err := s.repo.ReplaceCompanies(ctx, companies); err != nil {
		return fmt.Errorf("error replacing companies: %w", err)
	}
	return nil
}

// AddPayment appends a payment and keeps at most the first three, in
// insertion order; a fourth and later attempt is discarded with
// payments 1-3 unchanged. IsPaid is recomputed from the stored
// payments. Amounts are not validated here.
func (s *DefaultService) AddPayment(ctx context.Context, id int, amount float64) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	invoice.Payments = append(invoice.Payments, models.Payment{Amount: amount, Date: time.Now().UTC()})
	if len(invoice.Payments) > models.MaxPaymentsPerInvoice {
		invoice.Payments = invoice.Payments[:models.MaxPaymentsPerInvoice]
	}
	invoice.IsPaid = invoice.PaidTotal() >= invoice.Total

	if err := s.repo.UpdateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("error updating invoice: %w", err)
	}
	return invoice, nil
}

// ExportInvoice renders the invoice in the tabular export format.
func (s *DefaultService) ExportInvoice(ctx context.Context, id int) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.getInvoice(ctx, id)
	if err != nil {
		return "", nil, err
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("error getting settings: %w", err)
	}

	return export.Filename(invoice), export.Build(invoice, settings.AppName), nil
}
