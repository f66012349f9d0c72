package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marketpro/pos-server/internal/models"
)

// Report period filters.
const (
	PeriodAll   = "all"
	PeriodToday = "today"
	PeriodMonth = "month"
)

// SalesReport aggregates the Sales collection. The headline totals
// always cover all sales; search and period narrow the listed
// transactions only. Search matches a substring of the sale id.
func (s *DefaultService) SalesReport(ctx context.Context, search, period string) (*models.SalesReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing sales: %w", err)
	}

	var total float64
	for _, sale := range sales {
		total += sale.Total
	}

	now := time.Now()
	filtered := make([]models.Sale, 0, len(sales))
	for _, sale := range sales {
		if !inPeriod(sale.Date, period, now) {
			continue
		}
		if search != "" && !strings.Contains(strconv.FormatInt(sale.ID, 10), search) {
			continue
		}
		filtered = append(filtered, sale)
	}

	return &models.SalesReport{
		TotalSales: total,
		Count:      len(sales),
		Sales:      filtered,
	}, nil
}

func inPeriod(date time.Time, period string, now time.Time) bool {
	switch period {
	case PeriodToday:
		y1, m1, d1 := date.Local().Date()
		y2, m2, d2 := now.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case PeriodMonth:
		y1, m1, _ := date.Local().Date()
		y2, m2, _ := now.Date()
		return y1 == y2 && m1 == m2
	default:
		return true
	}
}

// InventoryReport lists delivered invoices, filtered by a substring
// match on company name or any item code or name, together with every
// price-list row at or below the low-stock threshold.
func (s *DefaultService) InventoryReport(ctx context.Context, search string) (*models.InventoryReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing invoices: %w", err)
	}

	delivered := make([]models.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if inv.Status != models.StatusDelivered {
			continue
		}
		if search != "" && !invoiceMatches(inv, search) {
			continue
		}
		delivered = append(delivered, inv)
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}

	var lowStock []models.LowStockProduct
	for _, c := range companies {
		for _, p := range c.Products {
			if p.Stock <= settings.LowStockThreshold {
				lowStock = append(lowStock, models.LowStockProduct{
					CompanyID:   c.ID,
					CompanyName: c.Name,
					Product:     p,
				})
			}
		}
	}

	return &models.InventoryReport{Delivered: delivered, LowStock: lowStock}, nil
}

func invoiceMatches(inv models.Invoice, search string) bool {
	if strings.Contains(inv.CompanyName, search) {
		return true
	}
	for _, item := range inv.Items {
		if strings.Contains(item.Code, search) || strings.Contains(item.Name, search) {
			return true
		}
	}
	return false
}

// Settings returns the current application settings.
func (s *DefaultService) Settings(ctx context.Context) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetSettings(ctx)
}

// UpdateSettings replaces the settings object wholesale. No field is
// validated.
func (s *DefaultService) UpdateSettings(ctx context.Context, settings models.AppSettings) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.UpdateSettings(ctx, &settings); err != nil {
		return nil, fmt.Errorf("error updating settings: %w", err)
	}
	return s.repo.GetSettings(ctx)
}

// RenameSidebarSection updates one sidebar label.
func (s *DefaultService) RenameSidebarSection(ctx context.Context, key, label string) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}
	if settings.SidebarNames == nil {
		settings.SidebarNames = map[string]string{}
	}
	settings.SidebarNames[key] = label

	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("error updating settings: %w", err)
	}
	return settings, nil
}
