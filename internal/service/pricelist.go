package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/marketpro/pos-server/internal/models"
)

// ListCompanies returns the supplier list, optionally filtered by a
// substring match on name or id.
func (s *DefaultService) ListCompanies(ctx context.Context, search string) ([]models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	if search == "" {
		return companies, nil
	}

	filtered := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		if strings.Contains(c.Name, search) || strings.Contains(strconv.Itoa(c.ID), search) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *DefaultService) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// CreateCompany adds a supplier with zero or more price-list rows.
// Duplicate product codes, empty names and negative prices all pass
// through without error.
func (s *DefaultService) CreateCompany(ctx context.Context, req models.CreateCompanyRequest) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company := &models.Company{
		Name:     req.Name,
		Products: buildProducts(req.Products),
	}

	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("error creating company: %w", err)
	}
	return company, nil
}

// AddProducts appends rows to an existing company's price list.
// Products are append-only.
func (s *DefaultService) AddProducts(ctx context.Context, companyID int, rows []models.ProductRowInput) (*models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	if err := s.repo.AppendProducts(ctx, companyID, buildProducts(rows)); err != nil {
		return nil, fmt.Errorf("error appending products: %w", err)
	}

	company, err = s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	return company, nil
}

// LookupProduct resolves a code within one company's price list only.
// Invoice drafting uses this to autofill name, pre-tax price and the
// current stock.
func (s *DefaultService) LookupProduct(ctx context.Context, companyID int, code string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("error getting company: %w", err)
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}

	product := company.FindProduct(code)
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func buildProducts(rows []models.ProductRowInput) []models.Product {
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p := models.Product{
			Code:  row.Code,
			Name:  row.Name,
			Stock: row.Stock,
		}
		p.SetPriceBeforeTax(row.PriceBeforeTax)
		products = append(products, p)
	}
	return products
}
