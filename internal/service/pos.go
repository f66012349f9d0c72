package service

import (
	"context"
	"fmt"
	"time"

	"github.com/marketpro/pos-server/internal/models"
)

// Cart returns the current cart state of the single point-of-sale
// terminal.
func (s *DefaultService) Cart(ctx context.Context) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartView(), nil
}

func (s *DefaultService) cartView() *models.CartView {
	var total float64
	for _, line := range s.cart {
		total += line.Subtotal
	}
	change := 0.0
	if s.received > 0 {
		change = s.received - total
	}
	items := append([]models.SaleItem(nil), s.cart...)
	return &models.CartView{
		Items:    items,
		Total:    total,
		Received: s.received,
		Change:   change,
	}
}

// AddToCart resolves a code across every company's price list; when
// several companies share the code, the last match in company order
// wins the lookup. The unit price is the tax-inclusive supplier price
// marked up by the configured profit margin. Each add appends a fresh
// quantity-1 line; lines are never merged.
func (s *DefaultService) AddToCart(ctx context.Context, code string) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}

	var found *models.Product
	for i := range companies {
		if p := companies[i].FindProduct(code); p != nil {
			found = p
		}
	}
	if found == nil {
		return nil, ErrProductNotFound
	}

	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting settings: %w", err)
	}

	price := found.PriceAfterTax * (1 + settings.ProfitMargin/100)
	s.cart = append(s.cart, models.SaleItem{
		Code:     found.Code,
		Name:     found.Name,
		Price:    price,
		Quantity: 1,
		Subtotal: price,
	})
	return s.cartView(), nil
}

// IncrementCartLine raises a line's quantity by exactly one.
func (s *DefaultService) IncrementCartLine(ctx context.Context, index int) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		return nil, ErrCartLineNotFound
	}
	line := &s.cart[index]
	line.Quantity++
	line.Subtotal = float64(line.Quantity) * line.Price
	return s.cartView(), nil
}

// DecrementCartLine lowers a line's quantity by one, flooring at 1.
// Removing a line requires the explicit delete action.
func (s *DefaultService) DecrementCartLine(ctx context.Context, index int) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		return nil, ErrCartLineNotFound
	}
	line := &s.cart[index]
	if line.Quantity > 1 {
		line.Quantity--
		line.Subtotal = float64(line.Quantity) * line.Price
	}
	return s.cartView(), nil
}

func (s *DefaultService) RemoveCartLine(ctx context.Context, index int) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.cart) {
		return nil, ErrCartLineNotFound
	}
	s.cart = append(s.cart[:index:index], s.cart[index+1:]...)
	return s.cartView(), nil
}

func (s *DefaultService) SetReceivedAmount(ctx context.Context, amount float64) (*models.CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = amount
	return s.cartView(), nil
}

// Checkout turns the cart into an immutable Sale. Stock is decremented
// for each cart line in every company holding a matching code, not just
// the one that priced the line during AddToCart. An empty cart is a
// no-op. Received amounts below the total are accepted; the change due
// is recorded as negative.
func (s *DefaultService) Checkout(ctx context.Context) (*models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cart) == 0 {
		return nil, ErrCartEmpty
	}

	view := s.cartView()
	sale := &models.Sale{
		Items:          view.Items,
		Total:          view.Total,
		ReceivedAmount: view.Received,
		ChangeAmount:   view.Change,
		Date:           time.Now().UTC(),
	}

	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	for _, line := range sale.Items {
		for i := range companies {
			if p := companies[i].FindProduct(line.Code); p != nil {
				p.Stock -= line.Quantity
			}
		}
	}
	if err := s.repo.ReplaceCompanies(ctx, companies); err != nil {
		return nil, fmt.Errorf("error replacing companies: %w", err)
	}

	if err := s.repo.CreateSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("error creating sale: %w", err)
	}

	s.cart = nil
	s.received = 0
	return sale, nil
}
