package models

import (
	"time"
)

// Role values for User.Role
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Invoice lifecycle states
const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
)

// TaxMultiplier is the fixed 14% tax applied on top of a supplier's
// pre-tax price.
const TaxMultiplier = 1.14

// MaxPaymentsPerInvoice caps the number of partial payments kept on an
// invoice. Later payment attempts are discarded.
const MaxPaymentsPerInvoice = 3

// User represents a staff member who can log into the system.
// Passwords are stored and compared in plaintext; state lives only for
// the lifetime of the process.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Password    string    `json:"-"` // Never returned in JSON
	Role        string    `json:"role"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	StartDate   time.Time `json:"startDate"`
	Permissions []string  `json:"permissions"`
}

// Product is one row of a supplier's price list. Code is unique within
// its owning company by convention only; duplicates across companies
// are allowed and handled per-operation.
type Product struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	PriceBeforeTax float64 `json:"priceBeforeTax"`
	PriceAfterTax  float64 `json:"priceAfterTax"`
	Stock          int     `json:"stock"`
}

// SetPriceBeforeTax updates the pre-tax price and rederives the
// tax-inclusive price.
func (p *Product) SetPriceBeforeTax(v float64) {
	p.PriceBeforeTax = v
	p.PriceAfterTax = v * TaxMultiplier
}

// Company is a supplier owning a product/price list. Products are
// appended, never removed.
type Company struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// FindProduct returns the first product with the given code, or nil.
func (c *Company) FindProduct(code string) *Product {
	for i := range c.Products {
		if c.Products[i].Code == code {
			return &c.Products[i]
		}
	}
	return nil
}

// Payment is one partial payment toward an invoice total.
type Payment struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// InvoiceItem is one line of a purchase invoice. Field values are
// snapshots taken at invoice-creation time; later edits to the
// company's price list do not retroactively change them.
type InvoiceItem struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// SetPrice updates the unit price and recomputes the line subtotal.
func (it *InvoiceItem) SetPrice(v float64) {
	it.Price = v
	it.recompute()
}

// SetQuantity updates the quantity and recomputes the line subtotal.
func (it *InvoiceItem) SetQuantity(q int) {
	it.Quantity = q
	it.recompute()
}

func (it *InvoiceItem) recompute() {
	it.Subtotal = it.Price * float64(it.Quantity)
}

// Invoice is a purchase order from a company, tracked through the
// pending/delivered toggle with up to three partial payments.
type Invoice struct {
	ID          int           `json:"id"`
	CompanyID   int           `json:"companyId"`
	CompanyName string        `json:"companyName"`
	Items       []InvoiceItem `json:"items"`
	Total       float64       `json:"total"`
	Date        time.Time     `json:"date"`
	Status      string        `json:"status"`
	Payments    []Payment     `json:"payments"`
	IsPaid      bool          `json:"isPaid"`
}

// PaidTotal sums the stored payments.
func (inv *Invoice) PaidTotal() float64 {
	var sum float64
	for _, p := range inv.Payments {
		sum += p.Amount
	}
	return sum
}

// SaleItem is one line of a point-of-sale cart or a completed sale.
// Price already includes tax and the configured profit margin.
type SaleItem struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Sale is a completed checkout transaction. Immutable once created.
type Sale struct {
	ID             int64      `json:"id"`
	Items          []SaleItem `json:"items"`
	Total          float64    `json:"total"`
	ReceivedAmount float64    `json:"receivedAmount"`
	ChangeAmount   float64    `json:"changeAmount"`
	Date           time.Time  `json:"date"`
}

// AppSettings is the process-wide configuration mutated by the settings
// screen. No field is validated.
type AppSettings struct {
	AppName           string            `json:"appName"`
	ProfitMargin      float64           `json:"profitMargin"`
	LowStockThreshold int               `json:"lowStockThreshold"`
	IsGlassMode       bool              `json:"isGlassMode"`
	SidebarNames      map[string]string `json:"sidebarNames"`
}
