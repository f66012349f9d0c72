package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/marketpro/pos-server/internal/models"
)

// ErrNotFound is returned by mutating operations that target an entity
// which does not exist.
var ErrNotFound = errors.New("not found")

// State is the whole application state held by a MemoryRepository.
// It is the explicit state object every domain operation works against.
type State struct {
	Users     []models.User
	Companies []models.Company
	Invoices  []models.Invoice
	Sales     []models.Sale
	Settings  *models.AppSettings
}

// MemoryRepository implements the Repository interface with in-process
// state. All collections are returned and accepted by value: callers
// never share slices with the store, so every update is a wholesale
// replace rather than in-place mutation.
type MemoryRepository struct {
	mu    sync.RWMutex
	state State

	// Seeded once at construction from max(existing ids)+1 and never
	// re-synced mid-session.
	nextInvoiceID int
	nextSaleID    int64
}

// NewMemoryRepository creates an empty store with default settings and
// the built-in admin account.
func NewMemoryRepository() *MemoryRepository {
	return NewMemoryRepositoryFromState(State{
		Users:    []models.User{*models.InitialAdmin()},
		Settings: models.DefaultSettings(),
	})
}

// NewMemoryRepositoryFromState creates a store pre-loaded with the
// given state. The invoice id counter starts at max(existing)+1, or
// 1000 when no invoices exist. Sale ids are monotonic, seeded from the
// wall clock so they remain timestamp-like.
func NewMemoryRepositoryFromState(st State) *MemoryRepository {
	r := &MemoryRepository{
		state:         st,
		nextInvoiceID: 1000,
		nextSaleID:    time.Now().UnixMilli(),
	}
	if r.state.Settings == nil {
		r.state.Settings = models.DefaultSettings()
	}
	for _, inv := range st.Invoices {
		if inv.ID >= r.nextInvoiceID {
			r.nextInvoiceID = inv.ID + 1
		}
	}
	return r
}

// User repository methods

func (r *MemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Users = append(r.state.Users, *user)
	return nil
}

func (r *MemoryRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.state.Users {
		if u.Username == username {
			cp := copyUser(u)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.state.Users {
		if u.ID == id {
			cp := copyUser(u)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.state.Users))
	for _, u := range r.state.Users {
		users = append(users, copyUser(u))
	}
	return users, nil
}

func (r *MemoryRepository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.state.Users {
		if u.ID == id {
			r.state.Users = append(r.state.Users[:i:i], r.state.Users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Company repository methods

func (r *MemoryRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Ids start at 10 and follow max(existing)+1, recomputed per call.
	id := 10
	for _, c := range r.state.Companies {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	company.ID = id
	r.state.Companies = append(r.state.Companies, copyCompany(*company))
	return nil
}

func (r *MemoryRepository) GetCompany(ctx context.Context, id int) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.state.Companies {
		if c.ID == id {
			cp := copyCompany(c)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	companies := make([]models.Company, 0, len(r.state.Companies))
	for _, c := range r.state.Companies {
		companies = append(companies, copyCompany(c))
	}
	return companies, nil
}

func (r *MemoryRepository) AppendProducts(ctx context.Context, companyID int, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.state.Companies {
		if r.state.Companies[i].ID == companyID {
			r.state.Companies[i].Products = append(r.state.Companies[i].Products, products...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) ReplaceCompanies(ctx context.Context, companies []models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	replacement := make([]models.Company, 0, len(companies))
	for _, c := range companies {
		replacement = append(replacement, copyCompany(c))
	}
	r.state.Companies = replacement
	return nil
}

// Invoice repository methods

func (r *MemoryRepository) CreateInvoice(ctx context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice.ID = r.nextInvoiceID
	r.nextInvoiceID++
	r.state.Invoices = append(r.state.Invoices, copyInvoice(*invoice))
	return nil
}

func (r *MemoryRepository) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, inv := range r.state.Invoices {
		if inv.ID == id {
			cp := copyInvoice(inv)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	invoices := make([]models.Invoice, 0, len(r.state.Invoices))
	for _, inv := range r.state.Invoices {
		invoices = append(invoices, copyInvoice(inv))
	}
	return invoices, nil
}

func (r *MemoryRepository) UpdateInvoice(ctx context.Context, invoice *models.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.state.Invoices {
		if r.state.Invoices[i].ID == invoice.ID {
			r.state.Invoices[i] = copyInvoice(*invoice)
			return nil
		}
	}
	return ErrNotFound
}

// Sale repository methods

func (r *MemoryRepository) CreateSale(ctx context.Context, sale *models.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sale.ID = r.nextSaleID
	r.nextSaleID++
	r.state.Sales = append(r.state.Sales, copySale(*sale))
	return nil
}

func (r *MemoryRepository) ListSales(ctx context.Context) ([]models.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sales := make([]models.Sale, 0, len(r.state.Sales))
	for _, s := range r.state.Sales {
		sales = append(sales, copySale(s))
	}
	return sales, nil
}

// Settings repository methods

func (r *MemoryRepository) GetSettings(ctx context.Context) (*models.AppSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := copySettings(*r.state.Settings)
	return &cp, nil
}

func (r *MemoryRepository) UpdateSettings(ctx context.Context, settings *models.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := copySettings(*settings)
	r.state.Settings = &cp
	return nil
}

// Copy helpers. Collections cross the repository boundary by value so
// callers can never observe a partially applied update.

func copyUser(u models.User) models.User {
	u.Permissions = append([]string(nil), u.Permissions...)
	return u
}

func copyCompany(c models.Company) models.Company {
	c.Products = append([]models.Product(nil), c.Products...)
	return c
}

func copyInvoice(inv models.Invoice) models.Invoice {
	inv.Items = append([]models.InvoiceItem(nil), inv.Items...)
	inv.Payments = append([]models.Payment(nil), inv.Payments...)
	return inv
}

func copySale(s models.Sale) models.Sale {
	s.Items = append([]models.SaleItem(nil), s.Items...)
	return s
}

func copySettings(s models.AppSettings) models.AppSettings {
	names := make(map[string]string, len(s.SidebarNames))
	for k, v := range s.SidebarNames {
		names[k] = v
	}
	s.SidebarNames = names
	return s
}
