package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/marketpro/pos-server/internal/models"
	"github.com/marketpro/pos-server/internal/repository"
)

// Service defines all the business logic operations
type Service interface {
	// Authentication
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)

	// User management
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Price lists
	ListCompanies(ctx context.Context, search string) ([]models.Company, error)
	GetCompany(ctx context.Context, id int) (*models.Company, error)
	CreateCompany(ctx context.Context, req models.CreateCompanyRequest) (*models.Company, error)
	AddProducts(ctx context.Context, companyID int, rows []models.ProductRowInput) (*models.Company, error)
	LookupProduct(ctx context.Context, companyID int, code string) (*models.Product, error)

	// Invoices
	CreateInvoice(ctx context.Context, req models.CreateInvoiceRequest) (*models.Invoice, error)
	ListInvoices(ctx context.Context, search string) ([]models.Invoice, error)
	GetInvoice(ctx context.Context, id int) (*models.Invoice, error)
	ToggleDelivery(ctx context.Context, id int) (*models.Invoice, error)
	AddPayment(ctx context.Context, id int, amount float64) (*models.Invoice, error)
	ExportInvoice(ctx context.Context, id int) (filename string, data []byte, err error)

	// Point of sale
	Cart(ctx context.Context) (*models.CartView, error)
	AddToCart(ctx context.Context, code string) (*models.CartView, error)
	IncrementCartLine(ctx context.Context, index int) (*models.CartView, error)
	DecrementCartLine(ctx context.Context, index int) (*models.CartView, error)
	RemoveCartLine(ctx context.Context, index int) (*models.CartView, error)
	SetReceivedAmount(ctx context.Context, amount float64) (*models.CartView, error)
	Checkout(ctx context.Context) (*models.Sale, error)

	// Reports
	SalesReport(ctx context.Context, search, period string) (*models.SalesReport, error)
	InventoryReport(ctx context.Context, search string) (*models.InventoryReport, error)

	// Settings
	Settings(ctx context.Context) (*models.AppSettings, error)
	UpdateSettings(ctx context.Context, settings models.AppSettings) (*models.AppSettings, error)
	RenameSidebarSection(ctx context.Context, key, label string) (*models.AppSettings, error)
}

// DefaultService implements the Service interface. Every operation
// runs as one critical section under mu so that each state transition
// is an atomic unit of work against the repository, never partially
// visible to another request.
type DefaultService struct {
	mu            sync.Mutex
	repo          repository.Repository
	jwtSecret     []byte
	tokenDuration time.Duration

	// The single point-of-sale terminal's open cart.
	cart     []models.SaleItem
	received float64
}

// NewDefaultService creates a new DefaultService
func NewDefaultService(repo repository.Repository, jwtSecret string) *DefaultService {
	return &DefaultService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

func (s *DefaultService) generateJWT(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenDuration).Unix(),
		"iat":  time.Now().Unix(),
	})
	return token.SignedString(s.jwtSecret)
}
