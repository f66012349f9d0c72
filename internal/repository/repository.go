package repository

import (
	"context"

	"github.com/marketpro/pos-server/internal/models"
)

// Repository interface defines the methods that any state-store
// implementation must satisfy. Lookups return (nil, nil) when the
// entity does not exist.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Company operations
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id int) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	AppendProducts(ctx context.Context, companyID int, products []models.Product) error
	ReplaceCompanies(ctx context.Context, companies []models.Company) error

	// Invoice operations
	CreateInvoice(ctx context.Context, invoice *models.Invoice) error
	GetInvoice(ctx context.Context, id int) (*models.Invoice, error)
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice *models.Invoice) error

	// Sale operations
	CreateSale(ctx context.Context, sale *models.Sale) error
	ListSales(ctx context.Context) ([]models.Sale, error)

	// Settings operations
	GetSettings(ctx context.Context) (*models.AppSettings, error)
	UpdateSettings(ctx context.Context, settings *models.AppSettings) error
}
