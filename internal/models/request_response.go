package models

// Request models
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=admin employee"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type ProductRowInput struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	PriceBeforeTax float64 `json:"priceBeforeTax"`
	Stock          int     `json:"stock"`
}

type CreateCompanyRequest struct {
	Name     string            `json:"name" binding:"required"`
	Products []ProductRowInput `json:"products"`
}

type AddProductsRequest struct {
	Products []ProductRowInput `json:"products" binding:"required"`
}

type InvoiceItemInput struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CreateInvoiceRequest struct {
	CompanyID int                `json:"companyId" binding:"required"`
	Items     []InvoiceItemInput `json:"items"`
}

// AddPaymentRequest carries no amount validation: negative or zero
// amounts pass through, matching the silent-default contract.
type AddPaymentRequest struct {
	Amount float64 `json:"amount"`
}

type AddToCartRequest struct {
	Code string `json:"code" binding:"required"`
}

type SetReceivedRequest struct {
	Amount float64 `json:"amount"`
}

type RenameSidebarRequest struct {
	Label string `json:"label"`
}

// Response models
type AuthResponse struct {
	Status    string `json:"status"`
	Token     string `json:"token,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"`
	User      *User  `json:"user,omitempty"`
}

type UserListResponse struct {
	Status string `json:"status"`
	Users  []User `json:"users"`
}

type UserResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user"`
}

type CompanyListResponse struct {
	Status    string    `json:"status"`
	Companies []Company `json:"companies"`
}

type CompanyResponse struct {
	Status  string   `json:"status"`
	Company *Company `json:"company"`
}

type ProductResponse struct {
	Status  string   `json:"status"`
	Product *Product `json:"product"`
}

type InvoiceListResponse struct {
	Status   string    `json:"status"`
	Invoices []Invoice `json:"invoices"`
}

type InvoiceResponse struct {
	Status  string   `json:"status"`
	Invoice *Invoice `json:"invoice"`
}

type SaleResponse struct {
	Status string `json:"status"`
	Sale   *Sale  `json:"sale"`
}

type SettingsResponse struct {
	Status   string       `json:"status"`
	Settings *AppSettings `json:"settings"`
}

// CartView is the current state of the point-of-sale cart.
type CartView struct {
	Items    []SaleItem `json:"items"`
	Total    float64    `json:"total"`
	Received float64    `json:"received"`
	Change   float64    `json:"change"`
}

type CartResponse struct {
	Status string    `json:"status"`
	Cart   *CartView `json:"cart"`
}

// SalesReport aggregates over the Sales collection.
type SalesReport struct {
	TotalSales float64 `json:"totalSales"`
	Count      int     `json:"count"`
	Sales      []Sale  `json:"sales"`
}

type SalesReportResponse struct {
	Status string       `json:"status"`
	Report *SalesReport `json:"report"`
}

// LowStockProduct flags a price-list row at or below the configured
// low-stock threshold.
type LowStockProduct struct {
	CompanyID   int     `json:"companyId"`
	CompanyName string  `json:"companyName"`
	Product     Product `json:"product"`
}

// InventoryReport lists delivered invoices plus low-stock products.
type InventoryReport struct {
	Delivered []Invoice         `json:"delivered"`
	LowStock  []LowStockProduct `json:"lowStock"`
}

type InventoryReportResponse struct {
	Status string           `json:"status"`
	Report *InventoryReport `json:"report"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
