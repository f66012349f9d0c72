package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marketpro/pos-server/internal/models"
	"github.com/marketpro/pos-server/internal/service"
)

// Handler wires the service layer to HTTP routes.
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all routes on the router.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "online"})
	})
	router.POST("/login", h.login)

	api := router.Group("/api")
	api.Use(AuthMiddleware())
	{
		api.GET("/companies", h.listCompanies)
		api.POST("/companies", h.createCompany)
		api.GET("/companies/:id", h.getCompany)
		api.POST("/companies/:id/products", h.addProducts)
		api.GET("/companies/:id/products/:code", h.lookupProduct)

		api.POST("/invoices", h.createInvoice)
		api.GET("/invoices", h.listInvoices)
		api.GET("/invoices/:id", h.getInvoice)
		api.POST("/invoices/:id/toggle-delivery", h.toggleDelivery)
		api.POST("/invoices/:id/payments", h.addPayment)
		api.GET("/invoices/:id/export", h.exportInvoice)

		api.GET("/pos/cart", h.cart)
		api.POST("/pos/cart", h.addToCart)
		api.POST("/pos/cart/:index/increment", h.incrementCartLine)
		api.POST("/pos/cart/:index/decrement", h.decrementCartLine)
		api.DELETE("/pos/cart/:index", h.removeCartLine)
		api.PUT("/pos/received", h.setReceived)
		api.POST("/pos/checkout", h.checkout)

		api.GET("/reports/sales", h.salesReport)
		api.GET("/reports/inventory", h.inventoryReport)

		api.GET("/settings", h.getSettings)

		admin := api.Group("/")
		admin.Use(RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", h.listUsers)
			admin.POST("/users", h.createUser)
			admin.DELETE("/users/:id", h.deleteUser)

			admin.PUT("/settings", h.updateSettings)
			admin.PUT("/settings/sidebar/:key", h.renameSidebar)
		}
	}
}

// Authentication handlers

func (h *Handler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// User handlers

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.UserListResponse{Status: "success", Users: users})
}

func (h *Handler) createUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	user, err := h.svc.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.UserResponse{Status: "success", User: user})
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// Price-list handlers

func (h *Handler) listCompanies(c *gin.Context) {
	companies, err := h.svc.ListCompanies(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CompanyListResponse{Status: "success", Companies: companies})
}

func (h *Handler) createCompany(c *gin.Context) {
	var req models.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	company, err := h.svc.CreateCompany(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CompanyResponse{Status: "success", Company: company})
}

func (h *Handler) getCompany(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	company, err := h.svc.GetCompany(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CompanyResponse{Status: "success", Company: company})
}

func (h *Handler) addProducts(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req models.AddProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	company, err := h.svc.AddProducts(c.Request.Context(), id, req.Products)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CompanyResponse{Status: "success", Company: company})
}

func (h *Handler) lookupProduct(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	product, err := h.svc.LookupProduct(c.Request.Context(), id, c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ProductResponse{Status: "success", Product: product})
}

// Invoice handlers

func (h *Handler) createInvoice(c *gin.Context) {
	var req models.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.svc.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		// No valid company selected aborts the operation.
		if errors.Is(err, service.ErrCompanyNotFound) {
			badRequest(c, "Select a company first")
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.InvoiceResponse{Status: "success", Invoice: invoice})
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.svc.ListInvoices(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.InvoiceListResponse{Status: "success", Invoices: invoices})
}

func (h *Handler) getInvoice(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.svc.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.InvoiceResponse{Status: "success", Invoice: invoice})
}

func (h *Handler) toggleDelivery(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.svc.ToggleDelivery(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.InvoiceResponse{Status: "success", Invoice: invoice})
}

func (h *Handler) addPayment(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req models.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.svc.AddPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.InvoiceResponse{Status: "success", Invoice: invoice})
}

func (h *Handler) exportInvoice(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	filename, data, err := h.svc.ExportInvoice(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Point-of-sale handlers

func (h *Handler) cart(c *gin.Context) {
	cart, err := h.svc.Cart(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Status: "success", Cart: cart})
}

func (h *Handler) addToCart(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	cart, err := h.svc.AddToCart(c.Request.Context(), req.Code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Status: "success", Cart: cart})
}

func (h *Handler) incrementCartLine(c *gin.Context) {
	h.adjustCartLine(c, h.svc.IncrementCartLine)
}

func (h *Handler) decrementCartLine(c *gin.Context) {
	h.adjustCartLine(c, h.svc.DecrementCartLine)
}

func (h *Handler) removeCartLine(c *gin.Context) {
	h.adjustCartLine(c, h.svc.RemoveCartLine)
}

func (h *Handler) adjustCartLine(c *gin.Context, op func(ctx context.Context, index int) (*models.CartView, error)) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}

	cart, err := op(c.Request.Context(), index)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Status: "success", Cart: cart})
}

func (h *Handler) setReceived(c *gin.Context) {
	var req models.SetReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	cart, err := h.svc.SetReceivedAmount(c.Request.Context(), req.Amount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CartResponse{Status: "success", Cart: cart})
}

func (h *Handler) checkout(c *gin.Context) {
	sale, err := h.svc.Checkout(c.Request.Context())
	if err != nil {
		// An empty cart is a silent no-op, not a failure.
		if errors.Is(err, service.ErrCartEmpty) {
			c.Status(http.StatusNoContent)
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SaleResponse{Status: "success", Sale: sale})
}

// Report handlers

func (h *Handler) salesReport(c *gin.Context) {
	report, err := h.svc.SalesReport(c.Request.Context(), c.Query("search"), c.Query("period"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SalesReportResponse{Status: "success", Report: report})
}

func (h *Handler) inventoryReport(c *gin.Context) {
	report, err := h.svc.InventoryReport(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.InventoryReportResponse{Status: "success", Report: report})
}

// Settings handlers

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.svc.Settings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SettingsResponse{Status: "success", Settings: settings})
}

func (h *Handler) updateSettings(c *gin.Context) {
	var settings models.AppSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	updated, err := h.svc.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SettingsResponse{Status: "success", Settings: updated})
}

func (h *Handler) renameSidebar(c *gin.Context) {
	var req models.RenameSidebarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	settings, err := h.svc.RenameSidebarSection(c.Request.Context(), c.Param("key"), req.Label)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SettingsResponse{Status: "success", Settings: settings})
}

// Error mapping

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err)
	case errors.Is(err, service.ErrUserExists):
		respond(c, http.StatusConflict, "CONFLICT", err)
	case errors.Is(err, service.ErrUserProtected):
		respond(c, http.StatusForbidden, "PROTECTED", err)
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCompanyNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrInvoiceNotFound),
		errors.Is(err, service.ErrCartLineNotFound):
		respond(c, http.StatusNotFound, "NOT_FOUND", err)
	default:
		respond(c, http.StatusInternalServerError, "INTERNAL", err)
	}
}

func respond(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{Status: "error", Code: code, Message: err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Status: "error", Code: "BAD_REQUEST", Message: message})
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return v, true
}
