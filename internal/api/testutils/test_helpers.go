package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/marketpro/pos-server/internal/api"
	"github.com/marketpro/pos-server/internal/models"
	"github.com/marketpro/pos-server/internal/repository"
	"github.com/marketpro/pos-server/internal/service"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

// TestContext holds all dependencies for tests
type TestContext struct {
	Router      *gin.Engine
	Repository  *repository.MemoryRepository
	Service     *service.DefaultService
	AdminJWT    string
	EmployeeJWT string
}

// SetupTestContext creates a new test context backed by a fresh
// in-memory store seeded with the built-in admin plus one employee.
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	repo := repository.NewMemoryRepository()
	svc := service.NewDefaultService(repo, testJWTSecret)
	handler := api.NewHandler(svc)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(testJWTSecret))
		c.Next()
	})

	handler.SetupRoutes(router)

	ctx := context.Background()
	_, err := svc.CreateUser(ctx, models.CreateUserRequest{
		Username: "cashier",
		Password: "cashier-pw",
		Role:     models.RoleEmployee,
	})
	require.NoError(t, err, "Failed to create test employee")

	adminAuth, err := svc.Login(ctx, models.LoginRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err, "Failed to log in as admin")
	employeeAuth, err := svc.Login(ctx, models.LoginRequest{Username: "cashier", Password: "cashier-pw"})
	require.NoError(t, err, "Failed to log in as employee")

	return &TestContext{
		Router:      router,
		Repository:  repo,
		Service:     svc,
		AdminJWT:    adminAuth.Token,
		EmployeeJWT: employeeAuth.Token,
	}
}

// SeedCompany creates a company with the given price-list rows and
// returns it.
func SeedCompany(t *testing.T, tc *TestContext, name string, rows ...models.ProductRowInput) *models.Company {
	t.Helper()
	company, err := tc.Service.CreateCompany(context.Background(), models.CreateCompanyRequest{
		Name:     name,
		Products: rows,
	})
	require.NoError(t, err, "Failed to seed company")
	return company
}

// PerformRequest executes an HTTP request against the router
func PerformRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer

	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// AuthHeaders returns headers with Authorization token
func AuthHeaders(token string) map[string]string {
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", token),
	}
}
