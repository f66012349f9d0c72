package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/marketpro/pos-server/internal/api/testutils"
	"github.com/marketpro/pos-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful login with the built-in admin
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/login",
		models.LoginRequest{Username: "admin", Password: "admin"},
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.AuthResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.NotEmpty(t, response.Token)
	require.NotNil(t, response.User)
	assert.Equal(t, "admin", response.User.Username)
	assert.Equal(t, models.RoleAdmin, response.User.Role)

	// Passwords never leave the server
	assert.NotContains(t, w.Body.String(), `"password"`)

	// Test case 2: Wrong password
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/login",
		models.LoginRequest{Username: "admin", Password: "nope"},
		nil,
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Missing fields
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/login",
		map[string]string{"username": "admin"},
		nil,
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/companies", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/companies",
		nil,
		map[string]string{"Authorization": "Bearer not-a-token"},
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/companies",
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserManagementIsAdminOnly(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Employees cannot manage accounts
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/users",
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admin creates a new employee
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/users",
		models.CreateUserRequest{Username: "omar", Password: "pw", Phone: "0100000000"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusCreated, w.Code)

	var created models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.User)
	assert.Equal(t, models.RoleEmployee, created.User.Role)
	assert.Equal(t, models.AllSections(), created.User.Permissions)

	// Duplicate usernames are rejected
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/users",
		models.CreateUserRequest{Username: "omar", Password: "pw2"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusConflict, w.Code)

	// New account can log in with its plaintext password
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/login",
		models.LoginRequest{Username: "omar", Password: "pw"},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting the new user works; deleting admin is blocked
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/users/"+created.User.ID,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/users/1",
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
