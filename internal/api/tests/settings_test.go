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

func TestSettings(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// All staff can read settings
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/settings",
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var response models.SettingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Settings)
	assert.Equal(t, "Market Pro", response.Settings.AppName)
	assert.Equal(t, 14.0, response.Settings.ProfitMargin)
	assert.Equal(t, "المبيعات اليومية", response.Settings.SidebarNames[models.SectionDailySales])

	// Only admins can change them
	updated := *response.Settings
	updated.ProfitMargin = 25
	updated.IsGlassMode = true

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/settings",
		updated,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/settings",
		updated,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 25.0, response.Settings.ProfitMargin)
	assert.True(t, response.Settings.IsGlassMode)

	// The new margin feeds POS pricing immediately
	testutils.SeedCompany(t, testCtx, "مورد",
		models.ProductRowInput{Code: "X", Name: "صنف", PriceBeforeTax: 100, Stock: 5},
	)
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/pos/cart",
		models.AddToCartRequest{Code: "X"},
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)
	var cart models.CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.InDelta(t, 114*1.25, cart.Cart.Items[0].Price, 0.01)
}

func TestRenameSidebarLabel(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/settings/sidebar/"+models.SectionDailySales,
		models.RenameSidebarRequest{Label: "الكاشير"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var response models.SettingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "الكاشير", response.Settings.SidebarNames[models.SectionDailySales])

	// Other labels are untouched
	assert.Equal(t, "إنشاء فاتورة", response.Settings.SidebarNames[models.SectionCreateInvoice])
}
