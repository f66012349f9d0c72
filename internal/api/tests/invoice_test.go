package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/marketpro/pos-server/internal/api/testutils"
	"github.com/marketpro/pos-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createInvoice(t *testing.T, testCtx *testutils.TestContext, req models.CreateInvoiceRequest) *models.Invoice {
	t.Helper()
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/invoices",
		req,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var response models.InvoiceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Invoice)
	return response.Invoice
}

func TestCreateInvoice(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	company := testutils.SeedCompany(t, testCtx, "شركة النور",
		models.ProductRowInput{Code: "A1", Name: "شاي", PriceBeforeTax: 12.5, Stock: 3},
	)

	invoice := createInvoice(t, testCtx, models.CreateInvoiceRequest{
		CompanyID: company.ID,
		Items:     []models.InvoiceItemInput{{Code: "A1", Name: "شاي", Price: 12.5, Quantity: 4}},
	})

	assert.Equal(t, 1000, invoice.ID, "invoice ids start at 1000")
	assert.Equal(t, models.StatusPending, invoice.Status)
	assert.Equal(t, "شركة النور", invoice.CompanyName)
	assert.InDelta(t, 50.0, invoice.Total, 1e-9)
	assert.False(t, invoice.IsPaid)

	// Consecutive ids within a session
	second := createInvoice(t, testCtx, models.CreateInvoiceRequest{CompanyID: company.ID})
	assert.Equal(t, 1001, second.ID)
	assert.Zero(t, second.Total, "empty item list produces a zero-total invoice")

	// No company selected aborts the operation
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/invoices",
		models.CreateInvoiceRequest{CompanyID: 999},
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestToggleDelivery(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	company := testutils.SeedCompany(t, testCtx, "مورد",
		models.ProductRowInput{Code: "A1", Name: "شاي", PriceBeforeTax: 10, Stock: 0},
	)
	invoice := createInvoice(t, testCtx, models.CreateInvoiceRequest{
		CompanyID: company.ID,
		Items:     []models.InvoiceItemInput{{Code: "A1", Name: "شاي", Price: 10, Quantity: 5}},
	})

	toggle := func() *models.Invoice {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPost,
			fmt.Sprintf("/api/invoices/%d/toggle-delivery", invoice.ID),
			nil,
			testutils.AuthHeaders(testCtx.EmployeeJWT),
		)
		require.Equal(t, http.StatusOK, w.Code)
		var response models.InvoiceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response.Invoice
	}
	stock := func() int {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodGet,
			fmt.Sprintf("/api/companies/%d", company.ID),
			nil,
			testutils.AuthHeaders(testCtx.EmployeeJWT),
		)
		require.Equal(t, http.StatusOK, w.Code)
		var response models.CompanyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response.Company.Products[0].Stock
	}

	assert.Equal(t, models.StatusDelivered, toggle().Status)
	assert.Equal(t, 5, stock())

	assert.Equal(t, models.StatusPending, toggle().Status)
	assert.Equal(t, 5, stock(), "stock is not rolled back")

	assert.Equal(t, models.StatusDelivered, toggle().Status)
	assert.Equal(t, 10, stock())

	// Unknown invoice
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/invoices/9999/toggle-delivery",
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddPayments(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	company := testutils.SeedCompany(t, testCtx, "مورد")
	invoice := createInvoice(t, testCtx, models.CreateInvoiceRequest{
		CompanyID: company.ID,
		Items:     []models.InvoiceItemInput{{Code: "A1", Name: "شاي", Price: 100, Quantity: 1}},
	})

	var last models.InvoiceResponse
	for _, amount := range []float64{10, 20, 30, 40} {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPost,
			fmt.Sprintf("/api/invoices/%d/payments", invoice.ID),
			models.AddPaymentRequest{Amount: amount},
			testutils.AuthHeaders(testCtx.EmployeeJWT),
		)
		require.Equal(t, http.StatusOK, w.Code)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &last))
	}

	require.Len(t, last.Invoice.Payments, 3, "fourth payment attempt is discarded")
	assert.Equal(t, 10.0, last.Invoice.Payments[0].Amount)
	assert.Equal(t, 20.0, last.Invoice.Payments[1].Amount)
	assert.Equal(t, 30.0, last.Invoice.Payments[2].Amount)
	assert.False(t, last.Invoice.IsPaid)
}

func TestInvoiceSearch(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	nour := testutils.SeedCompany(t, testCtx, "شركة النور")
	fajr := testutils.SeedCompany(t, testCtx, "شركة الفجر")
	createInvoice(t, testCtx, models.CreateInvoiceRequest{CompanyID: nour.ID})
	createInvoice(t, testCtx, models.CreateInvoiceRequest{CompanyID: fajr.ID})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/invoices?search=النور",
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	var list models.InvoiceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Invoices, 1)
	assert.Equal(t, "شركة النور", list.Invoices[0].CompanyName)

	// Substring match on the invoice id
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/invoices?search=1001",
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Invoices, 1)
	assert.Equal(t, 1001, list.Invoices[0].ID)
}

func TestExportInvoice(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)
	company := testutils.SeedCompany(t, testCtx, "شركة النور")
	invoice := createInvoice(t, testCtx, models.CreateInvoiceRequest{
		CompanyID: company.ID,
		Items:     []models.InvoiceItemInput{{Code: "A1", Name: "شاي", Price: 12.5, Quantity: 4}},
	})

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		fmt.Sprintf("/api/invoices/%d/export", invoice.ID),
		nil,
		testutils.AuthHeaders(testCtx.EmployeeJWT),
	)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"),
		fmt.Sprintf("Invoice_%d.csv", invoice.ID))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "اسم الماركت: Market Pro"))
	assert.Contains(t, body, fmt.Sprintf("رقم الفاتورة: %d", invoice.ID))
	assert.Contains(t, body, "الكود,الصنف,الكمية,السعر,الإجمالي")
	assert.Contains(t, body, "A1,شاي,4,12.5,50")
	assert.Contains(t, body, "الإجمالي النهائي: 50")
	assert.Contains(t, body, "المتبقي: 50")
}
