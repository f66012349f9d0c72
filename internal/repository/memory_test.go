package repository

import (
	"context"
	"testing"

	"github.com/marketpro/pos-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceCounterSeeding(t *testing.T) {
	ctx := context.Background()

	// Fresh store: invoice ids start at 1000.
	r := NewMemoryRepository()
	inv := &models.Invoice{Status: models.StatusPending}
	require.NoError(t, r.CreateInvoice(ctx, inv))
	assert.Equal(t, 1000, inv.ID)

	// Pre-loaded store: counter is max(existing)+1, with gaps ignored.
	r = NewMemoryRepositoryFromState(State{
		Invoices: []models.Invoice{{ID: 1000}, {ID: 1003}, {ID: 1007}},
	})
	inv = &models.Invoice{Status: models.StatusPending}
	require.NoError(t, r.CreateInvoice(ctx, inv))
	assert.Equal(t, 1008, inv.ID)
}

func TestCompanyIDAssignment(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	first := &models.Company{Name: "الأولى"}
	require.NoError(t, r.CreateCompany(ctx, first))
	assert.Equal(t, 10, first.ID, "first company id defaults to 10")

	second := &models.Company{Name: "الثانية"}
	require.NoError(t, r.CreateCompany(ctx, second))
	assert.Equal(t, 11, second.ID)
}

func TestSaleIDsMonotonic(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	a := &models.Sale{}
	b := &models.Sale{}
	require.NoError(t, r.CreateSale(ctx, a))
	require.NoError(t, r.CreateSale(ctx, b))
	assert.Equal(t, a.ID+1, b.ID, "back-to-back sales never share an id")
}

func TestCollectionsCrossBoundaryByValue(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	company := &models.Company{
		Name:     "مورد",
		Products: []models.Product{{Code: "X", Name: "صنف", Stock: 5}},
	}
	require.NoError(t, r.CreateCompany(ctx, company))

	// Mutating a returned copy must not leak into the store.
	got, err := r.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	got.Products[0].Stock = 999

	again, err := r.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, again.Products[0].Stock)

	// Updates land wholesale through ReplaceCompanies.
	companies, err := r.ListCompanies(ctx)
	require.NoError(t, err)
	companies[0].Products[0].Stock = 7
	require.NoError(t, r.ReplaceCompanies(ctx, companies))

	final, err := r.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, final.Products[0].Stock)
}

func TestGetMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	company, err := r.GetCompany(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, company)

	invoice, err := r.GetInvoice(ctx, 42)
	assert.NoError(t, err)
	assert.Nil(t, invoice)

	user, err := r.GetUserByUsername(ctx, "ghost")
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.ErrorIs(t, r.DeleteUser(ctx, "ghost"), ErrNotFound)
	assert.ErrorIs(t, r.UpdateInvoice(ctx, &models.Invoice{ID: 42}), ErrNotFound)
}

func TestDefaultStateSeeded(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	admin, err := r.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	settings, err := r.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Market Pro", settings.AppName)
	assert.NotEmpty(t, settings.SidebarNames)
}
