package models

import "time"

// Sidebar section keys. New users are granted all of them.
const (
	SectionDailySales        = "dailySales"
	SectionCreateInvoice     = "createInvoice"
	SectionTransferredOrders = "transferredOrders"
	SectionPriceLists        = "priceLists"
	SectionInventory         = "inventory"
	SectionSalesReports      = "salesReports"
)

// AllSections is the fixed permission set assigned at account creation.
func AllSections() []string {
	return []string{
		SectionDailySales,
		SectionCreateInvoice,
		SectionTransferredOrders,
		SectionPriceLists,
		SectionInventory,
		SectionSalesReports,
	}
}

// DefaultSettings returns the initial application settings, including
// the default Arabic sidebar labels.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		AppName:           "Market Pro",
		ProfitMargin:      14,
		LowStockThreshold: 5,
		IsGlassMode:       false,
		SidebarNames: map[string]string{
			SectionDailySales:        "المبيعات اليومية",
			SectionCreateInvoice:     "إنشاء فاتورة",
			SectionTransferredOrders: "الأوردرات المرحلة",
			SectionPriceLists:        "قوائم أسعار الشركات",
			SectionInventory:         "المخزون",
			SectionSalesReports:      "المبيعات",
			"settings":               "الاعدادات",
		},
	}
}

// InitialAdmin returns the built-in administrator account. Its username
// is protected from deletion.
func InitialAdmin() *User {
	return &User{
		ID:          "1",
		Username:    "admin",
		Password:    "admin",
		Role:        RoleAdmin,
		Phone:       "0123456789",
		Address:     "المكتب الرئيسي",
		StartDate:   time.Now().UTC(),
		Permissions: AllSections(),
	}
}
