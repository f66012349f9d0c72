// Package export renders invoices in the tabular comma-separated
// format used for downloads, and parses that format back.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marketpro/pos-server/internal/models"
)

const (
	labelMarket    = "اسم الماركت: "
	labelInvoiceID = "رقم الفاتورة: "
	labelCompany   = "الشركة: "
	labelDate      = "التاريخ: "
	labelTotal     = "الإجمالي النهائي: "
	labelPaid      = "المدفوع: "
	labelRemaining = "المتبقي: "

	columnHeader = "الكود,الصنف,الكمية,السعر,الإجمالي"
)

// Filename returns the download name for an invoice export.
func Filename(inv *models.Invoice) string {
	return fmt.Sprintf("Invoice_%d.csv", inv.ID)
}

// Build renders the invoice document. Numbers print the way they were
// stored, without forced decimal places.
func Build(inv *models.Invoice, marketName string) []byte {
	var b strings.Builder

	b.WriteString(labelMarket + marketName + "\n")
	b.WriteString(labelInvoiceID + strconv.Itoa(inv.ID) + "\n")
	b.WriteString(labelCompany + inv.CompanyName + "\n")
	b.WriteString(labelDate + inv.Date.Format("1/2/2006") + "\n\n")

	b.WriteString(columnHeader + "\n")
	for i, item := range inv.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.Join([]string{
			item.Code,
			item.Name,
			strconv.Itoa(item.Quantity),
			formatNumber(item.Price),
			formatNumber(item.Subtotal),
		}, ","))
	}

	paid := inv.PaidTotal()
	b.WriteString("\n\n")
	b.WriteString(labelTotal + formatNumber(inv.Total) + "\n")
	b.WriteString(labelPaid + formatNumber(paid) + "\n")
	b.WriteString(labelRemaining + formatNumber(inv.Total-paid))

	return []byte(b.String())
}

// Document is the parsed form of an exported invoice.
type Document struct {
	MarketName  string
	InvoiceID   int
	CompanyName string
	Date        string
	Items       []models.InvoiceItem
	Total       float64
	Paid        float64
	Remaining   float64
}

// Parse reads a document produced by Build. Item names containing
// commas are not recoverable, matching the writer.
func Parse(data []byte) (*Document, error) {
	lines := strings.Split(string(data), "\n")
	doc := &Document{}

	var err error
	inItems := false
	for _, line := range lines {
		switch {
		case line == "":
			inItems = false
		case strings.HasPrefix(line, labelMarket):
			doc.MarketName = strings.TrimPrefix(line, labelMarket)
		case strings.HasPrefix(line, labelInvoiceID):
			doc.InvoiceID, err = strconv.Atoi(strings.TrimPrefix(line, labelInvoiceID))
			if err != nil {
				return nil, fmt.Errorf("invalid invoice id: %w", err)
			}
		case strings.HasPrefix(line, labelCompany):
			doc.CompanyName = strings.TrimPrefix(line, labelCompany)
		case strings.HasPrefix(line, labelDate):
			doc.Date = strings.TrimPrefix(line, labelDate)
		case strings.HasPrefix(line, labelTotal):
			doc.Total, err = parseNumber(strings.TrimPrefix(line, labelTotal))
			if err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, labelPaid):
			doc.Paid, err = parseNumber(strings.TrimPrefix(line, labelPaid))
			if err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, labelRemaining):
			doc.Remaining, err = parseNumber(strings.TrimPrefix(line, labelRemaining))
			if err != nil {
				return nil, err
			}
		case line == columnHeader:
			inItems = true
		case inItems:
			item, err := parseItem(line)
			if err != nil {
				return nil, err
			}
			doc.Items = append(doc.Items, item)
		}
	}
	return doc, nil
}

func parseItem(line string) (models.InvoiceItem, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 5 {
		return models.InvoiceItem{}, errors.New("malformed item line: " + line)
	}
	quantity, err := strconv.Atoi(fields[2])
	if err != nil {
		return models.InvoiceItem{}, fmt.Errorf("invalid quantity: %w", err)
	}
	price, err := parseNumber(fields[3])
	if err != nil {
		return models.InvoiceItem{}, err
	}
	subtotal, err := parseNumber(fields[4])
	if err != nil {
		return models.InvoiceItem{}, err
	}
	return models.InvoiceItem{
		Code:     fields[0],
		Name:     fields[1],
		Quantity: quantity,
		Price:    price,
		Subtotal: subtotal,
	}, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return v, nil
}
