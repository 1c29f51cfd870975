// Package reports renders inventory data to CSV files served by the
// report download endpoint.
package reports

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/stockward/backend/internal/models"
)

// Table is a rendered report: a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

func Inventory(products []models.Product) Table {
	t := Table{Header: []string{"name", "quantity", "category", "supplier", "expires_at"}}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.Name,
			strconv.Itoa(p.Quantity),
			deref(p.Category),
			deref(p.Supplier),
			formatDate(p.ExpiresAt),
		})
	}
	return t
}

func Deliveries(deliveries []models.Delivery) Table {
	t := Table{Header: []string{"product", "quantity", "recipient", "delivered_at"}}
	for _, d := range deliveries {
		t.Rows = append(t.Rows, []string{
			d.ProductName,
			strconv.Itoa(d.Quantity),
			d.Recipient,
			d.CreatedAt.Format(time.RFC3339),
		})
	}
	return t
}

func Expiry(products []models.Product) Table {
	t := Table{Header: []string{"name", "quantity", "expires_at"}}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.Name,
			strconv.Itoa(p.Quantity),
			formatDate(p.ExpiresAt),
		})
	}
	return t
}

// WriteCSV writes the table to path, creating or truncating the file.
func WriteCSV(path string, t Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func formatDate(p *time.Time) string {
	if p == nil {
		return ""
	}
	return p.Format("2006-01-02")
}
