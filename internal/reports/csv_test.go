package reports

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/stockward/backend/internal/models"
)

func TestWriteCSVInventory(t *testing.T) {
	category := "safety"
	expires := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	products := []models.Product{
		{Name: "Helmet", Quantity: 12, Category: &category, ExpiresAt: &expires},
		{Name: "Gloves", Quantity: 3},
	}

	path := filepath.Join(t.TempDir(), "inventory.csv")
	if err := WriteCSV(path, Inventory(products)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	want := [][]string{
		{"name", "quantity", "category", "supplier", "expires_at"},
		{"Helmet", "12", "safety", "", "2026-10-01"},
		{"Gloves", "3", "", "", ""},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv content = %v, want %v", records, want)
	}
}

func TestWriteCSVDeliveries(t *testing.T) {
	at := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)
	deliveries := []models.Delivery{
		{ProductName: "Helmet", Quantity: 2, Recipient: "North Site", CreatedAt: at},
	}

	path := filepath.Join(t.TempDir(), "deliveries.csv")
	if err := WriteCSV(path, Deliveries(deliveries)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	want := [][]string{
		{"product", "quantity", "recipient", "delivered_at"},
		{"Helmet", "2", "North Site", "2026-09-01T10:30:00Z"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("csv content = %v, want %v", records, want)
	}
}

func TestWriteCSVEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := WriteCSV(path, Expiry(nil)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected header row only, got %d rows", len(records))
	}
}
