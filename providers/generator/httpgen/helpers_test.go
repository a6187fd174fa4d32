package httpgen

import (
	"testing"

	"github.com/leofalp/fieldex/core/schema"
)

func invoiceEntry(t *testing.T) *schema.Entry {
	t.Helper()
	sc, err := schema.New("invoice",
		schema.Field{Name: "vendor", Type: schema.TypeString},
		schema.Field{Name: "total", Type: schema.TypeFloat},
		schema.Field{Name: "items", Type: schema.TypeStringList},
	)
	if err != nil {
		t.Fatalf("schema.New() error = %v", err)
	}
	return &schema.Entry{
		Schema:   sc,
		Examples: []string{"ACME Corp", "1250.50", `["Widgets", "Shipping"]`},
	}
}
