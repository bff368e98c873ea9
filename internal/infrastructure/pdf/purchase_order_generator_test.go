package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/supply-tracker/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"250":        "250,00",
		"1234.5":     "1.234,50",
		"1234567.89": "1.234.567,89",
		"-1000":      "-1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormsLabel(t *testing.T) {
	assert.Equal(t, "IAR,PAR", formsLabel(entity.NewFormSet(entity.FormPAR, entity.FormIAR)))
	assert.Empty(t, formsLabel(entity.NewFormSet()))
}

func TestGeneratePurchaseOrder(t *testing.T) {
	approved := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	req := &entity.Request{
		ID:            "REQ-001",
		PONumber:      "2025-03-001",
		Status:        entity.StatusApproved,
		Department:    "Finanzas",
		Supplier:      entity.Supplier{Name: "Papelera Sur", TIN: "123-456"},
		RequestedBy:   "ana",
		RequestedDate: approved,
		ApprovedBy:    "jefe",
		ApprovedDate:  &approved,
		Items: []entity.LineItem{{
			ID: "1", Description: "Resma carta", Unit: "caja",
			Quantity: decimal.NewFromInt(2), UnitCost: decimal.NewFromInt(125), Amount: decimal.NewFromInt(250),
			Forms: entity.NewFormSet(entity.FormRIS),
		}},
		TotalAmount: decimal.NewFromInt(250),
	}

	data, err := NewPurchaseOrderGenerator("Oficina de Suministros").GeneratePurchaseOrder(req)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
