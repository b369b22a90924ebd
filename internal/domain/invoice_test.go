package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRemainingBalance(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		payments []int64
		want     string
	}{
		{"no payments", 1000, nil, "1000"},
		{"partial payment", 1000, []int64{400}, "600"},
		{"multiple payments", 1000, []int64{400, 350}, "250"},
		{"fully paid", 1000, []int64{1000}, "0"},
		{"overpaid goes negative", 1000, []int64{1200}, "-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{TotalAmount: decimal.NewFromInt(tt.total)}
			for _, p := range tt.payments {
				inv.Payments = append(inv.Payments, Payment{Amount: decimal.NewFromInt(p)})
			}
			got := inv.RemainingBalance()
			if got.String() != tt.want {
				t.Errorf("RemainingBalance() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLineItemSubtotal(t *testing.T) {
	inv := &Invoice{
		TotalAmount: decimal.NewFromInt(900),
		LineItems: []LineItem{
			{Amount: decimal.NewFromInt(300)},
			{Amount: decimal.NewFromInt(600)},
		},
	}
	if got := inv.LineItemSubtotal(); got.String() != "900" {
		t.Errorf("LineItemSubtotal() = %s, want 900", got)
	}

	// Line items are allowed to disagree with the invoice total
	inv.LineItems = inv.LineItems[:1]
	if got := inv.LineItemSubtotal(); got.String() != "300" {
		t.Errorf("LineItemSubtotal() = %s, want 300", got)
	}

	empty := &Invoice{TotalAmount: decimal.NewFromInt(100)}
	if !empty.LineItemSubtotal().IsZero() {
		t.Errorf("LineItemSubtotal() on empty invoice = %s, want 0", empty.LineItemSubtotal())
	}
}

func TestUnpaidStatuses(t *testing.T) {
	unpaid := map[InvoiceStatus]bool{}
	for _, s := range UnpaidStatuses() {
		unpaid[s] = true
	}

	for _, s := range []InvoiceStatus{InvoiceStatusPending, InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue} {
		if !unpaid[s] {
			t.Errorf("expected %s to be an unpaid status", s)
		}
	}
	for _, s := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusPaid, InvoiceStatusCancelled} {
		if unpaid[s] {
			t.Errorf("did not expect %s to be an unpaid status", s)
		}
	}
}

func TestIsValidInvoiceStatus(t *testing.T) {
	if !IsValidInvoiceStatus(InvoiceStatusOverdue) {
		t.Error("OVERDUE should be valid")
	}
	if IsValidInvoiceStatus(InvoiceStatus("SHIPPED")) {
		t.Error("SHIPPED should not be valid")
	}
}
