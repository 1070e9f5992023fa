package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sergiodev3/control-gastos-app/internal/domain"
)

func TestParsedTransaction_ToExpenseCreate(t *testing.T) {
	cat := "Transporte"
	parsed := &domain.ParsedTransaction{
		Kind:          domain.KindExpense,
		Amount:        decimal.NewFromInt(200),
		Description:   "en gasolina",
		PaymentMethod: domain.PaymentCash,
		Category:      &cat,
	}

	req := parsed.ToExpenseCreate()

	if !req.Amount.Equal(parsed.Amount) {
		t.Errorf("expected amount %s, got %s", parsed.Amount, req.Amount)
	}
	if req.Description != "en gasolina" {
		t.Errorf("expected description, got %q", req.Description)
	}
	if req.PaymentType != domain.PaymentCash {
		t.Errorf("expected efectivo, got %s", req.PaymentType)
	}
	if req.Category == nil || *req.Category != "Transporte" {
		t.Errorf("expected category Transporte, got %v", req.Category)
	}
}

func TestParsedTransaction_ToIncomeCreate(t *testing.T) {
	parsed := &domain.ParsedTransaction{
		Kind:        domain.KindIncome,
		Amount:      decimal.NewFromInt(15000),
		Description: "mi salario",
		IsRecurring: true,
	}

	req := parsed.ToIncomeCreate()

	if !req.Amount.Equal(parsed.Amount) {
		t.Errorf("expected amount %s, got %s", parsed.Amount, req.Amount)
	}
	if !req.IsRecurring {
		t.Error("expected recurring income")
	}
}

func TestParsedTransaction_ToSavingCreate(t *testing.T) {
	cases := []struct {
		name string
		kind domain.TransactionKind
		want domain.SavingType
	}{
		{"depósito", domain.KindSavingDeposit, domain.SavingDeposit},
		{"retiro", domain.KindSavingWithdrawal, domain.SavingWithdrawal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := &domain.ParsedTransaction{
				Kind:    tc.kind,
				Amount:  decimal.NewFromInt(500),
				Purpose: "Vacaciones",
			}

			req := parsed.ToSavingCreate()

			if req.TransactionType != tc.want {
				t.Errorf("expected %s, got %s", tc.want, req.TransactionType)
			}
			if req.Purpose != "Vacaciones" {
				t.Errorf("expected purpose, got %q", req.Purpose)
			}
			if !req.Amount.IsPositive() {
				t.Errorf("amount must stay positive, got %s", req.Amount)
			}
		})
	}
}
