package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zahidx/cashbook/internal/core/domain"
)

func TestTransactionTypeIsValid(t *testing.T) {
	assert.True(t, domain.CashIn.IsValid())
	assert.True(t, domain.CashOut.IsValid())
	assert.False(t, domain.TransactionType("transfer").IsValid())
	assert.False(t, domain.TransactionType("").IsValid())
}

func TestSignedAmount(t *testing.T) {
	testCases := []struct {
		name     string
		txnType  domain.TransactionType
		amount   string
		expected string
	}{
		{name: "cash-in is positive", txnType: domain.CashIn, amount: "50", expected: "50"},
		{name: "cash-out is negative", txnType: domain.CashOut, amount: "20", expected: "-20"},
		{name: "fractional cash-out", txnType: domain.CashOut, amount: "0.75", expected: "-0.75"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			txn := domain.Transaction{
				Type:   tc.txnType,
				Amount: decimal.RequireFromString(tc.amount),
			}
			assert.True(t, txn.SignedAmount().Equal(decimal.RequireFromString(tc.expected)),
				"got %s", txn.SignedAmount())
		})
	}
}
