package dto

import (
	"github.com/shopspring/decimal"
	"github.com/zahidx/cashbook/internal/utils/accounting"
)

// DayGroupResponse is one calendar day of transactions, newest first.
type DayGroupResponse struct {
	Date         string                `json:"date"`
	Transactions []TransactionResponse `json:"transactions"`
}

// SummaryResponse carries the derived totals for a book plus the
// day-grouped transaction list.
type SummaryResponse struct {
	TotalCashIn  decimal.Decimal    `json:"totalCashIn"`
	TotalCashOut decimal.Decimal    `json:"totalCashOut"`
	Net          decimal.Decimal    `json:"net"`
	Groups       []DayGroupResponse `json:"groups"`
}

// ToSummaryResponse converts an accounting summary and its day groups to the DTO.
func ToSummaryResponse(s accounting.Summary, groups []accounting.DayGroup) SummaryResponse {
	resp := SummaryResponse{
		TotalCashIn:  s.TotalCashIn,
		TotalCashOut: s.TotalCashOut,
		Net:          s.Net,
		Groups:       make([]DayGroupResponse, len(groups)),
	}
	for i, g := range groups {
		resp.Groups[i] = DayGroupResponse{
			Date:         g.Date,
			Transactions: ToTransactionResponses(g.Transactions),
		}
	}
	return resp
}
