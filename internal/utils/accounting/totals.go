// Package accounting derives the aggregate figures of a cash flow statement
// from its line items. Totals are never stored; every consumer recomputes
// them from the authoritative rows.
package accounting

import (
	"strings"

	"github.com/darwincarillo2003/liquidation-backend/internal/core/domain"
	"github.com/darwincarillo2003/liquidation-backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// Totals are the derived figures of one statement. All values are plain
// decimals; display formatting is a presentation concern.
type Totals struct {
	TotalCashInflows             decimal.Decimal `json:"totalCashInflows"`
	ActivitiesTotal              decimal.Decimal `json:"activitiesTotal"`
	OrganizationAllocationsTotal decimal.Decimal `json:"organizationAllocationsTotal"`
	OtherDisbursementsTotal      decimal.Decimal `json:"otherDisbursementsTotal"`
	ContingencyFundTotal         decimal.Decimal `json:"contingencyFundTotal"`
	TotalCashOutflows            decimal.Decimal `json:"totalCashOutflows"`
	TotalEndingCashBalance       decimal.Decimal `json:"totalEndingCashBalance"`
}

// Note names recognized by the fallback reconciliation, matched
// case-insensitively as substrings.
const (
	noteOrganizationAllocations = "organization allocations"
	noteOtherDisbursements      = "other disbursements"
	noteContingencyFund         = "contingency fund"
)

// CalculateTotals derives all aggregate figures from the form state.
//
// The outflow side depends on which schema generation is populated: the
// activity-based shape sums activity items plus the single contingency
// amount; the legacy shape sums the three ledger lists. When a primary
// figure is zero but the form carries a matching named note, the note total
// stands in for it — submissions exist that only ever populated notes.
func CalculateTotals(form domain.CashFlowForm) Totals {
	var t Totals

	inflows := form.CashInflows.BeginningCashInBank.Amount.Decimal.
		Add(form.CashInflows.BeginningCashOnHand.Amount.Decimal).
		Add(sumLineItems(form.CashInflows.CashReceiptSources))
	t.TotalCashInflows = money.Round2(inflows)

	out := form.CashOutflows
	if len(out.Activities) > 0 {
		activities := decimal.Zero
		for _, a := range out.Activities {
			activities = activities.Add(sumLineItems(a.Items))
		}
		t.ActivitiesTotal = money.Round2(activities)

		contingency := out.ContingencyFund.Amount.Decimal
		if contingency.IsZero() {
			contingency = noteTotal(form.Notes, noteContingencyFund)
		}
		t.ContingencyFundTotal = money.Round2(contingency)

		t.TotalCashOutflows = money.Round2(t.ActivitiesTotal.Add(t.ContingencyFundTotal))
	} else {
		orgAlloc := sumLedgerEntries(out.OrganizationAllocations)
		if orgAlloc.IsZero() {
			orgAlloc = noteTotal(form.Notes, noteOrganizationAllocations)
		}
		t.OrganizationAllocationsTotal = money.Round2(orgAlloc)

		otherDisb := sumLedgerEntries(out.OtherDisbursements)
		if otherDisb.IsZero() {
			otherDisb = noteTotal(form.Notes, noteOtherDisbursements)
		}
		t.OtherDisbursementsTotal = money.Round2(otherDisb)

		contingency := sumLedgerEntries(out.ContingencyEntries)
		if contingency.IsZero() {
			contingency = out.ContingencyFund.Amount.Decimal
		}
		if contingency.IsZero() {
			contingency = noteTotal(form.Notes, noteContingencyFund)
		}
		t.ContingencyFundTotal = money.Round2(contingency)

		t.TotalCashOutflows = money.Round2(
			t.OrganizationAllocationsTotal.Add(t.OtherDisbursementsTotal).Add(t.ContingencyFundTotal))
	}

	t.TotalEndingCashBalance = money.Round2(
		form.EndingCashBalance.CashInBank.Decimal.Add(form.EndingCashBalance.CashOnHand.Decimal))

	return t
}

func sumLineItems(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount.Decimal)
	}
	return sum
}

func sumLedgerEntries(entries []domain.LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount.Decimal)
	}
	return sum
}

// noteTotal sums every note whose name contains the given label,
// case-insensitively.
func noteTotal(notes []domain.Note, label string) decimal.Decimal {
	sum := decimal.Zero
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Name), label) {
			sum = sum.Add(sumLedgerEntries(n.Items))
		}
	}
	return sum
}
