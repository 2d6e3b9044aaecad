package domain

import (
	"encoding/json"
	"regexp"

	"github.com/darwincarillo2003/liquidation-backend/internal/utils/money"
	"github.com/shopspring/decimal"
)

// Amount is a monetary value as it appears on the cash flow statement.
// On the wire it is either the empty string or a "₱"-prefixed, comma-grouped
// string with two decimals; internally it is an exact decimal. Unmarshalling
// never fails: malformed input degrades to zero so one corrupt field cannot
// take down a whole form.
type Amount struct {
	decimal.Decimal
}

// AmountFrom wraps a decimal as a form Amount.
func AmountFrom(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a display string into an Amount.
func AmountFromString(s string) Amount {
	return Amount{Decimal: money.Parse(s)}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(money.Format(a.Decimal))
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		a.Decimal = money.Parse(s)
		return nil
	}
	// Older drafts occasionally carry bare numbers instead of display strings.
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err == nil {
		a.Decimal = d
		return nil
	}
	a.Decimal = decimal.Zero
	return nil
}

// LineItem is a description/amount row used by receipt sources and activity
// expense items.
type LineItem struct {
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
}

// LedgerEntry is the four-field row shape used by notes and by the legacy
// disbursement lists: an ISO date, free-text details, an invoice reference
// and an amount.
type LedgerEntry struct {
	Date          string `json:"date"`
	Details       string `json:"details"`
	InvoiceNumber string `json:"invoiceNumber"`
	Amount        Amount `json:"amount"`
}

// Activity groups the expense items of one organizational activity.
type Activity struct {
	Name  string     `json:"name"`
	Items []LineItem `json:"items"`
}

// Note is a named supporting schedule of ledger entries attached to the form.
type Note struct {
	Name  string        `json:"name"`
	Items []LedgerEntry `json:"items"`
}

// BeginningBalance carries one of the two opening balances together with the
// month it was carried over from.
type BeginningBalance struct {
	Month  string `json:"month"`
	Amount Amount `json:"amount"`
}

// CashInflows is the receipts side of the statement.
type CashInflows struct {
	BeginningCashInBank BeginningBalance `json:"beginningCashInBank"`
	BeginningCashOnHand BeginningBalance `json:"beginningCashOnHand"`
	CashReceiptSources  []LineItem       `json:"cashReceiptSources"`
}

// ContingencyFund is the mandatory 1% set-aside, a single amount in the
// current schema.
type ContingencyFund struct {
	Amount Amount `json:"amount"`
}

// CashOutflows is the disbursements side of the statement. Two schema
// generations are in circulation: the current activity-based shape
// (Activities plus a single ContingencyFund amount) and a legacy ledger
// shape (OrganizationAllocations / OtherDisbursements lists, with the
// contingency fund itself a list of ledger rows). Both are accepted on
// input; Normalize migrates legacy drafts forward.
type CashOutflows struct {
	Activities      []Activity      `json:"activities"`
	ContingencyFund ContingencyFund `json:"contingencyFund"`

	OrganizationAllocations []LedgerEntry `json:"organizationAllocations,omitempty"`
	OtherDisbursements      []LedgerEntry `json:"otherDisbursements,omitempty"`
	// ContingencyEntries holds the legacy list form of contingencyFund. It is
	// populated only when the wire value was an array; MarshalJSON writes it
	// back as an array so unmigrated drafts round-trip unchanged.
	ContingencyEntries []LedgerEntry `json:"-"`
}

func (o *CashOutflows) UnmarshalJSON(b []byte) error {
	var aux struct {
		Activities              []Activity      `json:"activities"`
		ContingencyFund         json.RawMessage `json:"contingencyFund"`
		OrganizationAllocations []LedgerEntry   `json:"organizationAllocations"`
		OtherDisbursements      []LedgerEntry   `json:"otherDisbursements"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	o.Activities = aux.Activities
	o.OrganizationAllocations = aux.OrganizationAllocations
	o.OtherDisbursements = aux.OtherDisbursements
	o.ContingencyFund = ContingencyFund{}
	o.ContingencyEntries = nil

	raw := aux.ContingencyFund
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == '[' {
		return json.Unmarshal(raw, &o.ContingencyEntries)
	}
	return json.Unmarshal(raw, &o.ContingencyFund)
}

func (o CashOutflows) MarshalJSON() ([]byte, error) {
	aux := struct {
		Activities              []Activity    `json:"activities"`
		ContingencyFund         any           `json:"contingencyFund"`
		OrganizationAllocations []LedgerEntry `json:"organizationAllocations,omitempty"`
		OtherDisbursements      []LedgerEntry `json:"otherDisbursements,omitempty"`
	}{
		Activities:              o.Activities,
		ContingencyFund:         any(o.ContingencyFund),
		OrganizationAllocations: o.OrganizationAllocations,
		OtherDisbursements:      o.OtherDisbursements,
	}
	if o.ContingencyEntries != nil {
		aux.ContingencyFund = o.ContingencyEntries
	}
	return json.Marshal(aux)
}

// IsLegacy reports whether only the old ledger shape is populated.
func (o *CashOutflows) IsLegacy() bool {
	return len(o.Activities) == 0 &&
		(len(o.OrganizationAllocations) > 0 || len(o.OtherDisbursements) > 0 || len(o.ContingencyEntries) > 0)
}

// HasConflictingShapes reports whether both schema generations carry data at
// once. No migration step in the original system resolves this case, so it
// is surfaced to callers for logging rather than silently merged.
func (o *CashOutflows) HasConflictingShapes() bool {
	return len(o.Activities) > 0 &&
		(len(o.OrganizationAllocations) > 0 || len(o.OtherDisbursements) > 0 || len(o.ContingencyEntries) > 0)
}

// Normalize migrates a legacy-shape draft into the activity-based schema:
// each legacy list becomes a named activity and the contingency row list
// collapses into the single amount field. A draft that already has
// activities is left untouched, including any stray legacy lists, since
// merging the two generations could double-count.
func (o *CashOutflows) Normalize() {
	if len(o.ContingencyEntries) > 0 && o.ContingencyFund.Amount.IsZero() {
		sum := decimal.Zero
		for _, e := range o.ContingencyEntries {
			sum = sum.Add(e.Amount.Decimal)
		}
		o.ContingencyFund.Amount = AmountFrom(money.Round2(sum))
		o.ContingencyEntries = nil
	}

	if len(o.Activities) > 0 {
		return
	}

	if len(o.OrganizationAllocations) > 0 {
		o.Activities = append(o.Activities, ledgerToActivity("Organization Allocations", o.OrganizationAllocations))
		o.OrganizationAllocations = nil
	}
	if len(o.OtherDisbursements) > 0 {
		o.Activities = append(o.Activities, ledgerToActivity("Other Disbursements", o.OtherDisbursements))
		o.OtherDisbursements = nil
	}
}

func ledgerToActivity(name string, entries []LedgerEntry) Activity {
	items := make([]LineItem, len(entries))
	for i, e := range entries {
		items[i] = LineItem{Description: e.Details, Amount: e.Amount}
	}
	return Activity{Name: name, Items: items}
}

// EndingCashBalance closes the statement for the month.
type EndingCashBalance struct {
	CashInBank Amount `json:"cashInBank"`
	CashOnHand Amount `json:"cashOnHand"`
}

// CashFlowForm is the complete statement of cash flows for one organization
// and one reporting month. Totals are never stored on the form; they are
// derived from the line items on every read.
type CashFlowForm struct {
	OrganizationName  string            `json:"organizationName"`
	AcademicYear      string            `json:"academicYear"`
	Month             string            `json:"month"`
	CashInflows       CashInflows       `json:"cashInflows"`
	CashOutflows      CashOutflows      `json:"cashOutflows"`
	EndingCashBalance EndingCashBalance `json:"endingCashBalance"`
	Notes             []Note            `json:"notes"`
}

// Months lists the valid reporting month names in calendar order.
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var academicYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// IsValidAcademicYear reports whether y is in YYYY-YYYY form.
func IsValidAcademicYear(y string) bool {
	return academicYearPattern.MatchString(y)
}

// IsValidMonth reports whether m is one of the twelve calendar month names.
func IsValidMonth(m string) bool {
	for _, month := range Months {
		if m == month {
			return true
		}
	}
	return false
}

// Validate checks the header fields of the form and returns per-field
// messages keyed by wire field name. An empty map means the form is valid.
func (f *CashFlowForm) Validate() map[string][]string {
	errs := make(map[string][]string)
	if f.OrganizationName == "" {
		errs["organization_name"] = append(errs["organization_name"], "organization name is required")
	}
	if f.Month == "" {
		errs["month"] = append(errs["month"], "month is required")
	} else if !IsValidMonth(f.Month) {
		errs["month"] = append(errs["month"], "month must be a calendar month name")
	}
	if f.AcademicYear != "" && !academicYearPattern.MatchString(f.AcademicYear) {
		errs["academic_year"] = append(errs["academic_year"], "academic year must be in YYYY-YYYY format")
	}
	return errs
}
