package domain

import "errors"

var (
	// ErrRowFloor is returned when removal would drop a list below its
	// minimum size. Only cash receipt sources carry a floor of one row.
	ErrRowFloor = errors.New("list must keep at least one row")

	// ErrIndexOutOfRange is returned for row operations addressing an index
	// outside the target list.
	ErrIndexOutOfRange = errors.New("row index out of range")
)

// LineItemPatch carries field-level updates for a LineItem. Nil fields are
// left untouched. Amount arrives as the raw typed text and is parsed on
// apply, mirroring the type-then-reformat-on-blur behavior of the forms.
type LineItemPatch struct {
	Description *string
	Amount      *string
}

func (item *LineItem) apply(patch LineItemPatch) {
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Amount != nil {
		item.Amount = AmountFromString(*patch.Amount)
	}
}

// LedgerEntryPatch carries field-level updates for a LedgerEntry.
type LedgerEntryPatch struct {
	Date          *string
	Details       *string
	InvoiceNumber *string
	Amount        *string
}

func (e *LedgerEntry) apply(patch LedgerEntryPatch) {
	if patch.Date != nil {
		e.Date = *patch.Date
	}
	if patch.Details != nil {
		e.Details = *patch.Details
	}
	if patch.InvoiceNumber != nil {
		e.InvoiceNumber = *patch.InvoiceNumber
	}
	if patch.Amount != nil {
		e.Amount = AmountFromString(*patch.Amount)
	}
}

// AddReceiptSource appends an empty receipt source row.
func (c *CashInflows) AddReceiptSource() {
	c.CashReceiptSources = append(c.CashReceiptSources, LineItem{})
}

// RemoveReceiptSource removes the row at index. The list may never drop
// below one row; removing the sole remaining row is refused.
func (c *CashInflows) RemoveReceiptSource(index int) error {
	if index < 0 || index >= len(c.CashReceiptSources) {
		return ErrIndexOutOfRange
	}
	if len(c.CashReceiptSources) == 1 {
		return ErrRowFloor
	}
	c.CashReceiptSources = append(c.CashReceiptSources[:index], c.CashReceiptSources[index+1:]...)
	return nil
}

// UpdateReceiptSource merges the patch into the row at index.
func (c *CashInflows) UpdateReceiptSource(index int, patch LineItemPatch) error {
	if index < 0 || index >= len(c.CashReceiptSources) {
		return ErrIndexOutOfRange
	}
	c.CashReceiptSources[index].apply(patch)
	return nil
}

// AddActivity appends a new unnamed activity with one empty expense item.
func (o *CashOutflows) AddActivity() {
	o.Activities = append(o.Activities, Activity{Items: []LineItem{{}}})
}

// RemoveActivity removes the activity at index together with its items.
// Unlike receipt sources, the activity list may reach zero length.
func (o *CashOutflows) RemoveActivity(index int) error {
	if index < 0 || index >= len(o.Activities) {
		return ErrIndexOutOfRange
	}
	o.Activities = append(o.Activities[:index], o.Activities[index+1:]...)
	return nil
}

// UpdateActivityName renames the activity at index.
func (o *CashOutflows) UpdateActivityName(index int, name string) error {
	if index < 0 || index >= len(o.Activities) {
		return ErrIndexOutOfRange
	}
	o.Activities[index].Name = name
	return nil
}

// AddActivityItem appends an empty expense item to the addressed activity.
func (o *CashOutflows) AddActivityItem(activityIndex int) error {
	if activityIndex < 0 || activityIndex >= len(o.Activities) {
		return ErrIndexOutOfRange
	}
	o.Activities[activityIndex].Items = append(o.Activities[activityIndex].Items, LineItem{})
	return nil
}

// RemoveActivityItem removes one expense item from the addressed activity.
func (o *CashOutflows) RemoveActivityItem(activityIndex, itemIndex int) error {
	if activityIndex < 0 || activityIndex >= len(o.Activities) {
		return ErrIndexOutOfRange
	}
	items := o.Activities[activityIndex].Items
	if itemIndex < 0 || itemIndex >= len(items) {
		return ErrIndexOutOfRange
	}
	o.Activities[activityIndex].Items = append(items[:itemIndex], items[itemIndex+1:]...)
	return nil
}

// UpdateActivityItem merges the patch into one expense item of the addressed
// activity, leaving all other rows untouched.
func (o *CashOutflows) UpdateActivityItem(activityIndex, itemIndex int, patch LineItemPatch) error {
	if activityIndex < 0 || activityIndex >= len(o.Activities) {
		return ErrIndexOutOfRange
	}
	items := o.Activities[activityIndex].Items
	if itemIndex < 0 || itemIndex >= len(items) {
		return ErrIndexOutOfRange
	}
	items[itemIndex].apply(patch)
	return nil
}

// AddNote appends a new unnamed note with one empty ledger entry.
func (f *CashFlowForm) AddNote() {
	f.Notes = append(f.Notes, Note{Items: []LedgerEntry{{}}})
}

// RemoveNote removes the note at index together with its entries.
func (f *CashFlowForm) RemoveNote(index int) error {
	if index < 0 || index >= len(f.Notes) {
		return ErrIndexOutOfRange
	}
	f.Notes = append(f.Notes[:index], f.Notes[index+1:]...)
	return nil
}

// UpdateNoteName renames the note at index.
func (f *CashFlowForm) UpdateNoteName(index int, name string) error {
	if index < 0 || index >= len(f.Notes) {
		return ErrIndexOutOfRange
	}
	f.Notes[index].Name = name
	return nil
}

// AddNoteItem appends an empty ledger entry to the addressed note.
func (f *CashFlowForm) AddNoteItem(noteIndex int) error {
	if noteIndex < 0 || noteIndex >= len(f.Notes) {
		return ErrIndexOutOfRange
	}
	f.Notes[noteIndex].Items = append(f.Notes[noteIndex].Items, LedgerEntry{})
	return nil
}

// RemoveNoteItem removes one ledger entry from the addressed note.
func (f *CashFlowForm) RemoveNoteItem(noteIndex, itemIndex int) error {
	if noteIndex < 0 || noteIndex >= len(f.Notes) {
		return ErrIndexOutOfRange
	}
	items := f.Notes[noteIndex].Items
	if itemIndex < 0 || itemIndex >= len(items) {
		return ErrIndexOutOfRange
	}
	f.Notes[noteIndex].Items = append(items[:itemIndex], items[itemIndex+1:]...)
	return nil
}

// UpdateNoteItem merges the patch into one ledger entry of the addressed note.
func (f *CashFlowForm) UpdateNoteItem(noteIndex, itemIndex int, patch LedgerEntryPatch) error {
	if noteIndex < 0 || noteIndex >= len(f.Notes) {
		return ErrIndexOutOfRange
	}
	items := f.Notes[noteIndex].Items
	if itemIndex < 0 || itemIndex >= len(items) {
		return ErrIndexOutOfRange
	}
	items[itemIndex].apply(patch)
	return nil
}
