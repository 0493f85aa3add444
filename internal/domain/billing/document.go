package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/propledger/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes payables from receivables
type DocumentKind string

const (
	DocumentKindBill    DocumentKind = "BILL"    // Owed to a vendor
	DocumentKindInvoice DocumentKind = "INVOICE" // Owed by a tenant/owner/client
)

// IsValid checks if the kind is a valid DocumentKind
func (k DocumentKind) IsValid() bool {
	return k == DocumentKindBill || k == DocumentKindInvoice
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// DocumentStatus represents the payment state of a document
type DocumentStatus string

const (
	DocumentStatusDraft   DocumentStatus = "DRAFT"
	DocumentStatusUnpaid  DocumentStatus = "UNPAID"
	DocumentStatusPartial DocumentStatus = "PARTIALLY_PAID"
	DocumentStatusPaid    DocumentStatus = "PAID"
	DocumentStatusOverdue DocumentStatus = "OVERDUE"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusUnpaid, DocumentStatusPartial,
		DocumentStatusPaid, DocumentStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// CanApplyPayment returns true if payments can be applied in this status
func (s DocumentStatus) CanApplyPayment() bool {
	return s == DocumentStatusUnpaid || s == DocumentStatusPartial || s == DocumentStatusOverdue
}

// ComputeStatus derives the document status from its amounts and due date.
// Pure in (amount, paidAmount, dueDate, now) so callers can recompute after
// any mutation or ledger rollback.
func ComputeStatus(amount, paidAmount decimal.Decimal, dueDate *time.Time, now time.Time) DocumentStatus {
	if paidAmount.GreaterThanOrEqual(amount.Sub(valueobject.CentTolerance)) {
		return DocumentStatusPaid
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return DocumentStatusPartial
	}
	if dueDate != nil && now.After(*dueDate) {
		return DocumentStatusOverdue
	}
	return DocumentStatusUnpaid
}

// Document is a payable (bill) or receivable (invoice) aggregate root.
// Amount is derived: once line items exist the flat amount field is
// overwritten by their total. PaidAmount tracks the sum of applied ledger
// transactions and never exceeds Amount.
type Document struct {
	shared.BaseAggregateRoot
	Kind               DocumentKind
	Number             string
	ContactID          uuid.UUID
	ContactName        string
	Allocation         Allocation
	ContractID         *uuid.UUID
	RentalAgreementID  *uuid.UUID
	ProjectAgreementID *uuid.UUID
	Amount             decimal.Decimal
	PaidAmount         decimal.Decimal
	Status             DocumentStatus
	IssueDate          time.Time
	DueDate            *time.Time
	LineItems          LineItems
	Remark             string
}

// NewDocument creates a document with no payments applied
func NewDocument(
	kind DocumentKind,
	number string,
	contactID uuid.UUID,
	contactName string,
	allocation Allocation,
	amount valueobject.Money,
	issueDate time.Time,
	dueDate *time.Time,
) (*Document, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Document kind is not valid")
	}
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(number) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	if err := allocation.Validate(); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Document amount must be positive")
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Number:            strings.TrimSpace(number),
		ContactID:         contactID,
		ContactName:       contactName,
		Allocation:        allocation,
		Amount:            amount.Amount(),
		PaidAmount:        decimal.Zero,
		IssueDate:         issueDate,
		DueDate:           dueDate,
		LineItems:         make(LineItems, 0),
	}
	doc.Status = ComputeStatus(doc.Amount, doc.PaidAmount, doc.DueDate, time.Now())
	return doc, nil
}

// Balance returns the outstanding amount
func (d *Document) Balance() decimal.Decimal {
	return d.Amount.Sub(d.PaidAmount)
}

// BalanceMoney returns the outstanding amount as Money
func (d *Document) BalanceMoney() valueobject.Money {
	return valueobject.NewMoney(d.Balance())
}

// RecomputeStatus refreshes the status from the current amounts and clock
func (d *Document) RecomputeStatus(now time.Time) {
	if d.Status == DocumentStatusDraft && d.PaidAmount.IsZero() {
		return
	}
	d.Status = ComputeStatus(d.Amount, d.PaidAmount, d.DueDate, now)
}

// SetLineItems replaces the line items and overwrites the flat amount with
// their total. Bills only; invoices carry flat or pro-rated amounts.
func (d *Document) SetLineItems(items LineItems) error {
	if d.Kind != DocumentKindBill {
		return shared.NewDomainError("INVALID_KIND", "Line items are only supported on bills")
	}
	if len(items) == 0 {
		return shared.NewDomainError("EMPTY_LINE_ITEMS", "Line item list cannot be empty")
	}
	total := items.Total()
	if total.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Line item total must be positive")
	}
	if total.LessThan(d.PaidAmount) {
		return shared.NewDomainError("AMOUNT_BELOW_PAID",
			fmt.Sprintf("Line item total %s is below the already paid amount %s", total.StringFixed(2), d.PaidAmount.StringFixed(2)))
	}
	d.LineItems = items
	d.Amount = total
	d.RecomputeStatus(time.Now())
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetAmount updates the flat amount. Rejected when line items exist (the
// amount is derived then) or when the new amount drops below PaidAmount.
func (d *Document) SetAmount(amount valueobject.Money) error {
	if len(d.LineItems) > 0 {
		return shared.NewDomainError("AMOUNT_DERIVED", "Amount is derived from line items and cannot be set directly")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Document amount must be positive")
	}
	if amount.Amount().LessThan(d.PaidAmount) {
		return shared.NewDomainError("AMOUNT_BELOW_PAID",
			fmt.Sprintf("Amount %s cannot be reduced below the paid amount %s", amount.StringFixed(2), d.PaidAmount.StringFixed(2)))
	}
	d.Amount = amount.Amount()
	d.RecomputeStatus(time.Now())
	d.Touch()
	d.IncrementVersion()
	return nil
}

// ApplyPayment increases PaidAmount by the payment amount. Rejects
// non-positive payments and payments exceeding the balance beyond the cent
// tolerance.
func (d *Document) ApplyPayment(amount valueobject.Money, now time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	balance := d.Balance()
	if amount.Amount().Sub(balance).GreaterThan(valueobject.CentTolerance) {
		return shared.NewDomainError("PAYMENT_OVERPAYMENT",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount.StringFixed(2), balance.StringFixed(2)))
	}
	d.PaidAmount = d.PaidAmount.Add(amount.Amount())
	d.Status = ComputeStatus(d.Amount, d.PaidAmount, d.DueDate, now)
	d.Touch()
	d.IncrementVersion()
	return nil
}

// RollbackPayment decreases PaidAmount after a linked transaction is edited
// or deleted, then re-derives the status
func (d *Document) RollbackPayment(amount valueobject.Money, now time.Time) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Rollback amount must be positive")
	}
	if amount.Amount().GreaterThan(d.PaidAmount) {
		return shared.NewDomainError("INVALID_AMOUNT",
			fmt.Sprintf("Cannot roll back %s, only %s has been paid", amount.StringFixed(2), d.PaidAmount.StringFixed(2)))
	}
	d.PaidAmount = d.PaidAmount.Sub(amount.Amount())
	d.Status = ComputeStatus(d.Amount, d.PaidAmount, d.DueDate, now)
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetNumber renames the document. Uniqueness within the kind is enforced by
// the caller against the store.
func (d *Document) SetNumber(number string) error {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if len(trimmed) > 50 {
		return shared.NewDomainError("INVALID_NUMBER", "Document number cannot exceed 50 characters")
	}
	d.Number = trimmed
	d.Touch()
	d.IncrementVersion()
	return nil
}

// AttachRentalAgreement ties the document to the rental agreement it was
// raised under
func (d *Document) AttachRentalAgreement(agreementID uuid.UUID) {
	d.RentalAgreementID = &agreementID
	d.Touch()
}

// AttachProjectAgreement ties the document to the project agreement it was
// raised under
func (d *Document) AttachProjectAgreement(agreementID uuid.UUID) {
	d.ProjectAgreementID = &agreementID
	d.Touch()
}

// SetAllocation replaces the allocation root after validating it
func (d *Document) SetAllocation(allocation Allocation) error {
	if err := allocation.Validate(); err != nil {
		return err
	}
	d.Allocation = allocation
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetContact reassigns the document's party. Contract links are re-checked
// by the caller; a vendor change invalidates them.
func (d *Document) SetContact(contactID uuid.UUID, contactName string) error {
	if contactID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTACT", "Contact ID cannot be empty")
	}
	d.ContactID = contactID
	d.ContactName = contactName
	d.Touch()
	d.IncrementVersion()
	return nil
}

// SetDueDate updates the due date and re-derives the status
func (d *Document) SetDueDate(dueDate *time.Time) {
	d.DueDate = dueDate
	d.RecomputeStatus(time.Now())
	d.Touch()
	d.IncrementVersion()
}

// SetRemark sets the free-text remark
func (d *Document) SetRemark(remark string) {
	d.Remark = remark
	d.Touch()
}

// ClearContract removes a stale contract link
func (d *Document) ClearContract() {
	if d.ContractID == nil {
		return
	}
	d.ContractID = nil
	d.Touch()
	d.IncrementVersion()
}

// CanDelete returns true when no payments have been applied. Documents with
// applied payments must have their transactions removed first.
func (d *Document) CanDelete() bool {
	return d.PaidAmount.IsZero()
}

// IsBill returns true for payable documents
func (d *Document) IsBill() bool {
	return d.Kind == DocumentKindBill
}

// IsInvoice returns true for receivable documents
func (d *Document) IsInvoice() bool {
	return d.Kind == DocumentKindInvoice
}

// IsSettled returns true when the balance is inside the cent tolerance
func (d *Document) IsSettled() bool {
	return d.PaidAmount.GreaterThanOrEqual(d.Amount.Sub(valueobject.CentTolerance))
}
