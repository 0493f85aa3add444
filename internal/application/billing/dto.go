package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// LineItemInput is one categorized charge supplied by the caller
type LineItemInput struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	// NetValue, when set, overrides quantity times price and back-derives
	// the unit price
	NetValue *decimal.Decimal `json:"net_value,omitempty"`
}

// AllocationInput is the stored optional-field shape of an allocation; the
// service reconstructs the tagged union from it
type AllocationInput struct {
	ProjectID  *uuid.UUID `json:"project_id,omitempty"`
	BuildingID *uuid.UUID `json:"building_id,omitempty"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	StaffID    *uuid.UUID `json:"staff_id,omitempty"`
}

// CreateDocumentRequest creates a bill or invoice
type CreateDocumentRequest struct {
	Kind               billing.DocumentKind `json:"kind"`
	Number             string               `json:"number"` // Empty means generate from the series
	ContactID          uuid.UUID            `json:"contact_id"`
	Allocation         AllocationInput      `json:"allocation"`
	ContractID         *uuid.UUID           `json:"contract_id,omitempty"`
	RentalAgreementID  *uuid.UUID           `json:"rental_agreement_id,omitempty"`
	ProjectAgreementID *uuid.UUID           `json:"project_agreement_id,omitempty"`
	Amount             decimal.Decimal      `json:"amount"`
	LineItems          []LineItemInput      `json:"line_items,omitempty"`
	IssueDate          time.Time            `json:"issue_date"`
	DueDate            *time.Time           `json:"due_date,omitempty"`
	Remark             string               `json:"remark,omitempty"`
}

// UpdateDocumentRequest edits a document; nil fields are left untouched
type UpdateDocumentRequest struct {
	Number     *string          `json:"number,omitempty"`
	ContactID  *uuid.UUID       `json:"contact_id,omitempty"`
	Allocation *AllocationInput `json:"allocation,omitempty"`
	ContractID *uuid.UUID       `json:"contract_id,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	LineItems  []LineItemInput  `json:"line_items,omitempty"`
	DueDate    *time.Time       `json:"due_date,omitempty"`
	Remark     *string          `json:"remark,omitempty"`
}

// DocumentResponse is the outward shape of a document
type DocumentResponse struct {
	ID                 uuid.UUID              `json:"id"`
	Kind               billing.DocumentKind   `json:"kind"`
	Number             string                 `json:"number"`
	ContactID          uuid.UUID              `json:"contact_id"`
	ContactName        string                 `json:"contact_name"`
	Allocation         billing.Allocation     `json:"allocation"`
	ContractID         *uuid.UUID             `json:"contract_id,omitempty"`
	RentalAgreementID  *uuid.UUID             `json:"rental_agreement_id,omitempty"`
	ProjectAgreementID *uuid.UUID             `json:"project_agreement_id,omitempty"`
	Amount             decimal.Decimal        `json:"amount"`
	PaidAmount         decimal.Decimal        `json:"paid_amount"`
	Balance            decimal.Decimal        `json:"balance"`
	Status             billing.DocumentStatus `json:"status"`
	IssueDate          time.Time              `json:"issue_date"`
	DueDate            *time.Time             `json:"due_date,omitempty"`
	LineItems          billing.LineItems      `json:"line_items,omitempty"`
	Remark             string                 `json:"remark,omitempty"`
	Version            int                    `json:"version"`
}

// NewDocumentResponse maps a domain document to its response shape
func NewDocumentResponse(doc *billing.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:                 doc.ID,
		Kind:               doc.Kind,
		Number:             doc.Number,
		ContactID:          doc.ContactID,
		ContactName:        doc.ContactName,
		Allocation:         doc.Allocation,
		ContractID:         doc.ContractID,
		RentalAgreementID:  doc.RentalAgreementID,
		ProjectAgreementID: doc.ProjectAgreementID,
		Amount:             doc.Amount,
		PaidAmount:         doc.PaidAmount,
		Balance:            doc.Balance(),
		Status:             doc.Status,
		IssueDate:          doc.IssueDate,
		DueDate:            doc.DueDate,
		LineItems:          doc.LineItems,
		Remark:             doc.Remark,
		Version:            doc.Version,
	}
}

// PaymentRequest applies a single payment against one document
type PaymentRequest struct {
	DocumentID uuid.UUID       `json:"document_id"`
	Amount     decimal.Decimal `json:"amount"`
	AccountID  uuid.UUID       `json:"account_id"`
	PaidAt     time.Time       `json:"paid_at"`
	Reference  string          `json:"reference,omitempty"`
	Remark     string          `json:"remark,omitempty"`
}

// PaymentResponse reports a single applied payment
type PaymentResponse struct {
	TransactionID uuid.UUID              `json:"transaction_id"`
	DocumentID    uuid.UUID              `json:"document_id"`
	Amount        decimal.Decimal        `json:"amount"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	Balance       decimal.Decimal        `json:"balance"`
	Status        billing.DocumentStatus `json:"status"`
}

// BulkPaymentItem is one document's share of a bulk payment. Amounts
// default to the full balance during preparation and stay editable until
// the batch is applied.
type BulkPaymentItem struct {
	DocumentID uuid.UUID       `json:"document_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// BulkPaymentRequest pays several documents together as one batch
type BulkPaymentRequest struct {
	Items     []BulkPaymentItem `json:"items"`
	AccountID uuid.UUID         `json:"account_id"`
	PaidAt    time.Time         `json:"paid_at"`
	Reference string            `json:"reference,omitempty"`
}

// BulkFailureKind classifies why one document's payment failed. It drives
// the user message, never the control flow.
type BulkFailureKind string

const (
	BulkFailureConflict    BulkFailureKind = "CONFLICT"    // Stale read; refresh and retry
	BulkFailureOverpayment BulkFailureKind = "OVERPAYMENT" // Balance violated at the store
	BulkFailureUnknown     BulkFailureKind = "UNKNOWN"
)

// UserMessage returns the message shown for this failure kind
func (k BulkFailureKind) UserMessage() string {
	switch k {
	case BulkFailureConflict:
		return "The document changed in another session. Refresh and retry."
	case BulkFailureOverpayment:
		return "The payment exceeds the document's outstanding balance."
	}
	return "The payment could not be saved."
}

// BulkPaymentFailure reports one document that could not be paid
type BulkPaymentFailure struct {
	DocumentID     uuid.UUID       `json:"document_id"`
	DocumentNumber string          `json:"document_number"`
	Kind           BulkFailureKind `json:"kind"`
	Message        string          `json:"message"`
}

// BulkPaymentSuccess reports one document that was paid
type BulkPaymentSuccess struct {
	DocumentID     uuid.UUID              `json:"document_id"`
	DocumentNumber string                 `json:"document_number"`
	TransactionID  uuid.UUID              `json:"transaction_id"`
	Amount         decimal.Decimal        `json:"amount"`
	Status         billing.DocumentStatus `json:"status"`
}

// BulkPaymentResult carries both sides of a partially successful batch
type BulkPaymentResult struct {
	BatchID   uuid.UUID            `json:"batch_id"`
	Succeeded []BulkPaymentSuccess `json:"succeeded"`
	Failed    []BulkPaymentFailure `json:"failed"`
}
