package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// DocumentModel is the persistence model for the Document aggregate root.
// Bills and invoices share one table; Kind separates them. The allocation
// and line items are stored as JSONB.
type DocumentModel struct {
	AggregateModel
	Kind               billing.DocumentKind   `gorm:"type:varchar(10);not null;uniqueIndex:idx_documents_kind_number,priority:1;index"`
	Number             string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_documents_kind_number,priority:2"`
	ContactID          uuid.UUID              `gorm:"type:uuid;not null;index"`
	ContactName        string                 `gorm:"type:varchar(200);not null"`
	Allocation         billing.Allocation     `gorm:"type:jsonb;default:'{}'"`
	ContractID         *uuid.UUID             `gorm:"type:uuid;index"`
	RentalAgreementID  *uuid.UUID             `gorm:"type:uuid;index"`
	ProjectAgreementID *uuid.UUID             `gorm:"type:uuid;index"`
	Amount             decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	PaidAmount         decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Status             billing.DocumentStatus `gorm:"type:varchar(20);not null;default:'UNPAID';index"`
	IssueDate          time.Time              `gorm:"not null;index"`
	DueDate            *time.Time             `gorm:"index"`
	LineItems          billing.LineItems      `gorm:"type:jsonb;default:'[]'"`
	Remark             string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *billing.Document {
	return &billing.Document{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Kind:               m.Kind,
		Number:             m.Number,
		ContactID:          m.ContactID,
		ContactName:        m.ContactName,
		Allocation:         m.Allocation,
		ContractID:         m.ContractID,
		RentalAgreementID:  m.RentalAgreementID,
		ProjectAgreementID: m.ProjectAgreementID,
		Amount:             m.Amount,
		PaidAmount:         m.PaidAmount,
		Status:             m.Status,
		IssueDate:          m.IssueDate,
		DueDate:            m.DueDate,
		LineItems:          m.LineItems,
		Remark:             m.Remark,
	}
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(doc *billing.Document) {
	m.FromDomainAggregateRoot(doc.BaseAggregateRoot)
	m.Kind = doc.Kind
	m.Number = doc.Number
	m.ContactID = doc.ContactID
	m.ContactName = doc.ContactName
	m.Allocation = doc.Allocation
	m.ContractID = doc.ContractID
	m.RentalAgreementID = doc.RentalAgreementID
	m.ProjectAgreementID = doc.ProjectAgreementID
	m.Amount = doc.Amount
	m.PaidAmount = doc.PaidAmount
	m.Status = doc.Status
	m.IssueDate = doc.IssueDate
	m.DueDate = doc.DueDate
	m.LineItems = doc.LineItems
	m.Remark = doc.Remark
}

// DocumentModelFromDomain creates a new persistence model from a domain Document.
func DocumentModelFromDomain(doc *billing.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(doc)
	return m
}
