package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for ledger transactions.
type TransactionModel struct {
	AggregateModel
	Direction  ledger.TransactionDirection `gorm:"type:varchar(10);not null;index"`
	Amount     decimal.Decimal             `gorm:"type:decimal(18,2);not null"`
	AccountID  uuid.UUID                   `gorm:"type:uuid;not null;index"`
	ContactID  uuid.UUID                   `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID                  `gorm:"type:uuid;index"`
	BillID     *uuid.UUID                  `gorm:"type:uuid;index"`
	InvoiceID  *uuid.UUID                  `gorm:"type:uuid;index"`
	BatchID    *uuid.UUID                  `gorm:"type:uuid;index"`
	Reference  string                      `gorm:"type:varchar(100)"`
	Remark     string                      `gorm:"type:text"`
	PostedAt   time.Time                   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Direction:         m.Direction,
		Amount:            m.Amount,
		AccountID:         m.AccountID,
		ContactID:         m.ContactID,
		CategoryID:        m.CategoryID,
		BillID:            m.BillID,
		InvoiceID:         m.InvoiceID,
		BatchID:           m.BatchID,
		Reference:         m.Reference,
		Remark:            m.Remark,
		PostedAt:          m.PostedAt,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(tx *ledger.Transaction) {
	m.FromDomainAggregateRoot(tx.BaseAggregateRoot)
	m.Direction = tx.Direction
	m.Amount = tx.Amount
	m.AccountID = tx.AccountID
	m.ContactID = tx.ContactID
	m.CategoryID = tx.CategoryID
	m.BillID = tx.BillID
	m.InvoiceID = tx.InvoiceID
	m.BatchID = tx.BatchID
	m.Reference = tx.Reference
	m.Remark = tx.Remark
	m.PostedAt = tx.PostedAt
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction.
func TransactionModelFromDomain(tx *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(tx)
	return m
}

// AccountModel is the persistence model for payment accounts.
type AccountModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(200);not null"`
	Kind string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Kind:              m.Kind,
	}
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.Name = a.Name
	m.Kind = a.Kind
}

// AccountModelFromDomain creates a new persistence model from a domain Account.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}
