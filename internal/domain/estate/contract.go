package estate

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ContractStatus represents the lifecycle state of a vendor contract
type ContractStatus string

const (
	ContractStatusActive    ContractStatus = "ACTIVE"
	ContractStatusCompleted ContractStatus = "COMPLETED"
	ContractStatusCancelled ContractStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ContractStatus
func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractStatusActive, ContractStatusCompleted, ContractStatusCancelled:
		return true
	}
	return false
}

// Contract scopes a vendor's spend, optionally against one project. Bills
// linked to the contract must match its vendor and project.
type Contract struct {
	shared.BaseAggregateRoot
	Number     string
	VendorID   uuid.UUID
	ProjectID  *uuid.UUID
	TotalValue decimal.Decimal
	Status     ContractStatus
	SignedAt   *time.Time
}

// NewContract creates an active vendor contract
func NewContract(number string, vendorID uuid.UUID, projectID *uuid.UUID, totalValue decimal.Decimal) (*Contract, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract number cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract vendor cannot be empty")
	}
	if totalValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_CONTRACT", "Contract value cannot be negative")
	}
	return &Contract{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            strings.TrimSpace(number),
		VendorID:          vendorID,
		ProjectID:         projectID,
		TotalValue:        totalValue,
		Status:            ContractStatusActive,
	}, nil
}

// IsActive returns true while the contract accepts new bill links
func (c *Contract) IsActive() bool {
	return c.Status == ContractStatusActive
}
