package estate

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AgreementStatus represents the lifecycle state of a rental or project
// agreement
type AgreementStatus string

const (
	AgreementStatusActive    AgreementStatus = "ACTIVE"
	AgreementStatusCompleted AgreementStatus = "COMPLETED"
	AgreementStatusCancelled AgreementStatus = "CANCELLED"
)

// IsValid checks if the status is a valid AgreementStatus
func (s AgreementStatus) IsValid() bool {
	switch s {
	case AgreementStatusActive, AgreementStatusCompleted, AgreementStatusCancelled:
		return true
	}
	return false
}

// RentalAgreement ties a tenant to a property with a monthly rent, a
// security deposit and a contractual total. Rent invoices are generated from
// it and may not collectively exceed ContractTotal.
type RentalAgreement struct {
	shared.BaseAggregateRoot
	TenantContactID       uuid.UUID
	PropertyID            uuid.UUID
	MonthlyRent           decimal.Decimal
	SecurityDeposit       decimal.Decimal
	ContractTotal         decimal.Decimal
	RentDueDay            int // Day of month rent falls due
	GracePeriodDays       int // Days excluded from the first pro-rated period
	Status                AgreementStatus
	StartDate             time.Time
	EndDate               *time.Time
	SecurityDepositBilled bool
}

// NewRentalAgreement creates an active rental agreement
func NewRentalAgreement(
	tenantContactID, propertyID uuid.UUID,
	monthlyRent, securityDeposit, contractTotal decimal.Decimal,
	rentDueDay int,
	startDate time.Time,
) (*RentalAgreement, error) {
	if tenantContactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Tenant contact cannot be empty")
	}
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Property cannot be empty")
	}
	if monthlyRent.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Monthly rent must be positive")
	}
	if securityDeposit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Security deposit cannot be negative")
	}
	if rentDueDay < 1 || rentDueDay > 28 {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Rent due day must fall between 1 and 28")
	}
	return &RentalAgreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantContactID:   tenantContactID,
		PropertyID:        propertyID,
		MonthlyRent:       monthlyRent,
		SecurityDeposit:   securityDeposit,
		ContractTotal:     contractTotal,
		RentDueDay:        rentDueDay,
		Status:            AgreementStatusActive,
		StartDate:         startDate,
	}, nil
}

// IsActive returns true while invoices may be generated from the agreement
func (ra *RentalAgreement) IsActive() bool {
	return ra.Status == AgreementStatusActive
}

// IsCancelled returns true once the agreement has been cancelled. Cancelled
// agreements reject document edits referencing them.
func (ra *RentalAgreement) IsCancelled() bool {
	return ra.Status == AgreementStatusCancelled
}

// RemainingBalance returns how much may still be invoiced against the
// agreement given the total already invoiced. Zero ContractTotal means no
// ceiling.
func (ra *RentalAgreement) RemainingBalance(invoicedToDate decimal.Decimal) decimal.Decimal {
	return ra.ContractTotal.Sub(invoicedToDate)
}

// HasCeiling returns true when the agreement caps total invoicing
func (ra *RentalAgreement) HasCeiling() bool {
	return ra.ContractTotal.GreaterThan(decimal.Zero)
}

// ProjectAgreement ties a client to a project for installment invoicing
type ProjectAgreement struct {
	shared.BaseAggregateRoot
	ClientContactID uuid.UUID
	ProjectID       uuid.UUID
	TotalValue      decimal.Decimal
	Status          AgreementStatus
}

// NewProjectAgreement creates an active project agreement
func NewProjectAgreement(clientContactID, projectID uuid.UUID, totalValue decimal.Decimal) (*ProjectAgreement, error) {
	if clientContactID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Client contact cannot be empty")
	}
	if projectID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Project cannot be empty")
	}
	if totalValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AGREEMENT", "Agreement value cannot be negative")
	}
	return &ProjectAgreement{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientContactID:   clientContactID,
		ProjectID:         projectID,
		TotalValue:        totalValue,
		Status:            AgreementStatusActive,
	}, nil
}

// IsActive returns true while invoices may be raised against the agreement
func (pa *ProjectAgreement) IsActive() bool {
	return pa.Status == AgreementStatusActive
}
