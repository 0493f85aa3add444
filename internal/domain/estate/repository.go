package estate

import (
	"context"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// ContactRepository provides access to contacts
type ContactRepository interface {
	shared.Repository[Contact]
	FindByType(ctx context.Context, contactType ContactType) ([]Contact, error)
}

// ProjectRepository provides access to projects
type ProjectRepository interface {
	shared.Repository[Project]
}

// BuildingRepository provides access to buildings
type BuildingRepository interface {
	shared.Repository[Building]
}

// PropertyRepository provides access to properties
type PropertyRepository interface {
	shared.Repository[Property]
	FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]Property, error)
}

// StaffRepository provides access to staff members
type StaffRepository interface {
	shared.Repository[StaffMember]
}

// CategoryRepository provides access to categories
type CategoryRepository interface {
	shared.Repository[Category]
	// FindByName matches on trimmed, case-insensitive name
	FindByName(ctx context.Context, name string) (*Category, error)
}

// ContractRepository provides access to vendor contracts
type ContractRepository interface {
	shared.Repository[Contract]
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]Contract, error)
}

// RentalAgreementRepository provides access to rental agreements
type RentalAgreementRepository interface {
	shared.Repository[RentalAgreement]
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]RentalAgreement, error)
	FindByTenant(ctx context.Context, tenantContactID uuid.UUID) ([]RentalAgreement, error)
}

// ProjectAgreementRepository provides access to project agreements
type ProjectAgreementRepository interface {
	shared.Repository[ProjectAgreement]
	FindByProject(ctx context.Context, projectID uuid.UUID) ([]ProjectAgreement, error)
}
