package estate

import (
	"strings"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// Project is a construction or development undertaking that documents and
// vendor contracts can be charged against
type Project struct {
	shared.BaseAggregateRoot
	Name string
	Code string
}

// NewProject creates a new project
func NewProject(name, code string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PROJECT", "Project name cannot be empty")
	}
	return &Project{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Code:              strings.TrimSpace(code),
	}, nil
}

// Building is a managed building; service charges are allocated to the
// building itself, owner charges to one of its properties
type Building struct {
	shared.BaseAggregateRoot
	Name    string
	Address string
}

// NewBuilding creates a new building
func NewBuilding(name, address string) (*Building, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building name cannot be empty")
	}
	return &Building{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           address,
	}, nil
}

// Property is a rentable/ownable unit inside a building
type Property struct {
	shared.BaseAggregateRoot
	Name           string
	BuildingID     uuid.UUID
	OwnerContactID *uuid.UUID
}

// NewProperty creates a new property within a building
func NewProperty(name string, buildingID uuid.UUID) (*Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property name cannot be empty")
	}
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROPERTY", "Property must belong to a building")
	}
	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		BuildingID:        buildingID,
	}, nil
}

// StaffMember is an employee that expenses can be allocated to
type StaffMember struct {
	shared.BaseAggregateRoot
	Name string
	Role string
}

// NewStaffMember creates a new staff member
func NewStaffMember(name, role string) (*StaffMember, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_STAFF", "Staff name cannot be empty")
	}
	return &StaffMember{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Role:              role,
	}, nil
}
