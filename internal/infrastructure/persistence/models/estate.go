package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/shopspring/decimal"
)

// ContactModel is the persistence model for contacts.
type ContactModel struct {
	AggregateModel
	Name  string             `gorm:"type:varchar(200);not null;index"`
	Type  estate.ContactType `gorm:"type:varchar(10);not null;index"`
	Phone string             `gorm:"type:varchar(50)"`
	Email string             `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *estate.Contact {
	return &estate.Contact{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.Type,
		Phone:             m.Phone,
		Email:             m.Email,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *estate.Contact) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Type = c.Type
	m.Phone = c.Phone
	m.Email = c.Email
}

// ProjectModel is the persistence model for projects.
type ProjectModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(200);not null"`
	Code string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ProjectModel) TableName() string {
	return "projects"
}

// ToDomain converts the persistence model to a domain Project entity.
func (m *ProjectModel) ToDomain() *estate.Project {
	return &estate.Project{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Code:              m.Code,
	}
}

// FromDomain populates the persistence model from a domain Project entity.
func (m *ProjectModel) FromDomain(p *estate.Project) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Code = p.Code
}

// BuildingModel is the persistence model for buildings.
type BuildingModel struct {
	AggregateModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (BuildingModel) TableName() string {
	return "buildings"
}

// ToDomain converts the persistence model to a domain Building entity.
func (m *BuildingModel) ToDomain() *estate.Building {
	return &estate.Building{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
	}
}

// FromDomain populates the persistence model from a domain Building entity.
func (m *BuildingModel) FromDomain(b *estate.Building) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Address = b.Address
}

// PropertyModel is the persistence model for properties.
type PropertyModel struct {
	AggregateModel
	Name           string     `gorm:"type:varchar(200);not null"`
	BuildingID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	OwnerContactID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
func (m *PropertyModel) ToDomain() *estate.Property {
	return &estate.Property{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		BuildingID:        m.BuildingID,
		OwnerContactID:    m.OwnerContactID,
	}
}

// FromDomain populates the persistence model from a domain Property entity.
func (m *PropertyModel) FromDomain(p *estate.Property) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.BuildingID = p.BuildingID
	m.OwnerContactID = p.OwnerContactID
}

// StaffMemberModel is the persistence model for staff members.
type StaffMemberModel struct {
	AggregateModel
	Name string `gorm:"type:varchar(200);not null"`
	Role string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (StaffMemberModel) TableName() string {
	return "staff_members"
}

// ToDomain converts the persistence model to a domain StaffMember entity.
func (m *StaffMemberModel) ToDomain() *estate.StaffMember {
	return &estate.StaffMember{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Role:              m.Role,
	}
}

// FromDomain populates the persistence model from a domain StaffMember entity.
func (m *StaffMemberModel) FromDomain(s *estate.StaffMember) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Name = s.Name
	m.Role = s.Role
}

// CategoryModel is the persistence model for categories.
type CategoryModel struct {
	AggregateModel
	Name string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	Kind estate.CategoryKind `gorm:"type:varchar(10);not null;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *estate.Category {
	return &estate.Category{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Kind:              m.Kind,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *estate.Category) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Kind = c.Kind
}

// ContractModel is the persistence model for vendor contracts.
type ContractModel struct {
	AggregateModel
	Number     string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	VendorID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	ProjectID  *uuid.UUID            `gorm:"type:uuid;index"`
	TotalValue decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Status     estate.ContractStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	SignedAt   *time.Time
}

// TableName returns the table name for GORM
func (ContractModel) TableName() string {
	return "contracts"
}

// ToDomain converts the persistence model to a domain Contract entity.
func (m *ContractModel) ToDomain() *estate.Contract {
	return &estate.Contract{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		VendorID:          m.VendorID,
		ProjectID:         m.ProjectID,
		TotalValue:        m.TotalValue,
		Status:            m.Status,
		SignedAt:          m.SignedAt,
	}
}

// FromDomain populates the persistence model from a domain Contract entity.
func (m *ContractModel) FromDomain(c *estate.Contract) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Number = c.Number
	m.VendorID = c.VendorID
	m.ProjectID = c.ProjectID
	m.TotalValue = c.TotalValue
	m.Status = c.Status
	m.SignedAt = c.SignedAt
}

// RentalAgreementModel is the persistence model for rental agreements.
type RentalAgreementModel struct {
	AggregateModel
	TenantContactID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	PropertyID            uuid.UUID              `gorm:"type:uuid;not null;index"`
	MonthlyRent           decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	SecurityDeposit       decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	ContractTotal         decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	RentDueDay            int                    `gorm:"not null"`
	GracePeriodDays       int                    `gorm:"not null;default:0"`
	Status                estate.AgreementStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	StartDate             time.Time              `gorm:"not null"`
	EndDate               *time.Time
	SecurityDepositBilled bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (RentalAgreementModel) TableName() string {
	return "rental_agreements"
}

// ToDomain converts the persistence model to a domain RentalAgreement entity.
func (m *RentalAgreementModel) ToDomain() *estate.RentalAgreement {
	return &estate.RentalAgreement{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		TenantContactID:       m.TenantContactID,
		PropertyID:            m.PropertyID,
		MonthlyRent:           m.MonthlyRent,
		SecurityDeposit:       m.SecurityDeposit,
		ContractTotal:         m.ContractTotal,
		RentDueDay:            m.RentDueDay,
		GracePeriodDays:       m.GracePeriodDays,
		Status:                m.Status,
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		SecurityDepositBilled: m.SecurityDepositBilled,
	}
}

// FromDomain populates the persistence model from a domain RentalAgreement entity.
func (m *RentalAgreementModel) FromDomain(ra *estate.RentalAgreement) {
	m.FromDomainAggregateRoot(ra.BaseAggregateRoot)
	m.TenantContactID = ra.TenantContactID
	m.PropertyID = ra.PropertyID
	m.MonthlyRent = ra.MonthlyRent
	m.SecurityDeposit = ra.SecurityDeposit
	m.ContractTotal = ra.ContractTotal
	m.RentDueDay = ra.RentDueDay
	m.GracePeriodDays = ra.GracePeriodDays
	m.Status = ra.Status
	m.StartDate = ra.StartDate
	m.EndDate = ra.EndDate
	m.SecurityDepositBilled = ra.SecurityDepositBilled
}

// ProjectAgreementModel is the persistence model for project agreements.
type ProjectAgreementModel struct {
	AggregateModel
	ClientContactID uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProjectID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	TotalValue      decimal.Decimal        `gorm:"type:decimal(18,2);not null"`
	Status          estate.AgreementStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (ProjectAgreementModel) TableName() string {
	return "project_agreements"
}

// ToDomain converts the persistence model to a domain ProjectAgreement entity.
func (m *ProjectAgreementModel) ToDomain() *estate.ProjectAgreement {
	return &estate.ProjectAgreement{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ClientContactID:   m.ClientContactID,
		ProjectID:         m.ProjectID,
		TotalValue:        m.TotalValue,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain ProjectAgreement entity.
func (m *ProjectAgreementModel) FromDomain(pa *estate.ProjectAgreement) {
	m.FromDomainAggregateRoot(pa.BaseAggregateRoot)
	m.ClientContactID = pa.ClientContactID
	m.ProjectID = pa.ProjectID
	m.TotalValue = pa.TotalValue
	m.Status = pa.Status
}
