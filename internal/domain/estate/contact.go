package estate

import (
	"strings"

	"github.com/propledger/backend/internal/domain/shared"
)

// ContactType classifies the parties documents are raised for or against
type ContactType string

const (
	ContactTypeVendor ContactType = "VENDOR"
	ContactTypeTenant ContactType = "TENANT"
	ContactTypeOwner  ContactType = "OWNER"
	ContactTypeClient ContactType = "CLIENT"
)

// IsValid checks if the type is a valid ContactType
func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeVendor, ContactTypeTenant, ContactTypeOwner, ContactTypeClient:
		return true
	}
	return false
}

// Contact is a party a bill or invoice is addressed to: a vendor for bills,
// a tenant/owner/client for invoices
type Contact struct {
	shared.BaseAggregateRoot
	Name  string
	Type  ContactType
	Phone string
	Email string
}

// NewContact creates a new contact
func NewContact(name string, contactType ContactType) (*Contact, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact name cannot be empty")
	}
	if !contactType.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Contact type is not valid")
	}
	return &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Type:              contactType,
	}, nil
}
