package estate

import (
	"strings"

	"github.com/propledger/backend/internal/domain/shared"
)

// CategoryKind separates expense categories (bills) from income categories
// (invoices, rent)
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "EXPENSE"
	CategoryKindIncome  CategoryKind = "INCOME"
)

// IsValid checks if the kind is a valid CategoryKind
func (k CategoryKind) IsValid() bool {
	return k == CategoryKindExpense || k == CategoryKindIncome
}

// TenantVariantSuffix marks the tenant-routed variant of an expense
// category. When a bill is tied to a rental agreement, its payment
// transaction is posted under the tenant variant so the cash effect lands on
// the tenant, not the vendor.
const TenantVariantSuffix = " (Tenant)"

// RentalIncomeCategoryName is the system category rent invoices post under.
// Its absence is a store-integrity failure, not a user error.
const RentalIncomeCategoryName = "Rental Income"

// Category labels line items and ledger transactions
type Category struct {
	shared.BaseAggregateRoot
	Name string
	Kind CategoryKind
}

// NewCategory creates a new category
func NewCategory(name string, kind CategoryKind) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category kind is not valid")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Kind:              kind,
	}, nil
}

// TenantVariantName returns the name of the tenant-routed variant of this
// category
func (c *Category) TenantVariantName() string {
	return c.Name + TenantVariantSuffix
}

// IsTenantVariant returns true if this category is itself a tenant variant
func (c *Category) IsTenantVariant() bool {
	return strings.HasSuffix(c.Name, TenantVariantSuffix)
}
