package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItem is a categorized charge on a bill. NetValue is quantity times
// unit price unless the net value was edited directly, in which case the
// unit price is back-derived so the pair stays consistent.
type LineItem struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   uuid.UUID       `json:"category_id"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	NetValue     decimal.Decimal `json:"net_value"`
	AddedAt      time.Time       `json:"added_at"`
}

// NewLineItem creates a line item, deriving NetValue from quantity and price
func NewLineItem(categoryID uuid.UUID, unit string, quantity, pricePerUnit decimal.Decimal) (*LineItem, error) {
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item category cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item quantity cannot be negative")
	}
	if pricePerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LINE_ITEM", "Line item price cannot be negative")
	}
	return &LineItem{
		ID:           uuid.New(),
		CategoryID:   categoryID,
		Unit:         unit,
		Quantity:     quantity,
		PricePerUnit: pricePerUnit,
		NetValue:     quantity.Mul(pricePerUnit),
		AddedAt:      time.Now(),
	}, nil
}

// SetQuantity updates quantity and re-derives NetValue
func (li *LineItem) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item quantity cannot be negative")
	}
	li.Quantity = quantity
	li.NetValue = li.Quantity.Mul(li.PricePerUnit)
	return nil
}

// SetPricePerUnit updates the unit price and re-derives NetValue
func (li *LineItem) SetPricePerUnit(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item price cannot be negative")
	}
	li.PricePerUnit = price
	li.NetValue = li.Quantity.Mul(li.PricePerUnit)
	return nil
}

// SetNetValue sets the net value directly and back-derives the unit price.
// A zero quantity is normalized to one so the derivation stays total-
// preserving.
func (li *LineItem) SetNetValue(netValue decimal.Decimal) error {
	if netValue.IsNegative() {
		return shared.NewDomainError("INVALID_LINE_ITEM", "Line item net value cannot be negative")
	}
	li.NetValue = netValue
	if li.Quantity.IsZero() {
		li.Quantity = decimal.NewFromInt(1)
		li.PricePerUnit = netValue
		return nil
	}
	li.PricePerUnit = netValue.Div(li.Quantity)
	return nil
}

// LineItems is a slice of LineItem that implements GORM Scanner/Valuer for
// JSONB storage
type LineItems []LineItem

// Total returns the sum of all net values
func (l LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.NetValue)
	}
	return total
}

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = LineItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan LineItems: unsupported type")
	}

	if len(bytes) == 0 {
		*l = LineItems{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}
