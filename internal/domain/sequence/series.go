package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/propledger/backend/internal/domain/shared"
)

// SeriesKey identifies a numbering series. Each document family keeps its
// own persisted counter.
type SeriesKey string

const (
	SeriesBill           SeriesKey = "BILL"
	SeriesRentalInvoice  SeriesKey = "RENTAL_INVOICE"
	SeriesProjectInvoice SeriesKey = "PROJECT_INVOICE"
)

// IsValid checks if the key is a known series
func (k SeriesKey) IsValid() bool {
	switch k {
	case SeriesBill, SeriesRentalInvoice, SeriesProjectInvoice:
		return true
	}
	return false
}

// Series is a persisted numbering counter with a prefix and zero-padding
// width. Candidate numbers are prefix + zero-padded counter.
type Series struct {
	shared.BaseAggregateRoot
	Key        SeriesKey
	Prefix     string
	NextNumber int
	PadWidth   int
}

// NewSeries creates a numbering series starting at 1
func NewSeries(key SeriesKey, prefix string, padWidth int) (*Series, error) {
	if !key.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERIES", "Unknown numbering series")
	}
	if padWidth < 1 || padWidth > 10 {
		return nil, shared.NewDomainError("INVALID_SERIES", "Pad width must fall between 1 and 10")
	}
	return &Series{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Key:               key,
		Prefix:            prefix,
		NextNumber:        1,
		PadWidth:          padWidth,
	}, nil
}

// Format renders a counter value as a document number
func (s *Series) Format(n int) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.PadWidth, n)
}

// Advance moves the counter past a consumed value
func (s *Series) Advance(consumed int) {
	if consumed >= s.NextNumber {
		s.NextNumber = consumed + 1
		s.Touch()
		s.IncrementVersion()
	}
}

// GuardAgainst scans existing document numbers and advances the counter past
// any numeric suffix at or beyond it, so re-imports and manual edits never
// produce a duplicate. Numbers with a foreign prefix or a non-numeric suffix
// are ignored.
func (s *Series) GuardAgainst(existingNumbers []string) {
	max := s.NextNumber - 1
	for _, number := range existingNumbers {
		trimmed := strings.TrimSpace(number)
		if !strings.HasPrefix(strings.ToUpper(trimmed), strings.ToUpper(s.Prefix)) {
			continue
		}
		suffix := trimmed[len(s.Prefix):]
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	if max >= s.NextNumber {
		s.NextNumber = max + 1
		s.Touch()
		s.IncrementVersion()
	}
}

// Next returns the candidate number for the current counter without
// consuming it; the caller consumes via Advance once the document saves
func (s *Series) Next() string {
	return s.Format(s.NextNumber)
}

// SeriesRepository provides access to numbering series
type SeriesRepository interface {
	FindByKey(ctx context.Context, key SeriesKey) (*Series, error)
	Save(ctx context.Context, series *Series) error
}
