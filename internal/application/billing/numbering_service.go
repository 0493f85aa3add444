package billing

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/sequence"
	"github.com/propledger/backend/internal/domain/shared"
)

// NumberingService hands out document numbers from persisted series. Before
// proposing a number it scans the existing documents sharing the series
// prefix, so manually entered or imported numbers never collide with
// generated ones.
type NumberingService struct {
	seriesRepo sequence.SeriesRepository
	docRepo    billing.DocumentRepository
}

// NewNumberingService creates a numbering service
func NewNumberingService(seriesRepo sequence.SeriesRepository, docRepo billing.DocumentRepository) *NumberingService {
	return &NumberingService{seriesRepo: seriesRepo, docRepo: docRepo}
}

func kindOf(key sequence.SeriesKey) billing.DocumentKind {
	if key == sequence.SeriesBill {
		return billing.DocumentKindBill
	}
	return billing.DocumentKindInvoice
}

// NextNumber proposes the next free number in the series without consuming
// it. The counter advances only when Consume is called after the document
// saved successfully.
func (s *NumberingService) NextNumber(ctx context.Context, key sequence.SeriesKey) (string, error) {
	series, err := s.seriesRepo.FindByKey(ctx, key)
	if err != nil {
		return "", err
	}
	existing, err := s.docRepo.ListNumbersByPrefix(ctx, kindOf(key), series.Prefix)
	if err != nil {
		return "", err
	}
	before := series.NextNumber
	series.GuardAgainst(existing)
	if series.NextNumber != before {
		if err := s.seriesRepo.Save(ctx, series); err != nil {
			return "", err
		}
	}
	return series.Next(), nil
}

// Consume advances the series past a number that was just written to a
// document. Numbers with a foreign prefix or non-numeric suffix (manual
// entries) leave the counter untouched.
func (s *NumberingService) Consume(ctx context.Context, key sequence.SeriesKey, number string) error {
	series, err := s.seriesRepo.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(number)
	if !strings.HasPrefix(strings.ToUpper(trimmed), strings.ToUpper(series.Prefix)) {
		return nil
	}
	n, err := strconv.Atoi(trimmed[len(series.Prefix):])
	if err != nil {
		return nil
	}
	before := series.NextNumber
	series.Advance(n)
	if series.NextNumber == before {
		return nil
	}
	return s.seriesRepo.Save(ctx, series)
}

// EnsureUnique rejects a number already carried by another document of the
// kind. Matching is case-insensitive on the trimmed value.
func (s *NumberingService) EnsureUnique(ctx context.Context, kind billing.DocumentKind, number string, excludeID uuid.UUID) error {
	exists, err := s.docRepo.NumberExists(ctx, kind, number, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return shared.ErrDuplicateNumber
	}
	return nil
}
