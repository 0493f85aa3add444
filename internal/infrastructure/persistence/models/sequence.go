package models

import (
	"github.com/propledger/backend/internal/domain/sequence"
)

// SeriesModel is the persistence model for numbering series.
type SeriesModel struct {
	AggregateModel
	Key        sequence.SeriesKey `gorm:"type:varchar(30);not null;uniqueIndex"`
	Prefix     string             `gorm:"type:varchar(20);not null"`
	NextNumber int                `gorm:"not null;default:1"`
	PadWidth   int                `gorm:"not null;default:5"`
}

// TableName returns the table name for GORM
func (SeriesModel) TableName() string {
	return "number_series"
}

// ToDomain converts the persistence model to a domain Series entity.
func (m *SeriesModel) ToDomain() *sequence.Series {
	return &sequence.Series{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Key:               m.Key,
		Prefix:            m.Prefix,
		NextNumber:        m.NextNumber,
		PadWidth:          m.PadWidth,
	}
}

// FromDomain populates the persistence model from a domain Series entity.
func (m *SeriesModel) FromDomain(s *sequence.Series) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Key = s.Key
	m.Prefix = s.Prefix
	m.NextNumber = s.NextNumber
	m.PadWidth = s.PadWidth
}

// SeriesModelFromDomain creates a new persistence model from a domain Series.
func SeriesModelFromDomain(s *sequence.Series) *SeriesModel {
	m := &SeriesModel{}
	m.FromDomain(s)
	return m
}
