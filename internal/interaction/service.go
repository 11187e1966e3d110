// Package interaction implements the interaction data service: lookup or synthesis of a
// ligand-protein record, threshold filtering, and summary statistics.
package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/hyperjump/fsaptvis/internal/dataset"
	"github.com/hyperjump/fsaptvis/internal/models"
	"github.com/hyperjump/fsaptvis/internal/pairkey"
	"github.com/hyperjump/fsaptvis/internal/synth"
	"go.uber.org/zap"
)

// DefaultThreshold is the significance threshold used when a caller supplies none.
const DefaultThreshold = 0.5

// ErrProcessing marks an unexpected failure while building, filtering, or summarizing a record.
var ErrProcessing = errors.New("processing failed")

// Source identifies where a record came from.
type Source string

const (
	SourceTable       Source = "table"
	SourceSynthesized Source = "synthesized"
)

// Observer receives one call per resolved record. Used for metrics.
type Observer interface {
	ObserveAnalysis(source Source, significant int)
}

// Synthesizer builds a record for a pair missing from the table.
type Synthesizer interface {
	Synthesize(ligandID, proteinID string) *models.InteractionRecord
}

// Service resolves interaction records for ligand-protein pairs.
type Service struct {
	table    dataset.Snapshotter
	synth    Synthesizer
	logger   *zap.Logger
	observer Observer
}

// Option configures a Service.
type Option func(*Service)

// WithObserver registers an Observer.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// NewService returns a Service over the given table and synthesizer.
func NewService(table dataset.Snapshotter, syn Synthesizer, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if syn == nil {
		syn = synth.New()
	}
	s := &Service{table: table, synth: syn, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetInteractions returns the record for the pair with energies filtered to those whose
// magnitude is at least threshold. threshold <= 0 disables filtering.
// TotalInteractionEnergy always keeps the unfiltered value.
func (s *Service) GetInteractions(ctx context.Context, ligandID, proteinID string, threshold float64) (*models.InteractionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	rec, source := s.resolve(ligandID, proteinID)
	if !rec.Consistent() {
		return nil, fmt.Errorf("%w: record %s has %d atom indices but %d energies",
			ErrProcessing, pairkey.Key(ligandID, proteinID), len(rec.AtomIndices), len(rec.EnergyContributions))
	}
	if threshold > 0 {
		rec.AtomIndices, rec.EnergyContributions = FilterSignificant(rec.AtomIndices, rec.EnergyContributions, threshold)
	}

	s.logger.Info("analysis completed",
		zap.String("ligand_id", ligandID),
		zap.String("protein_id", proteinID),
		zap.String("source", string(source)),
		zap.Float64("threshold", threshold),
		zap.Int("significant_interactions", len(rec.AtomIndices)),
	)
	if s.observer != nil {
		s.observer.ObserveAnalysis(source, len(rec.AtomIndices))
	}
	return rec, nil
}

// Summarize computes statistics over the unfiltered energies of the pair's record.
func (s *Service) Summarize(ctx context.Context, ligandID, proteinID string) (*models.SummaryStats, error) {
	rec, err := s.GetInteractions(ctx, ligandID, proteinID, 0)
	if err != nil {
		return nil, err
	}
	return Summarize(rec), nil
}

// AvailablePairs returns the pair keys of the fixed table in table order.
func (s *Service) AvailablePairs() []string {
	return s.table.Snapshot().Keys()
}

func (s *Service) resolve(ligandID, proteinID string) (*models.InteractionRecord, Source) {
	if rec, ok := s.table.Snapshot().Lookup(pairkey.Key(ligandID, proteinID)); ok {
		return rec, SourceTable
	}
	return s.synth.Synthesize(ligandID, proteinID), SourceSynthesized
}
