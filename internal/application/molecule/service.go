// Package molecule provides the application-level service over the chemistry
// engine.  It is the seam between interface layers (CLI today) and the pure
// functions in pkg/chem: it adds record identity, structured logging,
// metrics, and read-through caching of derived results.
package molecule

import (
	"context"
	"time"

	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/cache"
	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ChemGraph-Engine/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/ChemGraph-Engine/pkg/chem"
	"github.com/turtacn/ChemGraph-Engine/pkg/errors"
	"github.com/turtacn/ChemGraph-Engine/pkg/types/common"
	moltypes "github.com/turtacn/ChemGraph-Engine/pkg/types/molecule"
)

// Service is the application-facing contract for molecule operations.
type Service interface {
	// Describe parses the SMILES and returns a full record: canonical form,
	// graph size, fingerprint, and descriptor set.
	Describe(ctx context.Context, smiles string) (*moltypes.MoleculeDTO, error)

	// Validate reports whether the SMILES parses cleanly; it never errors.
	Validate(ctx context.Context, smiles string) *moltypes.ValidationResult

	// Canonicalize returns the canonical rendering of the input.
	Canonicalize(ctx context.Context, smiles string) (string, error)

	// Rings returns the perceived rings with aromaticity classified.
	Rings(ctx context.Context, smiles string) ([]moltypes.Ring, error)

	// Match reports whether pattern occurs as a substructure of target.
	Match(ctx context.Context, target, pattern string) (*moltypes.MatchResult, error)

	// Similarity computes the Tanimoto coefficient of two SMILES inputs.
	Similarity(ctx context.Context, a, b string) (*moltypes.SimilarityResult, error)

	// Properties computes the descriptor set for the input.
	Properties(ctx context.Context, smiles string) (*moltypes.Properties, error)
}

type service struct {
	cache   cache.Cache
	logger  logging.Logger
	metrics *prometheus.EngineMetrics
}

// Option configures NewService.
type Option func(*service)

// WithCache attaches a derivation cache.  Without one the service computes
// everything on demand.
func WithCache(c cache.Cache) Option {
	return func(s *service) { s.cache = c }
}

// WithMetrics attaches engine metrics.
func WithMetrics(m *prometheus.EngineMetrics) Option {
	return func(s *service) { s.metrics = m }
}

// NewService constructs the molecule service.
func NewService(logger logging.Logger, opts ...Option) Service {
	s := &service{logger: logger.Named("molecule")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) countParse(err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		s.metrics.ParseTotal.WithLabelValues(string(errors.GetCode(err))).Inc()
		return
	}
	s.metrics.ParseTotal.WithLabelValues("ok").Inc()
}

func (s *service) parse(smiles string) (*chem.Molecule, error) {
	m, err := chem.ParseSMILES(smiles)
	s.countParse(err)
	if err != nil {
		s.logger.Debug("parse failed",
			logging.String("code", string(errors.GetCode(err))),
			logging.Int("offset", errors.GetOffset(err)))
		return nil, err
	}
	return m, nil
}

// cachedCanonical resolves the canonical form through the cache, keyed by the
// raw input text.  Derived results downstream are keyed by canonical text so
// that every spelling of a molecule shares one cache entry.
func (s *service) cachedCanonical(ctx context.Context, smiles string) (string, error) {
	if s.cache == nil {
		m, err := s.parse(smiles)
		if err != nil {
			return "", err
		}
		return chem.CanonicalSMILES(m), nil
	}

	var canonical string
	err := s.cache.GetOrSet(ctx, "canon:"+smiles, &canonical, 0,
		func(context.Context) (interface{}, error) {
			s.countCacheMiss("canonical")
			m, err := s.parse(smiles)
			if err != nil {
				return nil, err
			}
			return chem.CanonicalSMILES(m), nil
		})
	if err != nil {
		return "", err
	}
	return canonical, nil
}

func (s *service) countCacheMiss(which string) {
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.WithLabelValues(which).Inc()
	}
}

func (s *service) Describe(ctx context.Context, smiles string) (*moltypes.MoleculeDTO, error) {
	m, err := s.parse(smiles)
	if err != nil {
		return nil, err
	}

	canonical := chem.CanonicalSMILES(m)
	props := toProperties(chem.ComputeProperties(m))

	dto := &moltypes.MoleculeDTO{
		BaseEntity:      common.NewBaseEntity(),
		SMILES:          smiles,
		CanonicalSMILES: canonical,
		AtomCount:       m.NumAtoms(),
		BondCount:       m.NumBonds(),
		FingerprintHex:  chem.CalculateFingerprint(m).Hex(),
		Properties:      &props,
	}

	s.logger.Info("molecule described",
		logging.String("id", string(dto.ID)),
		logging.String("canonical", canonical),
		logging.Int("atoms", dto.AtomCount))
	return dto, nil
}

func (s *service) Validate(_ context.Context, smiles string) *moltypes.ValidationResult {
	_, err := chem.ParseSMILES(smiles)
	s.countParse(err)
	if s.metrics != nil {
		verdict := "valid"
		if err != nil {
			verdict = "invalid"
		}
		s.metrics.ValidationsTotal.WithLabelValues(verdict).Inc()
	}
	if err == nil {
		return &moltypes.ValidationResult{Valid: true}
	}
	return &moltypes.ValidationResult{
		Valid: false,
		Error: &common.ErrorDetail{
			Code:    string(errors.GetCode(err)),
			Message: err.Error(),
			Offset:  errors.GetOffset(err),
		},
	}
}

func (s *service) Canonicalize(ctx context.Context, smiles string) (string, error) {
	var timer *prometheus.Timer
	if s.metrics != nil {
		timer = prometheus.NewTimer(s.metrics.CanonicalDuration.WithLabelValues("canonicalize"))
	}
	canonical, err := s.cachedCanonical(ctx, smiles)
	if timer != nil {
		timer.ObserveDuration()
	}
	return canonical, err
}

func (s *service) Rings(_ context.Context, smiles string) ([]moltypes.Ring, error) {
	m, err := s.parse(smiles)
	if err != nil {
		return nil, err
	}
	rings := chem.FindAllRings(m)
	out := make([]moltypes.Ring, len(rings))
	for i, r := range rings {
		out[i] = moltypes.Ring{
			Atoms:    append([]int(nil), r.Atoms...),
			Size:     r.Size(),
			Aromatic: r.Aromatic,
		}
	}
	if s.metrics != nil {
		s.metrics.RingCount.WithLabelValues("all").Observe(float64(len(rings)))
	}
	return out, nil
}

func (s *service) Match(_ context.Context, target, pattern string) (*moltypes.MatchResult, error) {
	m, err := s.parse(target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	mapping, found, err := chem.FindSubstructure(m, pattern)
	outcome := "miss"
	switch {
	case err != nil:
		outcome = "error"
	case found:
		outcome = "hit"
	}
	if s.metrics != nil {
		s.metrics.MatchTotal.WithLabelValues(outcome).Inc()
		s.metrics.MatchDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}
	return &moltypes.MatchResult{
		Pattern:     pattern,
		Target:      target,
		Found:       found,
		AtomMapping: mapping,
	}, nil
}

func (s *service) Similarity(_ context.Context, a, b string) (*moltypes.SimilarityResult, error) {
	score, err := chem.SMILESSimilarity(a, b)
	if s.metrics != nil {
		if err != nil {
			s.metrics.SimilarityTotal.WithLabelValues(string(errors.GetCode(err))).Inc()
		} else {
			s.metrics.SimilarityTotal.WithLabelValues("ok").Inc()
			s.metrics.SimilarityScore.WithLabelValues("smiles").Observe(score)
		}
	}
	if err != nil {
		return nil, err
	}
	return &moltypes.SimilarityResult{Query: a, Target: b, Similarity: score}, nil
}

func (s *service) Properties(ctx context.Context, smiles string) (*moltypes.Properties, error) {
	compute := func() (*moltypes.Properties, error) {
		m, err := s.parse(smiles)
		if err != nil {
			return nil, err
		}
		p := toProperties(chem.ComputeProperties(m))
		return &p, nil
	}

	if s.cache == nil {
		return compute()
	}

	canonical, err := s.cachedCanonical(ctx, smiles)
	if err != nil {
		return nil, err
	}
	var props moltypes.Properties
	err = s.cache.GetOrSet(ctx, "props:"+canonical, &props, 0,
		func(context.Context) (interface{}, error) {
			s.countCacheMiss("properties")
			p, err := compute()
			if err != nil {
				return nil, err
			}
			return *p, nil
		})
	if err != nil {
		return nil, err
	}
	return &props, nil
}

func toProperties(p chem.Properties) moltypes.Properties {
	verdict := chem.RuleOfFive(p)
	return moltypes.Properties{
		Formula:            p.Formula,
		MolecularWeight:    p.MolecularWeight,
		HeavyAtoms:         p.HeavyAtoms,
		RingCount:          p.RingCount,
		AromaticRings:      p.AromaticRings,
		HBondDonors:        p.HBondDonors,
		HBondAcceptors:     p.HBondAcceptors,
		RotatableBonds:     p.RotatableBonds,
		LogP:               p.LogP,
		LipinskiViolations: verdict.Violations,
		LipinskiPass:       verdict.Pass,
	}
}
