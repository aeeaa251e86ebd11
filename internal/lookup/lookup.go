// Package lookup runs a benchmark lookup end to end: search, selection,
// location, bounding-box fetch, decoding and mapping.
package lookup

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jd-develop/geodesie-de-bureau/internal/feature"
	"github.com/jd-develop/geodesie-de-bureau/internal/model"
	"github.com/jd-develop/geodesie-de-bureau/internal/reconcile"
	"github.com/jd-develop/geodesie-de-bureau/internal/search"
	"github.com/jd-develop/geodesie-de-bureau/pkg/ign"
)

// Service looks benchmarks up through an upstream client.
type Service struct {
	upstream    ign.Client
	diagnostics bool
}

// Option configures a Service.
type Option func(*Service)

// WithDiagnostics logs the raw payload window of schema errors at error
// level instead of debug.
func WithDiagnostics(on bool) Option {
	return func(s *Service) { s.diagnostics = on }
}

// NewService creates a lookup service over upstream.
func NewService(upstream ign.Client, opts ...Option) *Service {
	s := &Service{upstream: upstream}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Lookup returns the benchmark a query designates. chooser is asked when the
// search leaves several candidates; nil refuses.
func (s *Service) Lookup(ctx context.Context, query string, chooser reconcile.Chooser) (model.Benchmark, error) {
	q, err := search.NormalizeQuery(query)
	if err != nil {
		return model.Benchmark{}, err
	}
	log := zap.L().With(zap.String("query", q))

	fragment, err := s.upstream.Search(ctx, q)
	if err != nil {
		return model.Benchmark{}, eris.Wrap(err, "lookup: search")
	}
	candidates, err := search.ParseResults(fragment)
	if err != nil {
		return model.Benchmark{}, err
	}
	log.Debug("lookup: search done", zap.Int("candidates", len(candidates)))

	chosen, err := reconcile.Select(q, candidates, chooser)
	if err != nil {
		return model.Benchmark{}, err
	}
	log = log.With(zap.String("matricule", chosen.Name), zap.Uint32("cid", chosen.ID))

	located, err := s.upstream.Locate(ctx, search.LocatorKey(chosen.Name))
	if err != nil {
		return model.Benchmark{}, eris.Wrap(err, "lookup: locate")
	}
	lon, lat, err := search.ParseLocation(chosen.Name, located)
	if err != nil {
		return model.Benchmark{}, err
	}
	log.Debug("lookup: located", zap.Float64("lon", lon), zap.Float64("lat", lat))

	payload, err := s.upstream.BBox(ctx, search.BBoxCoord(lon), search.BBoxCoord(lat))
	if err != nil {
		return model.Benchmark{}, eris.Wrap(err, "lookup: bbox")
	}
	features, err := feature.Decode(payload)
	if err != nil {
		s.logSchemaError(log, err)
		return model.Benchmark{}, err
	}

	f, err := feature.FindByName(features, chosen.Name)
	if err != nil {
		var amb *feature.AmbiguousError
		if errors.As(err, &amb) {
			log.Warn("lookup: several features share the name", zap.Int64s("cids", amb.CIDs))
		}
		return model.Benchmark{}, err
	}

	b := reconcile.Build(f)
	log.Debug("lookup: done", zap.Int("features", len(features)))
	return b, nil
}

func (s *Service) logSchemaError(log *zap.Logger, err error) {
	var se *feature.SchemaError
	if !errors.As(err, &se) {
		return
	}
	fields := []zap.Field{
		zap.Int("feature", se.Feature),
		zap.Int64("offset", se.Offset),
		zap.String("field", se.Field),
		zap.String("window", se.Window),
	}
	if s.diagnostics {
		log.Error("lookup: bbox payload rejected", fields...)
		return
	}
	log.Debug("lookup: bbox payload rejected", fields...)
}
