// Package valuation is the application service behind /predict and the
// score command. It memoizes engine output in the score cache when one is
// configured.
package valuation

import (
	"context"
	"strconv"
	"time"

	"github.com/turtacn/DealLens/internal/domain/valuation"
	"github.com/turtacn/DealLens/internal/infrastructure/database/redis"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/DealLens/internal/infrastructure/monitoring/prometheus"
)

// Inputs echoes the request as scored.
type Inputs struct {
	Sector    string  `json:"sector"`
	Geography string  `json:"geography"`
	RevenueM  float64 `json:"revenue_m"`
}

// Result is a scored request.
type Result struct {
	Inputs      Inputs               `json:"inputs"`
	Predictions valuation.Prediction `json:"predictions"`
	KeyDrivers  []string             `json:"key_drivers"`
	CacheHit    bool                 `json:"-"`
}

// Service scores valuation requests.
type Service interface {
	Score(ctx context.Context, req Request) (*Result, error)
}

// Option customises the service.
type Option func(*serviceImpl)

// WithCache memoizes valuations in cache for ttl.
func WithCache(cache redis.Cache, ttl time.Duration) Option {
	return func(s *serviceImpl) {
		s.cache = cache
		s.ttl = ttl
	}
}

// WithMetrics records valuations on m.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

type serviceImpl struct {
	scorer  valuation.Scorer
	cache   redis.Cache
	ttl     time.Duration
	metrics *prometheus.AppMetrics
	logger  logging.Logger
}

// NewService returns a Service over scorer. A nil scorer uses the built-in
// tables.
func NewService(scorer valuation.Scorer, logger logging.Logger, opts ...Option) Service {
	if scorer == nil {
		scorer = valuation.Default()
	}
	s := &serviceImpl{scorer: scorer, logger: logger}
	for _, o := range opts {
		o(s)
	}
	return s
}

// CacheKey is the score cache key for req, before the cache prefix. Labels
// are quoted so that a separator inside a label cannot alias another request.
func CacheKey(req Request) string {
	return "score:" + strconv.Quote(req.Sector) + "|" + strconv.Quote(req.Geography) + "|" +
		strconv.FormatFloat(req.RevenueM, 'g', -1, 64)
}

func (s *serviceImpl) Score(ctx context.Context, req Request) (*Result, error) {
	v, hit := s.valuate(ctx, req)

	if s.metrics != nil {
		s.metrics.RecordValuation(v.BaseMultiple, hit)
	}

	return &Result{
		Inputs: Inputs{
			Sector:    req.Sector,
			Geography: req.Geography,
			RevenueM:  req.RevenueM,
		},
		Predictions: v.Prediction(),
		KeyDrivers:  v.KeyDrivers,
		CacheHit:    hit,
	}, nil
}

// valuate never fails: cache errors fall back to the engine.
func (s *serviceImpl) valuate(ctx context.Context, req Request) (valuation.Valuation, bool) {
	if s.cache == nil {
		return s.scorer.Score(req.Sector, req.Geography, req.RevenueM), false
	}

	key := CacheKey(req)
	var v valuation.Valuation
	if err := s.cache.Get(ctx, key, &v); err == nil {
		return v, true
	}

	// A miss is reported even when a concurrent caller's load fills v.
	err := s.cache.GetOrSet(ctx, key, &v, s.ttl, func(context.Context) (interface{}, error) {
		return s.scorer.Score(req.Sector, req.Geography, req.RevenueM), nil
	})
	if err != nil {
		s.logger.Warn("Score cache unavailable, scoring directly",
			logging.Err(err),
			logging.String("sector", req.Sector))
		return s.scorer.Score(req.Sector, req.Geography, req.RevenueM), false
	}
	return v, false
}

//Personal.AI order the ending
