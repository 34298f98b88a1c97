package exchange

import (
	"context"
	"errors"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/cache"
	"github.com/snowtrip/hokkaido/pkg/lookup"
)

const cacheKey = "exchange:jpy-twd"

type Service interface {
	// JPYToTWD never fails: on any error it returns the fallback rate marked as degraded.
	JPYToTWD(ctx context.Context) lookup.Result[Rate]
	Convert(ctx context.Context, yen float64) lookup.Result[Conversion]
}

type ServiceImpl struct {
	client   Client
	cache    cache.Cache
	fallback Rate
	cacheTtl time.Duration
}

func NewService(client Client, cache cache.Cache, fallback Rate, cacheTtl time.Duration) *ServiceImpl {
	return &ServiceImpl{client: client, cache: cache, fallback: fallback, cacheTtl: cacheTtl}
}

func (s *ServiceImpl) JPYToTWD(ctx context.Context) lookup.Result[Rate] {
	if rate, ok := s.cached(ctx); ok {
		return lookup.Ok(rate)
	}

	rate, err := s.client.JPYToTWD(ctx)
	if err != nil {
		log.Warnf("exchange rate lookup failed, using fallback %v: %v", s.fallback, err)
		return lookup.Fallback(s.fallback, err)
	}

	if s.cacheTtl > 0 {
		raw := []byte(strconv.FormatFloat(float64(rate), 'f', -1, 64))
		if err := s.cache.Set(ctx, cacheKey, raw, s.cacheTtl); err != nil {
			log.Errorf("failed to write exchange cache: %v", err)
		}
	}
	return lookup.Ok(rate)
}

func (s *ServiceImpl) Convert(ctx context.Context, yen float64) lookup.Result[Conversion] {
	rate := s.JPYToTWD(ctx)
	return lookup.Result[Conversion]{
		Value: Conversion{
			Yen:  yen,
			Twd:  rate.Value.Convert(yen),
			Rate: rate.Value,
		},
		Failure: rate.Failure,
	}
}

func (s *ServiceImpl) cached(ctx context.Context) (Rate, bool) {
	raw, err := s.cache.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Errorf("failed to read exchange cache: %v", err)
		}
		return 0, false
	}
	value, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		log.Errorf("failed to decode cached exchange rate %q: %v", raw, err)
		return 0, false
	}
	return Rate(value), true
}
