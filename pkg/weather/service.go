package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/cache"
	"github.com/snowtrip/hokkaido/pkg/lookup"
)

type Service interface {
	// Current never fails: on any error it returns the fallback report marked as degraded.
	// A nil location means the default location.
	Current(ctx context.Context, at *Coordinates) lookup.Result[Report]
}

type Settings struct {
	Default  Coordinates
	Fallback Report
	CacheTtl time.Duration
}

type ServiceImpl struct {
	client   Client
	cache    cache.Cache
	settings Settings
}

func NewService(client Client, cache cache.Cache, settings Settings) *ServiceImpl {
	settings.Fallback.Code = -1
	return &ServiceImpl{client: client, cache: cache, settings: settings}
}

func (s *ServiceImpl) Current(ctx context.Context, at *Coordinates) lookup.Result[Report] {
	location := s.settings.Default
	if at != nil {
		location = *at
	}

	key := cacheKey(location)
	if report, ok := s.cached(ctx, key); ok {
		return lookup.Ok(report)
	}

	report, err := s.client.Current(ctx, location)
	if err != nil {
		log.Warnf("weather lookup failed at %.4f,%.4f, using fallback: %v", location.Lat, location.Lon, err)
		return lookup.Fallback(s.settings.Fallback, err)
	}

	s.store(ctx, key, report)
	return lookup.Ok(report)
}

func (s *ServiceImpl) cached(ctx context.Context, key string) (Report, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Errorf("failed to read weather cache: %v", err)
		}
		return Report{}, false
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		log.Errorf("failed to decode cached weather report: %v", err)
		return Report{}, false
	}
	return report, true
}

func (s *ServiceImpl) store(ctx context.Context, key string, report Report) {
	if s.settings.CacheTtl <= 0 {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		log.Errorf("failed to encode weather report: %v", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.settings.CacheTtl); err != nil {
		log.Errorf("failed to write weather cache: %v", err)
	}
}

// cacheKey rounds to two decimals, roughly a kilometre.
func cacheKey(at Coordinates) string {
	return fmt.Sprintf("weather:%.2f,%.2f", at.Lat, at.Lon)
}
