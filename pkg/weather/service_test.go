package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/snowtrip/hokkaido/internal/cache"
	"github.com/snowtrip/hokkaido/internal/utils"
	"github.com/snowtrip/hokkaido/pkg/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var settings = Settings{
	Default:  Coordinates{Lat: 43.0618, Lon: 141.3545},
	Fallback: Report{Temperature: -3, Label: LabelSnow},
	CacheTtl: 10 * time.Minute,
}

func setup(t *testing.T) (*ServiceImpl, *ClientStub, *utils.MockClock) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)}
	client := NewClientStub()
	return NewService(client, cache.NewMemoryCache(clock), settings), client, clock
}

func TestServiceImpl_Current(t *testing.T) {
	t.Run("should return live report", func(t *testing.T) {
		// given
		service, client, _ := setup(t)
		client.SetReport(Report{Temperature: 1.5, Label: LabelRain, Code: 61})
		otaru := Coordinates{Lat: 43.19, Lon: 140.99}

		// when
		result := service.Current(ctx, &otaru)

		// then
		assert.False(t, result.Degraded())
		assert.Equal(t, Report{Temperature: 1.5, Label: LabelRain, Code: 61}, result.Value)
		assert.Equal(t, otaru, client.LastCoordinates())
	})

	t.Run("should use default location when none given", func(t *testing.T) {
		// given
		service, client, _ := setup(t)
		client.SetReport(Report{Temperature: -1, Label: LabelClear})

		// when
		service.Current(ctx, nil)

		// then
		assert.Equal(t, settings.Default, client.LastCoordinates())
	})

	t.Run("should return fixed fallback pair on failure", func(t *testing.T) {
		// given
		service, client, _ := setup(t)
		client.SetError(context.DeadlineExceeded)

		// when
		var result lookup.Result[Report]
		require.NotPanics(t, func() { result = service.Current(ctx, nil) })

		// then
		require.True(t, result.Degraded())
		assert.Equal(t, lookup.ReasonTimeout, result.Failure.Reason)
		assert.Equal(t, -3.0, result.Value.Temperature)
		assert.Equal(t, LabelSnow, result.Value.Label)
	})

	t.Run("should serve repeated lookups from cache until ttl", func(t *testing.T) {
		// given
		service, client, clock := setup(t)
		client.SetReport(Report{Temperature: -6, Label: LabelSnow, Code: 71})

		// when
		service.Current(ctx, nil)
		client.SetReport(Report{Temperature: 0, Label: LabelClear, Code: 0})
		cached := service.Current(ctx, nil)
		clock.Advance(11 * time.Minute)
		fresh := service.Current(ctx, nil)

		// then
		assert.Equal(t, -6.0, cached.Value.Temperature)
		assert.Equal(t, 0.0, fresh.Value.Temperature)
		assert.Equal(t, 2, client.Calls())
	})

	t.Run("should not cache failures", func(t *testing.T) {
		// given
		service, client, _ := setup(t)
		client.SetError(errors.New("connection refused"))
		service.Current(ctx, nil)

		// when
		client.SetReport(Report{Temperature: -2, Label: LabelCloudy, Code: 2})
		result := service.Current(ctx, nil)

		// then
		assert.False(t, result.Degraded())
		assert.Equal(t, LabelCloudy, result.Value.Label)
	})
}
