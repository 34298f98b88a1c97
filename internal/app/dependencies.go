package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/snowtrip/hokkaido/internal/cache"
	"github.com/snowtrip/hokkaido/internal/config"
	"github.com/snowtrip/hokkaido/internal/database"
	"github.com/snowtrip/hokkaido/internal/ratelimit"
	"github.com/snowtrip/hokkaido/internal/utils"
	"github.com/snowtrip/hokkaido/pkg/exchange"
	"github.com/snowtrip/hokkaido/pkg/itinerary"
	"github.com/snowtrip/hokkaido/pkg/packing"
	"github.com/snowtrip/hokkaido/pkg/voucher"
	"github.com/snowtrip/hokkaido/pkg/weather"
)

// Infrastructure holds the optional backends. Nil members fall back to in-process implementations.
type Infrastructure struct {
	DB     *pgxpool.Pool
	Redis  *redis.Client
	Images voucher.ImageStore
}

// OpenInfrastructure connects the backends enabled in cfg.
func OpenInfrastructure(ctx context.Context, cfg config.Application) (Infrastructure, error) {
	infra := Infrastructure{}

	if cfg.Database.Enabled {
		if err := database.Migrate(cfg.Database); err != nil {
			return Infrastructure{}, fmt.Errorf("failed to migrate database: %w", err)
		}
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return Infrastructure{}, err
		}
		infra.DB = db
	}

	if cfg.Cache.RedisAddr != "" {
		client, err := cache.OpenRedis(ctx, cfg.Cache)
		if err != nil {
			infra.Close()
			return Infrastructure{}, err
		}
		infra.Redis = client
	}

	if cfg.Storage.Endpoint != "" {
		images, err := voucher.NewMinioImageStore(ctx, cfg.Storage)
		if err != nil {
			infra.Close()
			return Infrastructure{}, err
		}
		infra.Images = images
	}

	return infra, nil
}

func (i Infrastructure) Close() {
	if i.DB != nil {
		i.DB.Close()
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			log.Errorf("failed to close redis client: %v", err)
		}
	}
}

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock utils.Clock
	Cache cache.Cache

	ItineraryService *itinerary.ServiceImpl
	ItineraryHandler *itinerary.Handler

	WeatherClient  weather.Client
	WeatherService *weather.ServiceImpl
	WeatherHandler *weather.Handler

	ExchangeClient  exchange.Client
	ExchangeService *exchange.ServiceImpl
	ExchangeHandler *exchange.Handler

	VoucherRepo    voucher.Repository
	VoucherImages  voucher.ImageStore
	VoucherService *voucher.ServiceImpl
	VoucherHandler *voucher.Handler

	PackingRepo    packing.Repository
	PackingService *packing.ServiceImpl
	PackingHandler *packing.Handler

	RateLimiter *ratelimit.Limiter
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(infra Infrastructure, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = utils.SystemClock{Location: utils.TripLocation()}

	if infra.Redis != nil {
		deps.Cache = cache.NewRedisCache(infra.Redis)
	} else {
		deps.Cache = cache.NewMemoryCache(deps.Clock)
	}

	deps.ItineraryService = itinerary.NewService()
	deps.ItineraryHandler = itinerary.NewHandler(deps.ItineraryService)

	deps.WeatherClient = weather.NewClient(cfg.Weather.BaseUrl, cfg.Weather.Timeout)
	deps.WeatherService = weather.NewService(deps.WeatherClient, deps.Cache, weather.Settings{
		Default:  weather.Coordinates{Lat: cfg.Weather.DefaultLat, Lon: cfg.Weather.DefaultLon},
		Fallback: weather.Report{Temperature: cfg.Weather.FallbackTemperature, Label: weather.Label(cfg.Weather.FallbackLabel)},
		CacheTtl: cfg.Weather.CacheTtl,
	})
	deps.WeatherHandler = weather.NewHandler(deps.WeatherService, deps.ItineraryService.GetDay)

	deps.ExchangeClient = exchange.NewClient(cfg.Exchange.BaseUrl, cfg.Exchange.Timeout)
	deps.ExchangeService = exchange.NewService(deps.ExchangeClient, deps.Cache, exchange.Rate(cfg.Exchange.FallbackRate), cfg.Exchange.CacheTtl)
	deps.ExchangeHandler = exchange.NewHandler(deps.ExchangeService)

	if infra.DB != nil {
		deps.VoucherRepo = voucher.NewRepository(infra.DB)
		deps.PackingRepo = packing.NewRepository(infra.DB)
	} else {
		log.Info("Database disabled, keeping vouchers and packing lists in memory")
		deps.VoucherRepo = voucher.NewMemoryRepository()
		deps.PackingRepo = packing.NewMemoryRepository()
	}

	deps.VoucherImages = infra.Images
	if deps.VoucherImages == nil {
		deps.VoucherImages = voucher.NewMemoryImageStore()
	}
	deps.VoucherService = voucher.NewService(deps.VoucherRepo, deps.VoucherImages, deps.Clock)
	deps.VoucherHandler = voucher.NewHandler(deps.VoucherService, deps.ItineraryService.FindActivity)

	deps.PackingService = packing.NewService(deps.PackingRepo)
	deps.PackingHandler = packing.NewHandler(deps.PackingService)

	if cfg.RateLimit.Enabled {
		deps.RateLimiter = ratelimit.NewLimiter(cfg.RateLimit.Rps, cfg.RateLimit.Burst)
	}

	return deps
}
