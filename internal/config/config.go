package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "HOKKAIDO_"

// WeatherLabels are the labels the weather fallback may report.
var WeatherLabels = []string{"clear", "cloudy", "rain", "snow", "overcast"}

type Application struct {
	Addr      string    `koanf:"addr"`
	Cors      Cors      `koanf:"cors"`
	RateLimit RateLimit `koanf:"ratelimit"`
	Weather   Weather   `koanf:"weather"`
	Exchange  Exchange  `koanf:"exchange"`
	Cache     Cache     `koanf:"cache"`
	Storage   Storage   `koanf:"storage"`
	Database  Database  `koanf:"db"`
}

type Cors struct {
	AllowedOrigins []string `koanf:"allowedorigins"`
}

type RateLimit struct {
	Enabled bool    `koanf:"enabled"`
	Rps     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

type Weather struct {
	BaseUrl             string        `koanf:"baseurl"`
	Timeout             time.Duration `koanf:"timeout"`
	CacheTtl            time.Duration `koanf:"cachettl"`
	DefaultLat          float64       `koanf:"defaultlat"`
	DefaultLon          float64       `koanf:"defaultlon"`
	FallbackTemperature float64       `koanf:"fallbacktemperature"`
	FallbackLabel       string        `koanf:"fallbacklabel"`
}

type Exchange struct {
	BaseUrl      string        `koanf:"baseurl"`
	Timeout      time.Duration `koanf:"timeout"`
	CacheTtl     time.Duration `koanf:"cachettl"`
	FallbackRate float64       `koanf:"fallbackrate"`
}

// Cache selects the lookup cache backend. An empty RedisAddr keeps the cache in process memory.
type Cache struct {
	RedisAddr string `koanf:"redisaddr"`
	RedisPass string `koanf:"redispass"`
	RedisDb   int    `koanf:"redisdb"`
}

// Storage configures the S3-compatible bucket for voucher images. An empty Endpoint keeps images in memory.
type Storage struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"accesskey"`
	SecretKey string `koanf:"secretkey"`
	Bucket    string `koanf:"bucket"`
	Region    string `koanf:"region"`
	UseSSL    bool   `koanf:"usessl"`
}

type Database struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    int    `koanf:"port"`
	User    string `koanf:"user"`
	Pass    string `koanf:"pass"`
	Name    string `koanf:"name"`
	Schema  string `koanf:"schema"`
}

func Defaults() Application {
	return Application{
		Addr: ":8181",
		Cors: Cors{
			AllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimit{
			Enabled: true,
			Rps:     10,
			Burst:   20,
		},
		Weather: Weather{
			BaseUrl:             "https://api.open-meteo.com",
			Timeout:             2 * time.Second,
			CacheTtl:            10 * time.Minute,
			DefaultLat:          43.0618,
			DefaultLon:          141.3545,
			FallbackTemperature: -3,
			FallbackLabel:       "snow",
		},
		Exchange: Exchange{
			BaseUrl:      "https://open.er-api.com",
			Timeout:      2 * time.Second,
			CacheTtl:     time.Hour,
			FallbackRate: 0.215,
		},
		Storage: Storage{
			Bucket: "vouchers",
		},
		Database: Database{
			Enabled: false,
			Host:    "localhost",
			Port:    5432,
			User:    "hokkaido",
			Pass:    "",
			Name:    "hokkaido",
			Schema:  "hokkaido",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			if k == "cors.allowedorigins" {
				return k, strings.Split(v, ",")
			}
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	if err := app.validate(); err != nil {
		log.Errorf("invalid configuration: %v", err)
		return Application{}, err
	}

	return app, nil
}

func (a Application) validate() error {
	if !slices.Contains(WeatherLabels, a.Weather.FallbackLabel) {
		return fmt.Errorf("weather.fallbacklabel %q is not one of %s", a.Weather.FallbackLabel, strings.Join(WeatherLabels, ", "))
	}
	return nil
}
