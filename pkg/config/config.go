package config

import (
	"time"
)

// Cache drivers accepted by Cache.Driver.
const (
	CacheDriverFile   = "file"
	CacheDriverRedis  = "redis"
	CacheDriverMemory = "memory"
)

type Log struct {
	Level      string `envconfig:"LEVEL" default:"warn"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fxconv]"`
}

//revive:disable
type FreeCurrencyAPI struct {
	ApiKey      string        `envconfig:"KEY"`
	ApiUrl      string        `envconfig:"URL" default:"https://api.freecurrencyapi.com/v1"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s"`
}

//revive:enable

type Cache struct {
	Driver string `envconfig:"DRIVER" default:"file"`
	Dir    string `envconfig:"DIR" default:"./.fxconv/cache"`
}

type Redis struct {
	URL       string `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix string `envconfig:"KEY_PREFIX" default:"fxconv:"`
}

type Metrics struct {
	// Textfile is where Prometheus metrics are written after each run. Empty disables the export.
	Textfile string `envconfig:"TEXTFILE"`
}

type App struct {
	Env     string           `envconfig:"APP_ENV" default:"development"`
	Log     *Log             `envconfig:"LOG"`
	API     *FreeCurrencyAPI `envconfig:"API"`
	Cache   *Cache           `envconfig:"CACHE"`
	Redis   *Redis           `envconfig:"REDIS"`
	Metrics *Metrics         `envconfig:"METRICS"`
}
