// Package config загружает настройки dpctl из переменных окружения.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// AWS — настройки клиента AWS.
type AWS struct {
	Region   string `env:"AWS_REGION, default=us-east-1"`
	Profile  string `env:"AWS_PROFILE"`
	Endpoint string `env:"DPCTL_AWS_ENDPOINT"`
}

// Log — настройки логирования.
type Log struct {
	Level  string `env:"LOG_LEVEL, default=INFO"`
	Format string `env:"LOG_FORMAT, default=text"`
}

// Lambda — настройки `dpctl lambda invoke`.
type Lambda struct {
	// FunctionTemplate — шаблон имени функции, %s заменяется на окружение.
	FunctionTemplate string `env:"DPCTL_LAMBDA_FUNCTION, default=lambda_test_%s_run"`
}

// Config — все настройки dpctl.
type Config struct {
	// CacheFile — путь к файлу кэша pipelines.
	CacheFile string `env:"DPCTL_CACHE_FILE, default=pipeline_config.json"`

	// DBURL — Postgres для истории активаций. Пусто — история отключена.
	DBURL string `env:"DB_URL"`

	// RabbitMQURL — брокер для событий активации. Пусто — события отключены.
	RabbitMQURL string `env:"RABBITMQ_URL"`

	// MetricsTextfile — куда записать метрики после команды. Пусто — не писать.
	MetricsTextfile string `env:"DPCTL_METRICS_TEXTFILE"`

	AWS    AWS
	Log    Log
	Lambda Lambda
}

// Load читает Config из окружения процесса.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom читает Config через lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}
