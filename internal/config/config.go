package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type TelegramConfig struct {
	Token   string `yaml:"token" env:"TELEGRAM_TOKEN"`
	ApiID   int32  `yaml:"api_id" env:"TELEGRAM_API_ID"`
	ApiHash string `yaml:"api_hash" env:"TELEGRAM_API_HASH"`
}

type MongoConfig struct {
	URI    string `yaml:"uri" env:"MONGO_URI"`
	DBName string `yaml:"db_name" env:"MONGO_DB_NAME" env-default:"intake"`
}

type AppConfig struct {
	Env         string         `yaml:"env" env:"ENV" env-default:"prod"`
	SessionDir  string         `yaml:"session_dir" env:"SESSION_DIR" env-default:".tdlib"`
	MetricsAddr string         `yaml:"metrics_addr" env:"METRICS_ADDR" env-default:":9090"`
	Telegram    TelegramConfig `yaml:"telegram"`
	Mongo       MongoConfig    `yaml:"mongo"`
}

// Load читает настройки из yaml-файла (если задан) и переменных окружения
func Load() (*AppConfig, error) {
	var cfg AppConfig

	path := fetchConfigPath()
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("ошибка загрузки конфига %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("ошибка чтения окружения: %w", err)
		}
	}

	if cfg.Telegram.Token == "" || cfg.Telegram.ApiID == 0 || cfg.Telegram.ApiHash == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN, TELEGRAM_API_ID, TELEGRAM_API_HASH должны быть заданы")
	}

	return &cfg, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
