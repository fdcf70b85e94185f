package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Storage    Storage    `yaml:"storage"`
	Postgres   Postgres   `yaml:"postgres"`
	Minio      Minio      `yaml:"minio"`
	Payment    Payment    `yaml:"payment"`
	Catalog    Catalog    `yaml:"catalog"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage selects the repository backend. The memory driver keeps every
// ledger in process and is the default for local runs and tests.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

type Postgres struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"5432"`
	User     string `yaml:"user"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname"`
}

type Minio struct {
	Enabled    bool          `yaml:"enabled"`
	Endpoint   string        `yaml:"endpoint" env-default:"minio:9000"`
	AccessKey  string        `yaml:"access_key"`
	SecretKey  string        `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL     bool          `yaml:"use_ssl"`
	Bucket     string        `yaml:"bucket" env-default:"course-covers"`
	PresignTTL time.Duration `yaml:"presign_ttl" env-default:"1h"`
}

// Payment configures the simulated gateway: a fixed processing delay and a
// switch that makes every charge come back declined.
type Payment struct {
	GatewayDelay time.Duration `yaml:"gateway_delay" env-default:"1500ms"`
	DeclineAll   bool          `yaml:"decline_all" env:"PAYMENT_DECLINE_ALL"`
}

type Catalog struct {
	SeedPath string `yaml:"seed_path" env:"CATALOG_SEED_PATH" env-default:"configs/catalog.yaml"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Can not read config file %s", err)
	}

	return &cfg
}
