package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Postgres   Postgres   `yaml:"postgres"`
	Minio      Minio      `yaml:"minio"`
	Redis      Redis      `yaml:"redis"`
	Curriculum Curriculum `yaml:"curriculum"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8081"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Minio struct {
	Endpoint    string `yaml:"endpoint" env-default:"minio:9000"`
	AccessKey   string `yaml:"access_key"`
	SecretKey   string `yaml:"secret_key"`
	UseSSL      bool   `yaml:"use_ssl"`
	MediaBucket string `yaml:"media_bucket" env-default:"course-media"`
}

type Redis struct {
	Address       string `yaml:"address" env-default:"redis:6379"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	NotifyChannel string `yaml:"notify_channel" env-default:"course-notifications"`
}

// Curriculum carries editor policy. PublishLockedTypes lists content types
// whose publish state cannot be toggled once the item exists.
type Curriculum struct {
	PublishLockedTypes []string `yaml:"publish_locked_types" env-default:"live"`
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
