package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

// Admin holds the bootstrap credentials for the /admin/v1 surface.
type Admin struct {
	Email    string
	Password string
}

type Jobs struct {
	Workers   int
	QueueSize int
}

type Reports struct {
	Dir               string
	StatusCacheTTLSec int
}

type Config struct {
	App     App
	Log     Log
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	JWT     JWT
	Admin   Admin
	Jobs    Jobs
	Reports Reports
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("jobs.workers", 4)
	v.SetDefault("jobs.queuesize", 128)
	v.SetDefault("reports.dir", "tmp/reports")
	v.SetDefault("reports.statuscachettlsec", 2)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}
