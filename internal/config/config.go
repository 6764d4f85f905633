package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "BUDGETLY_"

type Application struct {
	Port      int       `koanf:"port"`
	Timezone  string    `koanf:"timezone"`
	Database  Database  `koanf:"db"`
	Auth      Auth      `koanf:"auth"`
	Redis     Redis     `koanf:"redis"`
	RateLimit RateLimit `koanf:"ratelimit"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Auth struct {
	Secret   string        `koanf:"secret"`
	TokenTtl time.Duration `koanf:"tokenttl"`
}

type Redis struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// RateLimit bounds sign-in attempts per email within Window.
type RateLimit struct {
	MaxAttempts int           `koanf:"maxattempts"`
	Window      time.Duration `koanf:"window"`
}

func defaults() Application {
	return Application{
		Port:     8181,
		Timezone: "UTC",
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "budgetly",
			Pass:   "",
			Name:   "budgetly",
			Schema: "budgetly",
		},
		Auth: Auth{
			TokenTtl: 24 * time.Hour,
		},
		Redis: Redis{
			Enabled: false,
			Addr:    "localhost:6379",
		},
		RateLimit: RateLimit{
			MaxAttempts: 5,
			Window:      time.Minute,
		},
	}
}

// Load layers struct defaults, the YAML file at path (optional) and BUDGETLY_ environment variables.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
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

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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

	return app, nil
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (a Application) Location() *time.Location {
	location, err := time.LoadLocation(a.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q, using UTC: %v", a.Timezone, err)
		return time.UTC
	}
	return location
}
