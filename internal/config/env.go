package config

import (
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Env holds runtime configuration. Values come from the environment,
// optionally overridden by a YAML file pointed to by CONFIG_FILE.
type Env struct {
	AppAddr     string   `yaml:"app_addr"`
	GinMode     string   `yaml:"gin_mode"`
	DBPath      string   `yaml:"db_path"`
	JWTSecret   string   `yaml:"jwt_secret"`
	Timezone    string   `yaml:"timezone"`
	CORSOrigins []string `yaml:"cors_origins"`
}

func LoadEnv() Env {
	env := Env{
		AppAddr:   strings.TrimSpace(os.Getenv("APP_ADDR")),
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBPath:    strings.TrimSpace(os.Getenv("DB_PATH")),
		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),
		Timezone:  strings.TrimSpace(os.Getenv("REFERENCE_TZ")),
	}

	if origins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadConfigFile(path, &env); err != nil {
			log.Printf("warning: could not load config file %s: %v", path, err)
		}
	}

	if env.AppAddr == "" {
		env.AppAddr = ":8080"
	}
	if env.DBPath == "" {
		env.DBPath = "fjelldrift.db"
	}
	if env.JWTSecret == "" {
		env.JWTSecret = "super-secret-key-change-me"
	}
	if env.Timezone == "" {
		env.Timezone = "Europe/Oslo"
	}

	return env
}

func loadConfigFile(path string, env *Env) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, env)
}
