package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Debug        bool
		TestMode     bool
		Env          string // DEV (local; default), TEST, QA, PROD
		Build        string
		AppName      string
		SecretKey    string
		APIBaseURL   string
		RollbarToken string

		Server  ServerConfig
		Session SessionConfig
		Redis   RedisConfig
	}

	ServerConfig struct {
		Addr           string
		DisableReqLogs bool
		// BackTrap keeps browser back from leaving a role shell's root page.
		BackTrap bool
	}

	SessionConfig struct {
		CookieName string
		TTL        time.Duration
		Store      string // memory | redis
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}
)

var Conf *Config

func init() {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Darasa")
	conf.SetDefault("secretKey", "x9w0q(h7l^#sm&20b$z+e8u@4r!dn5_ayc3vg6jk1tfpoi*m2e")
	conf.SetDefault("apiUrl", "http://localhost:8080/api")
	conf.SetDefault("serverAddr", ":3000")
	conf.SetDefault("disableReqLogs", false)
	conf.SetDefault("backTrap", true)
	conf.SetDefault("sessionCookieName", "darasa_session")
	conf.SetDefault("sessionTTL", 7*24*time.Hour)
	conf.SetDefault("sessionStore", "memory")
	conf.SetDefault("redisAddr", "127.0.0.1:6379")
	conf.SetDefault("redisPassword", "")
	conf.SetDefault("redisDB", 0)
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("build", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	Conf = &Config{
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Env:          env,
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("appName"),
		SecretKey:    conf.GetString("secretKey"),
		APIBaseURL:   strings.TrimRight(conf.GetString("apiUrl"), "/"),
		RollbarToken: conf.GetString("rollbarToken"),
		Server: ServerConfig{
			Addr:           conf.GetString("serverAddr"),
			DisableReqLogs: conf.GetBool("disableReqLogs"),
			BackTrap:       conf.GetBool("backTrap"),
		},
		Session: SessionConfig{
			CookieName: conf.GetString("sessionCookieName"),
			TTL:        conf.GetDuration("sessionTTL"),
			Store:      conf.GetString("sessionStore"),
		},
		Redis: RedisConfig{
			Addr:     conf.GetString("redisAddr"),
			Password: conf.GetString("redisPassword"),
			DB:       conf.GetInt("redisDB"),
		},
	}
}
