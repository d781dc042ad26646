package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// HTTP server
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// Database configuration. When neither is set the server runs on the
	// local mock store.
	Database struct {
		PostgresDSN string `env:"DATABASE_URL"`
		SQLitePath  string `env:"SQLITE_PATH"`
	}

	// Directory holding the durable blobs of the fallback path
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// Redis, used for realtime notification delivery on the real backend path
	Redis struct {
		Addr     string `env:"REDIS_ADDR"`
		Password string `env:"REDIS_PASSWORD"`
	}

	// Session tokens
	Auth struct {
		JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
		ExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`
	}

	// External image host
	Images struct {
		Endpoint      string `env:"IMAGE_HOST_URL" envDefault:"https://api.imgbb.com/1/upload"`
		APIKey        string `env:"IMAGE_HOST_KEY"`
		MaxBytes      int64  `env:"IMAGE_MAX_BYTES" envDefault:"10485760"`
		MaxPerListing int    `env:"IMAGE_MAX_PER_LISTING" envDefault:"8"`
	}

	// Agency phone number behind the contact deep links
	ContactPhone string `env:"CONTACT_PHONE" envDefault:"+237670000001"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseConfigured reports whether the real backend path is available.
// Checked once at startup; the chosen store is then injected everywhere.
func (c *Config) DatabaseConfigured() bool {
	return c.Database.PostgresDSN != "" || c.Database.SQLitePath != ""
}
