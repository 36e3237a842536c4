package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains all configuration of the API server, loaded once at
// process start and passed by reference into the components that need it.
type Config struct {
	Env            string   `env:"APP_ENV"         envDefault:"development"`
	Port           string   `env:"PORT"            envDefault:"5000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"http://localhost:5173,http://localhost:5174"`

	Mongo MongoConfig  `envPrefix:"MONGO_"`
	Token TokenConfig  `envPrefix:"JWT_"`
	Hash  HasherConfig `envPrefix:"ARGON_"`
}

// MongoConfig contains document store connection parameters.
type MongoConfig struct {
	URI      string `env:"URI,required,notEmpty"`
	Database string `env:"DB" envDefault:"speaktime"`
}

// TokenConfig contains token signing parameters. The process must not serve
// traffic without a signing secret, so the secret is required at parse time.
type TokenConfig struct {
	Secret    string        `env:"SECRET,required,notEmpty"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"168h"`
	Issuer    string        `env:"ISSUER"     envDefault:"speaktime-api"`
}

// HasherConfig contains the argon2 work factor parameters.
type HasherConfig struct {
	Time        uint32 `env:"TIME"        envDefault:"3"`
	MemoryKiB   uint32 `env:"MEMORY"      envDefault:"65536"`
	Parallelism uint8  `env:"PARALLELISM" envDefault:"4"`
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
