// Path: internal/config/config.go
package config

import (
	"bank-core/pkg/database"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string        `env:"PORT" envDefault:"3000"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`
	AllowOrigins  string        `env:"CORS_ALLOW_ORIGINS" envDefault:"http://localhost:3000"`
	SeedDemoData  bool          `env:"SEED_DEMO_DATA" envDefault:"false"`
	AdminEmail    string        `env:"ADMIN_EMAIL"`
	AdminPassword string        `env:"ADMIN_PASSWORD"`
	DBDriver      string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DBDSN         string        `env:"DB_DSN" envDefault:":memory:"`
}

// Load reads the given .env files (".env" when none are given) and then
// parses the environment. Missing .env files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
		log.Println("Не найден .env файл, используем переменные окружения")
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return Config{}, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, cfg.BcryptCost)
	}
	if cfg.DBDriver != database.DriverSQLite && cfg.DBDriver != database.DriverPostgres {
		return Config{}, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", database.DriverSQLite, database.DriverPostgres, cfg.DBDriver)
	}
	if (cfg.AdminEmail == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
