package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// MaxDiscountPct is the ceiling for cart discounts, in percent.
	MaxDiscountPct decimal.Decimal
	// LowStockThreshold is the default cut-off for low-stock reports.
	LowStockThreshold int
	// RateLimit is a limiter formatted rate, e.g. "100-M" for 100 requests per minute.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MAX_DISCOUNT_PCT", "50")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	maxDiscountStr := viper.GetString("MAX_DISCOUNT_PCT")
	maxDiscount, err := decimal.NewFromString(maxDiscountStr)
	if err != nil || maxDiscount.IsNegative() || maxDiscount.GreaterThan(decimal.NewFromInt(100)) {
		maxDiscount = decimal.NewFromInt(50)
		log.Printf("Warning: Invalid value for MAX_DISCOUNT_PCT ('%s'). Defaulting to %s.\n", maxDiscountStr, maxDiscount.String())
	}

	lowStockThreshold := viper.GetInt("LOW_STOCK_THRESHOLD")
	if lowStockThreshold < 0 {
		lowStockThreshold = 10
		log.Printf("Warning: LOW_STOCK_THRESHOLD cannot be negative. Defaulting to %d.\n", lowStockThreshold)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MaxDiscountPct = maxDiscount
	cfg.LowStockThreshold = lowStockThreshold
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
