package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// BiddingConfig carries the global bidding limits. Values are injected into
// the validation pipeline at construction, never read as ambient state.
type BiddingConfig struct {
	MaxBidAmount      decimal.Decimal
	BalanceRatioLimit decimal.Decimal
}

// PaymentConfig carries the settlement window and the penalty for defaulting on it.
type PaymentConfig struct {
	PaymentDeadline time.Duration
	BanDurationDays int
}

type ServerConfig struct {
	Addr              string
	SchedulerInterval time.Duration
}

type Config struct {
	Bidding BiddingConfig
	Payment PaymentConfig
	Server  ServerConfig
}

// Load reads configuration from the environment (.env is loaded if present)
// and falls back to sane defaults for anything unset
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Bidding: BiddingConfig{
			MaxBidAmount:      envDecimal("BIDDING_MAX_BID_AMOUNT", decimal.NewFromInt(1_000_000)),
			BalanceRatioLimit: envDecimal("BIDDING_BALANCE_RATIO_LIMIT", decimal.NewFromInt(2)),
		},
		Payment: PaymentConfig{
			PaymentDeadline: envDuration("PAYMENT_DEADLINE", 3*time.Hour),
			BanDurationDays: envInt("PAYMENT_BAN_DURATION_DAYS", 7),
		},
		Server: ServerConfig{
			Addr:              envString("SERVER_ADDR", ":9000"),
			SchedulerInterval: envDuration("SCHEDULER_INTERVAL", 30*time.Second),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}
