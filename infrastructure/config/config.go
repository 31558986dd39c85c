// Package config provides configuration management and dependency injection
// for the content gate. It handles loading configuration from files and
// environment variables, and sets up the DI container.
package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"x402-gate/domain/entities"
)

// Config represents the application configuration.
type Config struct {
	LogLevel   string `mapstructure:"log_level"`
	ListenAddr string `mapstructure:"listen_addr"`

	Chain     ChainConfig     `mapstructure:"chain"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	Resolver  ResolverConfig  `mapstructure:"resolver"`
	Database  DatabaseConfig  `mapstructure:"database"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ChainConfig represents chain access and verification configuration.
type ChainConfig struct {
	RPCAddr         string        `mapstructure:"rpc_addr"`
	ChainID         int64         `mapstructure:"chain_id"`
	Network         string        `mapstructure:"network"`
	TreasuryAddress string        `mapstructure:"treasury_address"`
	VerifyPolicy    string        `mapstructure:"verify_policy"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	PollBudget      time.Duration `mapstructure:"poll_budget"`
}

// PaymentConfig represents job lifecycle and pricing configuration.
type PaymentConfig struct {
	JobTimeout    time.Duration     `mapstructure:"job_timeout"`
	SweepInterval time.Duration     `mapstructure:"sweep_interval"`
	MaxTxAge      time.Duration     `mapstructure:"max_tx_age"`
	Pricing       map[string]string `mapstructure:"pricing"`
}

// ResolverConfig represents upstream market data configuration.
type ResolverConfig struct {
	MarketBaseURL  string        `mapstructure:"market_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// DatabaseConfig represents the optional receipt archive database.
type DatabaseConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	DBName   string `mapstructure:"dbName"`
	SSLMode  string `mapstructure:"sslMode"`

	// Connection pool settings.
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RateLimitConfig represents per-wallet request limiting.
type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

// LoadConfig loads configuration from file and environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("log_level", "info")
	v.SetDefault("listen_addr", ":8990")
	v.SetDefault("chain.rpc_addr", "https://testnet-rpc.monad.xyz")
	v.SetDefault("chain.chain_id", 10143)
	v.SetDefault("chain.network", "monad-testnet")
	v.SetDefault("chain.verify_policy", "optimistic")
	v.SetDefault("chain.poll_interval", "2s")
	v.SetDefault("chain.poll_budget", "15s")
	v.SetDefault("payment.job_timeout", "300s")
	v.SetDefault("payment.sweep_interval", "60s")
	v.SetDefault("payment.max_tx_age", "300s")
	v.SetDefault("payment.pricing", defaultPricing())
	v.SetDefault("resolver.market_base_url", "https://api.elections.kalshi.com/trade-api/v2")
	v.SetDefault("resolver.request_timeout", "10s")
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", "1h")

	// Set config file.
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/x402-gate")
	}

	// Enable environment variables.
	v.SetEnvPrefix("X402")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file.
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration.
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// defaultPricing is the static content-type price table, in wei.
func defaultPricing() map[string]string {
	return map[string]string{
		"market_data":    "1000000000000000",
		"chart":          "2000000000000000",
		"sentiment":      "3000000000000000",
		"orderbook":      "1500000000000000",
		"calculator":     "1000000000000000",
		"activity":       "1500000000000000",
		"social_post":    "5000000000000000",
		"social_view":    "2000000000000000",
		"social_comment": "1000000000000000",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Chain.ChainID <= 0 {
		return fmt.Errorf("chain.chain_id must be positive")
	}

	if c.Chain.RPCAddr == "" {
		return fmt.Errorf("chain.rpc_addr is required")
	}

	if !common.IsHexAddress(c.Chain.TreasuryAddress) {
		return fmt.Errorf("chain.treasury_address %q is not a valid address", c.Chain.TreasuryAddress)
	}

	if c.Chain.VerifyPolicy != "strict" && c.Chain.VerifyPolicy != "optimistic" {
		return fmt.Errorf("chain.verify_policy must be strict or optimistic, got %q", c.Chain.VerifyPolicy)
	}

	if c.Payment.JobTimeout <= 0 {
		return fmt.Errorf("payment.job_timeout must be positive")
	}

	if c.Payment.SweepInterval <= 0 {
		return fmt.Errorf("payment.sweep_interval must be positive")
	}

	if _, err := c.PriceTable(); err != nil {
		return err
	}

	return nil
}

// PriceTable converts the configured pricing map to domain form.
func (c *Config) PriceTable() (entities.PriceTable, error) {
	table := make(entities.PriceTable, len(c.Payment.Pricing))
	for contentType, raw := range c.Payment.Pricing {
		price, ok := new(big.Int).SetString(raw, 10)
		if !ok || price.Sign() <= 0 {
			return nil, fmt.Errorf("payment.pricing.%s: %q is not a positive integer", contentType, raw)
		}
		table[entities.ContentType(contentType)] = price
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("payment.pricing must not be empty")
	}
	return table, nil
}

// GetDatabaseDSN returns the database connection string.
func (c *DatabaseConfig) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
