package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/metanet-market/marketd/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`

	// Network selects the ledger environment once at process start; the
	// original UI derived this implicitly from window.location.
	Network domain.Network `mapstructure:"network"`
}

// WalletConfig holds the ledger/wallet service configuration
type WalletConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds the content store configuration
type StorageConfig struct {
	UploadURL     string        `mapstructure:"upload_url"`
	Gateways      []string      `mapstructure:"gateways"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RetentionDays int           `mapstructure:"retention_days"`
}

// KeyServerConfig holds the decryption-capability service configuration
type KeyServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// OverlayConfig holds the lookup indexer configuration
type OverlayConfig struct {
	URL     string        `mapstructure:"url"`
	Service string        `mapstructure:"service"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NATSConfig holds NATS JetStream configuration for market events
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration for account routes
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// MarketConfig holds configuration for the marketd service binary
type MarketConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Server        ServerConfig    `mapstructure:"server"`
	Wallet        WalletConfig    `mapstructure:"wallet"`
	Storage       StorageConfig   `mapstructure:"storage"`
	KeyServer     KeyServerConfig `mapstructure:"keyserver"`
	Overlay       OverlayConfig   `mapstructure:"overlay"`
	NATS          NATSConfig      `mapstructure:"nats"`
	Auth          AuthConfig      `mapstructure:"auth"`
	BlacklistPath string          `mapstructure:"blacklist_path"`
}

// SweeperConfig holds configuration for the expiry-reclaim agent binary
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Wallet     WalletConfig    `mapstructure:"wallet"`
	KeyServer  KeyServerConfig `mapstructure:"keyserver"`
	Overlay    OverlayConfig   `mapstructure:"overlay"`
	NATS       NATSConfig      `mapstructure:"nats"`

	// Creator identifies whose listings the agent reclaims
	Creator  domain.PublicKeyID `mapstructure:"creator"`
	Interval time.Duration      `mapstructure:"interval"`
}

// LoadMarketConfig loads configuration for the marketd service
func LoadMarketConfig(configFile string, envPath string) (*MarketConfig, error) {
	v := configureViper("marketd", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg MarketConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateBase(cfg.BaseConfig); err != nil {
		return nil, err
	}
	if cfg.Wallet.URL == "" {
		return nil, errors.New("wallet.url is required")
	}
	if cfg.Overlay.URL == "" {
		return nil, errors.New("overlay.url is required")
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the expiry-reclaim agent
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("interval", "10m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateBase(cfg.BaseConfig); err != nil {
		return nil, err
	}
	if !cfg.Creator.Valid() {
		return nil, errors.New("creator must be a valid public key identifier")
	}

	return &cfg, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("network", string(domain.NetworkLocal))
	v.SetDefault("wallet.url", "http://localhost:3321")
	v.SetDefault("wallet.timeout", "30s")
	v.SetDefault("storage.timeout", "60s")
	v.SetDefault("storage.retention_days", 30)
	v.SetDefault("keyserver.url", "http://localhost:3000")
	v.SetDefault("keyserver.timeout", "30s")
	v.SetDefault("overlay.service", "ls_marketplace")
	v.SetDefault("overlay.timeout", "30s")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "MARKET_EVENTS")
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func validateBase(cfg BaseConfig) error {
	if !domain.IsValidNetwork(cfg.Network) {
		return fmt.Errorf("invalid network %q", cfg.Network)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MARKETD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"network",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Wallet
		"wallet.url",
		"wallet.timeout",
		// Storage
		"storage.upload_url",
		"storage.gateways",
		"storage.timeout",
		"storage.retention_days",
		// Key server
		"keyserver.url",
		"keyserver.timeout",
		// Overlay
		"overlay.url",
		"overlay.service",
		"overlay.timeout",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Misc
		"blacklist_path",
		"creator",
		"interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}
