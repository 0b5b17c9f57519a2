package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	// Network configuration
	Net  string
	Port string // Engagement service port

	// Database configuration
	Database DatabaseConfig

	// Blockchain configuration
	Chain ChainConfig

	// Registry sync configuration
	Registry RegistryConfig

	// Redis configuration
	Redis RedisConfig

	// Swagger API base URL (e.g., "example.com:7380")
	SwaggerBaseUrl string
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Type         string // Database type: mysql, pebble
	Dsn          string // MySQL DSN
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
	DataDir      string // PebbleDB data directory
}

// ChainConfig Sui fullnode configuration
type ChainConfig struct {
	RpcUrl    string // Fullnode JSON-RPC URL
	PackageId string // Published package object ID
	Module    string // Move module name holding the registry views
	Sender    string // Sender address used for devInspect read calls
}

// RegistryConfig on-chain registry sync configuration
type RegistryConfig struct {
	Enabled         bool   // Enable background registry sync
	CreatorRegistry string // Creator registry shared object ID
	ContentRegistry string // Content registry shared object ID
	SyncInterval    int    // Sync interval in seconds
	ResolveBatch    int    // Object IDs per multiGetObjects call
}

// RedisConfig redis configuration
type RedisConfig struct {
	Enabled  bool   // Enable Redis cache
	Host     string // Redis host
	Port     int    // Redis port
	Password string // Redis password (optional)
	DB       int    // Redis database number
	CacheTTL int    // Cache TTL in seconds (default: 300)
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("Fatal error config file: %s", err)
	}

	// Create configuration instance
	Cfg = &Config{
		Net:            viper.GetString("net"),
		Port:           viper.GetString("port"),
		SwaggerBaseUrl: viper.GetString("swagger_base_url"),

		Database: DatabaseConfig{
			Type:         viper.GetString("database.type"),
			Dsn:          viper.GetString("database.dsn"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			DataDir:      viper.GetString("database.data_dir"),
		},

		Chain: ChainConfig{
			RpcUrl:    viper.GetString("chain.rpc_url"),
			PackageId: viper.GetString("chain.package_id"),
			Module:    viper.GetString("chain.module"),
			Sender:    viper.GetString("chain.sender"),
		},

		Registry: RegistryConfig{
			Enabled:         viper.GetBool("registry.enabled"),
			CreatorRegistry: viper.GetString("registry.creator_registry"),
			ContentRegistry: viper.GetString("registry.content_registry"),
			SyncInterval:    viper.GetInt("registry.sync_interval"),
			ResolveBatch:    viper.GetInt("registry.resolve_batch"),
		},

		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			CacheTTL: viper.GetInt("redis.cache_ttl"),
		},
	}

	// Set default values
	if Cfg.Port == "" {
		Cfg.Port = "7380"
	}
	if Cfg.Database.Type == "" {
		Cfg.Database.Type = "mysql"
	}
	if Cfg.Database.DataDir == "" {
		Cfg.Database.DataDir = "./data/engagement"
	}
	if Cfg.Database.MaxOpenConns == 0 {
		Cfg.Database.MaxOpenConns = 100
	}
	if Cfg.Database.MaxIdleConns == 0 {
		Cfg.Database.MaxIdleConns = 10
	}
	if Cfg.Chain.Module == "" {
		Cfg.Chain.Module = "contenteconomy"
	}
	if Cfg.Registry.SyncInterval == 0 {
		Cfg.Registry.SyncInterval = 60
	}
	if Cfg.Registry.ResolveBatch == 0 {
		Cfg.Registry.ResolveBatch = 50
	}
	if Cfg.Redis.CacheTTL == 0 {
		Cfg.Redis.CacheTTL = 300
	}
	if Cfg.SwaggerBaseUrl == "" {
		Cfg.SwaggerBaseUrl = "localhost:" + Cfg.Port
	}

	return nil
}
