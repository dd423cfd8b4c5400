package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// RegistryConfig locates the placement registry contract
type RegistryConfig struct {
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	RPCURL               string        `mapstructure:"rpc_url"`
	ContractAddress      string        `mapstructure:"contract_address"`
	StartBlock           uint64        `mapstructure:"start_block"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	MaxBlockRange        uint64        `mapstructure:"max_block_range"`     // per eth_getLogs call
	MaxBlocksPerPass     uint64        `mapstructure:"max_blocks_per_pass"` // per sync pass, 0 means up to head
}

// ChainConfig is the RPC endpoint of one EVM chain used for ownership checks
type ChainConfig struct {
	ChainID domain.Chain `mapstructure:"chain_id"`
	RPCURL  string       `mapstructure:"rpc_url"`
}

// TezosConfig holds the TzKT endpoint used for FA2 ownership checks
type TezosConfig struct {
	APIURL         string        `mapstructure:"api_url"`
	ChainID        domain.Chain  `mapstructure:"chain_id"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// EngineConfig holds sync pass configuration
type EngineConfig struct {
	CursorName        string        `mapstructure:"cursor_name"`
	VerifyConcurrency int           `mapstructure:"verify_concurrency"`
	MinInterval       time.Duration `mapstructure:"min_interval"`
	VerifyTimeout     time.Duration `mapstructure:"verify_timeout"`
	DispatchTimeout   time.Duration `mapstructure:"dispatch_timeout"`
}

// WebhookConfig holds webhook dispatcher configuration
type WebhookConfig struct {
	SigningKey     string        `mapstructure:"signing_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	WorkerPoolSize int           `mapstructure:"worker_pool_size"`
}

// RelayConfig holds meta transaction relay configuration
type RelayConfig struct {
	PrivateKey string `mapstructure:"private_key"`
	GasLimit   uint64 `mapstructure:"gas_limit"`
}

// Enabled reports whether a relayer key is configured
func (c RelayConfig) Enabled() bool {
	return c.PrivateKey != ""
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	URL             string        `mapstructure:"url"`
	StreamName      string        `mapstructure:"stream_name"`
	MaxReconnects   int           `mapstructure:"max_reconnects"`
	ReconnectWait   time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName  string        `mapstructure:"connection_name"`
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// IndexerConfig is shared by every program that runs sync passes
type IndexerConfig struct {
	Database DatabaseConfig `mapstructure:"database"`
	Registry RegistryConfig `mapstructure:"registry"`
	Chains   []ChainConfig  `mapstructure:"chains"`
	Tezos    TezosConfig    `mapstructure:"tezos"`
	Sync     EngineConfig   `mapstructure:"sync"`
	Webhook  WebhookConfig  `mapstructure:"webhook"`
	NATS     NATSConfig     `mapstructure:"nats"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig    `mapstructure:",squash"`
	IndexerConfig `mapstructure:",squash"`
	Server        ServerConfig `mapstructure:"server"`
	Auth          AuthConfig   `mapstructure:"auth"`
	Relay         RelayConfig  `mapstructure:"relay"`
}

// SyncConfig holds configuration for the one-shot sync program
type SyncConfig struct {
	BaseConfig    `mapstructure:",squash"`
	IndexerConfig `mapstructure:",squash"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	setIndexerDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("sync.min_interval", "1m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.IndexerConfig.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSyncConfig loads configuration for the sync program
func LoadSyncConfig(configFile string, envPath string) (*SyncConfig, error) {
	v := configureViper("sync", configFile, envPath)

	// Set defaults
	setIndexerDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config SyncConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.IndexerConfig.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setIndexerDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("registry.chain_id", string(domain.ChainEthereumMainnet))
	v.SetDefault("registry.block_head_ttl", "12s")
	v.SetDefault("registry.block_head_stale_window", "1m")
	v.SetDefault("registry.max_block_range", 10000)
	v.SetDefault("tezos.api_url", "https://api.tzkt.io")
	v.SetDefault("tezos.chain_id", string(domain.ChainTezosMainnet))
	v.SetDefault("tezos.request_timeout", "15s")
	v.SetDefault("sync.verify_concurrency", 8)
	v.SetDefault("sync.verify_timeout", "20s")
	v.SetDefault("sync.dispatch_timeout", "1m")
	v.SetDefault("webhook.request_timeout", "10s")
	v.SetDefault("webhook.worker_pool_size", 4)
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.stream_name", "PLACEMENTS")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "ff-placement-indexer")
	v.SetDefault("nats.duplicate_window", "10m")
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use environment variables
	}
	return nil
}

func (c *IndexerConfig) validate() error {
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Registry.RPCURL == "" {
		return errors.New("registry.rpc_url is required")
	}
	if !common.IsHexAddress(c.Registry.ContractAddress) {
		return fmt.Errorf("registry.contract_address is not a valid address: %q", c.Registry.ContractAddress)
	}
	if _, err := c.Registry.ChainID.EVMChainID(); err != nil {
		return fmt.Errorf("registry.chain_id: %w", err)
	}
	if c.Webhook.SigningKey == "" {
		return errors.New("webhook.signing_key is required")
	}
	for _, chain := range c.Chains {
		if _, err := chain.ChainID.EVMChainID(); err != nil {
			return fmt.Errorf("chains: %w", err)
		}
		if chain.RPCURL == "" {
			return fmt.Errorf("chains: rpc_url of %s is required", chain.ChainID)
		}
	}
	if c.Tezos.APIURL != "" && c.Tezos.ChainID.Blockchain() != domain.BlockchainTezos {
		return fmt.Errorf("tezos.chain_id is not a tezos network: %s", c.Tezos.ChainID)
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return errors.New("nats.url is required when nats is enabled")
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("FF_PLACEMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds every scalar key.
// Viper only maps environment variables onto keys it already knows about when no config file exists.
// The chains list can only be set from a config file.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Registry
		"registry.chain_id",
		"registry.rpc_url",
		"registry.contract_address",
		"registry.start_block",
		"registry.block_head_ttl",
		"registry.block_head_stale_window",
		"registry.max_block_range",
		"registry.max_blocks_per_pass",
		// Tezos
		"tezos.api_url",
		"tezos.chain_id",
		"tezos.request_timeout",
		// Sync
		"sync.cursor_name",
		"sync.verify_concurrency",
		"sync.min_interval",
		"sync.verify_timeout",
		"sync.dispatch_timeout",
		// Webhook
		"webhook.signing_key",
		"webhook.request_timeout",
		"webhook.worker_pool_size",
		// Relay
		"relay.private_key",
		"relay.gas_limit",
		// NATS
		"nats.enabled",
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.duplicate_window",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Shared base first, then local, then the optional per-service local file.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// HasReadReplica reports whether a read replica is configured
func (c *DatabaseConfig) HasReadReplica() bool {
	return c.ReadHost != ""
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RegistryContract returns the registry contract address
func (c *RegistryConfig) RegistryContract() common.Address {
	return common.HexToAddress(c.ContractAddress)
}
