package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

const minimalIndexerConfig = `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
registry:
  rpc_url: "http://localhost:8545"
  contract_address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
webhook:
  signing_key: "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError string
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: 5
  allowed_origins: ["https://app.feralfile.com"]
auth:
  jwt_public_key: "pem"
  api_keys: ["key-1", "key-2"]
database:
  host: localhost
  port: 5433
  read_host: replica
  user: testuser
  password: testpass
  dbname: testdb
  conn_max_lifetime: "1h"
registry:
  chain_id: "eip155:11155111"
  rpc_url: "http://localhost:8545"
  contract_address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
  start_block: 1000
  max_blocks_per_pass: 5000
chains:
  - chain_id: "eip155:1"
    rpc_url: "http://mainnet:8545"
  - chain_id: "eip155:137"
    rpc_url: "http://polygon:8545"
tezos:
  api_url: "https://api.ghostnet.tzkt.io"
  chain_id: "tezos:ghostnet"
sync:
  verify_concurrency: 16
  min_interval: "30s"
webhook:
  signing_key: "abc"
  worker_pool_size: 2
relay:
  private_key: "def"
  gas_limit: 300000
nats:
  enabled: true
  url: "nats://localhost:4222"
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5, cfg.Server.ReadTimeout)
				assert.Equal(t, 30, cfg.Server.WriteTimeout)
				assert.Equal(t, []string{"https://app.feralfile.com"}, cfg.Server.AllowedOrigins)
				assert.Equal(t, []string{"key-1", "key-2"}, cfg.Auth.APIKeys)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.True(t, cfg.Database.HasReadReplica())
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, domain.Chain("eip155:11155111"), cfg.Registry.ChainID)
				assert.Equal(t, uint64(1000), cfg.Registry.StartBlock)
				assert.Equal(t, uint64(5000), cfg.Registry.MaxBlocksPerPass)
				assert.Equal(t, common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), cfg.Registry.RegistryContract())
				require.Len(t, cfg.Chains, 2)
				assert.Equal(t, domain.Chain("eip155:137"), cfg.Chains[1].ChainID)
				assert.Equal(t, "http://polygon:8545", cfg.Chains[1].RPCURL)
				assert.Equal(t, domain.ChainTezosGhostnet, cfg.Tezos.ChainID)
				assert.Equal(t, 16, cfg.Sync.VerifyConcurrency)
				assert.Equal(t, 30*time.Second, cfg.Sync.MinInterval)
				assert.Equal(t, 2, cfg.Webhook.WorkerPoolSize)
				assert.True(t, cfg.Relay.Enabled())
				assert.Equal(t, uint64(300000), cfg.Relay.GasLimit)
				assert.True(t, cfg.NATS.Enabled)
				assert.Equal(t, "PLACEMENTS", cfg.NATS.StreamName)
			},
		},
		{
			name:       "config with defaults",
			configFile: minimalIndexerConfig,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.False(t, cfg.Database.HasReadReplica())
				assert.Equal(t, domain.ChainEthereumMainnet, cfg.Registry.ChainID)
				assert.Equal(t, 12*time.Second, cfg.Registry.BlockHeadTTL)
				assert.Equal(t, uint64(10000), cfg.Registry.MaxBlockRange)
				assert.Equal(t, "https://api.tzkt.io", cfg.Tezos.APIURL)
				assert.Equal(t, domain.ChainTezosMainnet, cfg.Tezos.ChainID)
				assert.Equal(t, 8, cfg.Sync.VerifyConcurrency)
				assert.Equal(t, time.Minute, cfg.Sync.MinInterval)
				assert.Equal(t, 20*time.Second, cfg.Sync.VerifyTimeout)
				assert.Equal(t, time.Minute, cfg.Sync.DispatchTimeout)
				assert.Equal(t, 10*time.Second, cfg.Webhook.RequestTimeout)
				assert.Equal(t, 4, cfg.Webhook.WorkerPoolSize)
				assert.False(t, cfg.Relay.Enabled())
				assert.False(t, cfg.NATS.Enabled)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Empty(t, cfg.Chains)
			},
		},
		{
			name:        "missing database host",
			configFile:  strings.Replace(minimalIndexerConfig, "host: localhost", "host: \"\"", 1),
			expectError: "database.host is required",
		},
		{
			name:        "invalid registry address",
			configFile:  strings.Replace(minimalIndexerConfig, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0x1234", 1),
			expectError: "registry.contract_address",
		},
		{
			name:        "missing signing key",
			configFile:  strings.Replace(minimalIndexerConfig, "signing_key:", "unused:", 1),
			expectError: "webhook.signing_key is required",
		},
		{
			name: "chain without rpc url",
			configFile: minimalIndexerConfig + `
chains:
  - chain_id: "eip155:137"
`,
			expectError: "rpc_url of eip155:137 is required",
		},
		{
			name: "non evm chain",
			configFile: minimalIndexerConfig + `
chains:
  - chain_id: "tezos:mainnet"
    rpc_url: "http://localhost"
`,
			expectError: "not an EVM chain",
		},
		{
			name: "nats enabled without url",
			configFile: minimalIndexerConfig + `
nats:
  enabled: true
`,
			expectError: "nats.url is required",
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: "failed to read config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadAPIConfig(writeConfig(t, tt.configFile), t.TempDir())

			if tt.expectError != "" {
				assert.ErrorContains(t, err, tt.expectError)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSyncConfig(t *testing.T) {
	content := strings.Replace(minimalIndexerConfig, "registry:\n", "registry:\n  chain_id: \"eip155:11155111\"\n", 1)
	cfg, err := LoadSyncConfig(writeConfig(t, content+`
sync:
  cursor_name: "sepolia_registry"
`), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sepolia_registry", cfg.Sync.CursorName)
	assert.Equal(t, domain.ChainEthereumSepolia, cfg.Registry.ChainID)
	assert.Equal(t, 8, cfg.Sync.VerifyConcurrency)
	assert.Equal(t, "testdb", cfg.Database.DBName)

	_, err = LoadSyncConfig(writeConfig(t, `
database:
  host: localhost
  dbname: testdb
registry:
  chain_id: "tezos:mainnet"
  rpc_url: "http://localhost:8545"
  contract_address: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
webhook:
  signing_key: "abc"
`), t.TempDir())
	assert.ErrorContains(t, err, "registry.chain_id")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	config := DatabaseConfig{
		Host:     "primary",
		Port:     5432,
		ReadHost: "replica",
		User:     "user",
		Password: "p@ssw0rd!",
		DBName:   "placements",
		SSLMode:  "require",
	}

	assert.Equal(t, "host=primary port=5432 user=user password=p@ssw0rd! dbname=placements sslmode=require", config.DSN())
	assert.Equal(t, "host=replica port=5432 user=user password=p@ssw0rd! dbname=placements sslmode=require", config.ReadDSN())

	config.ReadPort = 6432
	assert.Equal(t, "host=replica port=6432 user=user password=p@ssw0rd! dbname=placements sslmode=require", config.ReadDSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	envDir := t.TempDir()

	// godotenv.Overload sets process variables, t.Setenv restores them after the test
	envVars := map[string]string{
		"FF_PLACEMENT_DEBUG":                     "true",
		"FF_PLACEMENT_DATABASE_HOST":             "env-host",
		"FF_PLACEMENT_DATABASE_PORT":             "6543",
		"FF_PLACEMENT_REGISTRY_START_BLOCK":      "42",
		"FF_PLACEMENT_RELAY_PRIVATE_KEY":         "env-relay-key",
		"FF_PLACEMENT_AUTH_API_KEYS":             "a,b",
		"FF_PLACEMENT_SYNC_MIN_INTERVAL":         "5s",
		"FF_PLACEMENT_WEBHOOK_WORKER_POOL_SIZE":  "9",
		"FF_PLACEMENT_NATS_DUPLICATE_WINDOW":     "1h",
		"FF_PLACEMENT_REGISTRY_MAX_BLOCK_RANGE":  "500",
		"FF_PLACEMENT_TEZOS_API_URL":             "https://api.ghostnet.tzkt.io",
		"FF_PLACEMENT_TEZOS_CHAIN_ID":            "tezos:ghostnet",
		"FF_PLACEMENT_REGISTRY_CONTRACT_ADDRESS": "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	}

	var content strings.Builder
	for key, value := range envVars {
		t.Setenv(key, "")
		content.WriteString(key + "=" + value + "\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(content.String()), 0600))

	// Per-service local file overrides the shared file
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env.api.local"), []byte("FF_PLACEMENT_DATABASE_PORT=7654\n"), 0600))

	cfg, err := LoadAPIConfig(writeConfig(t, "debug: false\n"+minimalIndexerConfig), envDir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 7654, cfg.Database.Port)
	assert.Equal(t, "testdb", cfg.Database.DBName)
	assert.Equal(t, uint64(42), cfg.Registry.StartBlock)
	assert.Equal(t, uint64(500), cfg.Registry.MaxBlockRange)
	assert.Equal(t, common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"), cfg.Registry.RegistryContract())
	assert.Equal(t, "env-relay-key", cfg.Relay.PrivateKey)
	assert.Equal(t, []string{"a", "b"}, cfg.Auth.APIKeys)
	assert.Equal(t, 5*time.Second, cfg.Sync.MinInterval)
	assert.Equal(t, 9, cfg.Webhook.WorkerPoolSize)
	assert.Equal(t, time.Hour, cfg.NATS.DuplicateWindow)
	assert.Equal(t, domain.ChainTezosGhostnet, cfg.Tezos.ChainID)
}
