package indexer_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/config"
	"github.com/feral-file/ff-placement-indexer/internal/indexer"
	"github.com/feral-file/ff-placement-indexer/internal/mocks"
)

type testSetup struct {
	ctrl   *gomock.Controller
	dialer *mocks.MockEthClientDialer
	natsJS *mocks.MockNatsJetStream
	clock  *mocks.MockClock
	store  *mocks.MockStore
}

func setup(t *testing.T) *testSetup {
	ctrl := gomock.NewController(t)
	return &testSetup{
		ctrl:   ctrl,
		dialer: mocks.NewMockEthClientDialer(ctrl),
		natsJS: mocks.NewMockNatsJetStream(ctrl),
		clock:  mocks.NewMockClock(ctrl),
		store:  mocks.NewMockStore(ctrl),
	}
}

func (s *testSetup) adapters() indexer.Adapters {
	return indexer.Adapters{Dialer: s.dialer, NatsJS: s.natsJS, Clock: s.clock}
}

// expectClient dials url and answers chainID, the client must be closed exactly once
func (s *testSetup) expectClient(url string, chainID int64) *mocks.MockEthClient {
	client := mocks.NewMockEthClient(s.ctrl)
	s.dialer.EXPECT().Dial(gomock.Any(), url).Return(client, nil)
	client.EXPECT().ChainID(gomock.Any()).Return(big.NewInt(chainID), nil)
	client.EXPECT().Close().Times(1)
	return client
}

func indexerConfig() config.IndexerConfig {
	return config.IndexerConfig{
		Registry: config.RegistryConfig{
			ChainID:         "eip155:11155111",
			RPCURL:          "http://sepolia",
			ContractAddress: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		Chains: []config.ChainConfig{
			{ChainID: "eip155:1", RPCURL: "http://mainnet"},
		},
		Tezos: config.TezosConfig{
			APIURL:  "https://api.tzkt.io",
			ChainID: "tezos:mainnet",
		},
		Webhook: config.WebhookConfig{
			SigningKey: "0x4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
		},
	}
}

func TestNew(t *testing.T) {
	s := setup(t)
	s.expectClient("http://sepolia", 11155111)
	s.expectClient("http://mainnet", 1)

	idx, err := indexer.New(context.Background(), indexerConfig(), 0, s.store, s.adapters())
	require.NoError(t, err)
	require.NotNil(t, idx.Engine)
	require.NotNil(t, idx.Ledger)

	idx.Close()
	// Closing twice is a no-op
	idx.Close()
}

func TestNew_WrongChain(t *testing.T) {
	s := setup(t)
	s.expectClient("http://sepolia", 11155111)
	s.expectClient("http://mainnet", 137)

	_, err := indexer.New(context.Background(), indexerConfig(), 0, s.store, s.adapters())
	assert.ErrorContains(t, err, "rpc endpoint of eip155:1 serves chain id 137")
}

func TestNew_DialFailure(t *testing.T) {
	s := setup(t)
	s.dialer.EXPECT().Dial(gomock.Any(), "http://sepolia").Return(nil, errors.New("connection refused"))

	_, err := indexer.New(context.Background(), indexerConfig(), 0, s.store, s.adapters())
	assert.ErrorContains(t, err, "failed to dial eip155:11155111")
}

func TestNew_ChainIDFailure(t *testing.T) {
	s := setup(t)
	client := mocks.NewMockEthClient(s.ctrl)
	s.dialer.EXPECT().Dial(gomock.Any(), "http://sepolia").Return(client, nil)
	client.EXPECT().ChainID(gomock.Any()).Return(nil, errors.New("timeout"))
	client.EXPECT().Close()

	_, err := indexer.New(context.Background(), indexerConfig(), 0, s.store, s.adapters())
	assert.ErrorContains(t, err, "failed to get chain id")
}

func TestNew_InvalidSigningKey(t *testing.T) {
	s := setup(t)
	s.expectClient("http://sepolia", 11155111)
	s.expectClient("http://mainnet", 1)

	cfg := indexerConfig()
	cfg.Webhook.SigningKey = "not-a-key"

	_, err := indexer.New(context.Background(), cfg, 0, s.store, s.adapters())
	assert.ErrorContains(t, err, "failed to parse webhook signing key")
}

func TestNew_NATSFailure(t *testing.T) {
	s := setup(t)
	s.expectClient("http://sepolia", 11155111)
	s.expectClient("http://mainnet", 1)
	s.natsJS.EXPECT().Connect("nats://localhost:4222", gomock.Any()).Return(nil, nil, errors.New("no servers available"))

	cfg := indexerConfig()
	cfg.NATS = config.NATSConfig{Enabled: true, URL: "nats://localhost:4222", StreamName: "PLACEMENTS"}

	_, err := indexer.New(context.Background(), cfg, 0, s.store, s.adapters())
	assert.ErrorContains(t, err, "no servers available")
}
