package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

var (
	testPublisher = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testContract  = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// buildTestRecord creates a verified ERC721 placement record emitted at (blockNumber, logIndex)
func buildTestRecord(tokenID string, blockNumber uint64, logIndex uint, published bool) domain.ValidatedPlacementRecord {
	asset := domain.ERC721Asset{
		ChainID:         1,
		ContractAddress: testContract,
		TokenID:         tokenID,
	}
	placedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(blockNumber) * time.Second)

	return domain.ValidatedPlacementRecord{
		PlacementRecord: domain.PlacementRecord{
			AssetID: crypto.Keccak256Hash([]byte("asset:" + tokenID)),
			Asset:   asset,
			Encoded: domain.EncodedAssetIdentity{
				AssetType:    crypto.Keccak256Hash([]byte(domain.AssetKindERC721)),
				CollectionID: common.LeftPadBytes([]byte{1}, 32),
				ItemID:       common.LeftPadBytes([]byte(tokenID), 32),
			},
			Publisher: testPublisher,
			Published: published,
			Location: domain.Location{
				GeohashBits:  0xFFFFFFFFFFFFFFF,
				BitPrecision: 60,
			},
			PlacedAt:      placedAt,
			BlockNumber:   blockNumber,
			BlockHash:     crypto.Keccak256Hash([]byte(fmt.Sprintf("block:%d", blockNumber))),
			BlockLogIndex: logIndex,
			TxHash:        crypto.Keccak256Hash([]byte(fmt.Sprintf("tx:%d:%d", blockNumber, logIndex))),
		},
		PlacedByOwner: true,
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func stringPtr(s string) *string {
	return &s
}

// =============================================================================
// Test: Sync cursor and batch upsert
// =============================================================================

func testSyncCursor(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing cursor reads as zero", func(t *testing.T) {
		block, err := store.GetSyncCursor(ctx, "never-synced")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block)
	})

	t.Run("cursor advances without records", func(t *testing.T) {
		err := store.SaveSyncBatch(ctx, SaveSyncBatchInput{CursorName: "registry-empty", BlockNumber: 150})
		require.NoError(t, err)

		block, err := store.GetSyncCursor(ctx, "registry-empty")
		require.NoError(t, err)
		assert.Equal(t, uint64(150), block)
	})

	t.Run("cursor never moves backwards", func(t *testing.T) {
		require.NoError(t, store.SaveSyncBatch(ctx, SaveSyncBatchInput{CursorName: "registry-monotonic", BlockNumber: 200}))
		require.NoError(t, store.SaveSyncBatch(ctx, SaveSyncBatchInput{CursorName: "registry-monotonic", BlockNumber: 120}))

		block, err := store.GetSyncCursor(ctx, "registry-monotonic")
		require.NoError(t, err)
		assert.Equal(t, uint64(200), block)
	})

	t.Run("empty cursor name is rejected", func(t *testing.T) {
		err := store.SaveSyncBatch(ctx, SaveSyncBatchInput{BlockNumber: 1})
		assert.Error(t, err)
	})
}

func testSaveSyncBatch(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("stores records and restores them", func(t *testing.T) {
		record := buildTestRecord("7", 101, 3, true)
		record.SceneURI = stringPtr("ipfs://scene")
		parent := crypto.Keccak256Hash([]byte("parent"))
		record.ParentAssetID = &parent

		err := store.SaveSyncBatch(ctx, SaveSyncBatchInput{
			CursorName:  "registry",
			BlockNumber: 110,
			Records:     []domain.ValidatedPlacementRecord{record},
		})
		require.NoError(t, err)

		placement, err := store.GetLatestPlacementByAssetID(ctx, record.AssetID.Hex())
		require.NoError(t, err)
		require.NotNil(t, placement)
		assert.Equal(t, string(domain.AssetKindERC721), placement.AssetKind)
		assert.Equal(t, testPublisher.Hex(), placement.Publisher)
		assert.Equal(t, "1152921504606846975", placement.GeohashBits)
		assert.Equal(t, int16(60), placement.BitPrecision)
		assert.Equal(t, parent.Hex(), *placement.ParentAssetID)
		assert.Equal(t, "ipfs://scene", *placement.SceneURI)
		assert.Equal(t, uint64(101), placement.BlockNumber)
		assert.Equal(t, uint64(3), placement.BlockLogIndex)
		assert.True(t, placement.PlacedByOwner)
		assert.True(t, record.PlacedAt.Equal(placement.PlacedAt))

		block, err := store.GetSyncCursor(ctx, "registry")
		require.NoError(t, err)
		assert.Equal(t, uint64(110), block)
	})

	t.Run("replaying the same events is idempotent", func(t *testing.T) {
		records := []domain.ValidatedPlacementRecord{
			buildTestRecord("20", 300, 0, true),
			buildTestRecord("21", 300, 1, true),
		}

		for i := 0; i < 2; i++ {
			err := store.SaveSyncBatch(ctx, SaveSyncBatchInput{CursorName: "replay", BlockNumber: 300, Records: records})
			require.NoError(t, err)
		}

		placements, total, err := store.GetPlacements(ctx, PlacementQueryFilter{
			AssetIDs: []string{records[0].AssetID.Hex(), records[1].AssetID.Hex()},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		assert.Len(t, placements, 2)
	})

	t.Run("replay overwrites the verification result", func(t *testing.T) {
		record := buildTestRecord("30", 400, 0, true)
		record.PlacedByOwner = false
		require.NoError(t, store.SaveSyncBatch(ctx, SaveSyncBatchInput{CursorName: "reverify", BlockNumber: 400, Records: []domain.ValidatedPlacementRecord{record}}))

		record.PlacedByOwner = true
		require.NoError(t, store.SaveSyncBatch(ctx, SaveSyncBatchInput{CursorName: "reverify", BlockNumber: 400, Records: []domain.ValidatedPlacementRecord{record}}))

		placement, err := store.GetLatestPlacementByAssetID(ctx, record.AssetID.Hex())
		require.NoError(t, err)
		require.NotNil(t, placement)
		assert.True(t, placement.PlacedByOwner)
	})

	t.Run("record without identity rolls back the batch", func(t *testing.T) {
		good := buildTestRecord("40", 500, 0, true)
		bad := buildTestRecord("41", 500, 1, true)
		bad.Asset = nil

		err := store.SaveSyncBatch(ctx, SaveSyncBatchInput{
			CursorName:  "rollback",
			BlockNumber: 500,
			Records:     []domain.ValidatedPlacementRecord{good, bad},
		})
		require.Error(t, err)

		block, err := store.GetSyncCursor(ctx, "rollback")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block)

		placement, err := store.GetLatestPlacementByAssetID(ctx, good.AssetID.Hex())
		require.NoError(t, err)
		assert.Nil(t, placement)
	})
}

// =============================================================================
// Test: Placement queries
// =============================================================================

func testGetLatestPlacementByAssetID(t *testing.T, store Store) {
	ctx := context.Background()

	first := buildTestRecord("50", 600, 5, true)
	second := buildTestRecord("50", 601, 0, false)
	sameBlockLater := buildTestRecord("50", 601, 2, true)
	require.NoError(t, store.SaveSyncBatch(ctx, SaveSyncBatchInput{
		CursorName:  "latest",
		BlockNumber: 601,
		Records:     []domain.ValidatedPlacementRecord{sameBlockLater, first, second},
	}))

	placement, err := store.GetLatestPlacementByAssetID(ctx, first.AssetID.Hex())
	require.NoError(t, err)
	require.NotNil(t, placement)
	assert.Equal(t, uint64(601), placement.BlockNumber)
	assert.Equal(t, uint64(2), placement.BlockLogIndex)

	placement, err = store.GetLatestPlacementByAssetID(ctx, "0xdoesnotexist")
	require.NoError(t, err)
	assert.Nil(t, placement)
}

func testGetPlacements(t *testing.T, store Store) {
	ctx := context.Background()

	placedThenRetracted := buildTestRecord("60", 700, 0, true)
	retraction := buildTestRecord("60", 701, 0, false)
	stillPlaced := buildTestRecord("61", 700, 1, true)
	unverified := buildTestRecord("62", 702, 0, true)
	unverified.PlacedByOwner = false
	otherPublisher := buildTestRecord("63", 703, 0, true)
	otherPublisher.Publisher = common.HexToAddress("0x3333333333333333333333333333333333333333")
	otherPublisher.Asset = domain.ERC721Asset{
		ChainID:         137,
		ContractAddress: testContract,
		TokenID:         "63",
	}

	require.NoError(t, store.SaveSyncBatch(ctx, SaveSyncBatchInput{
		CursorName:  "query",
		BlockNumber: 703,
		Records: []domain.ValidatedPlacementRecord{
			placedThenRetracted, stillPlaced, retraction, unverified, otherPublisher,
		},
	}))

	t.Run("all events newest first", func(t *testing.T) {
		placements, total, err := store.GetPlacements(ctx, PlacementQueryFilter{})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		require.Len(t, placements, 5)
		assert.Equal(t, uint64(703), placements[0].BlockNumber)
		assert.Equal(t, uint64(700), placements[4].BlockNumber)
		assert.Equal(t, uint64(0), placements[4].BlockLogIndex)
	})

	t.Run("current hides retracted assets", func(t *testing.T) {
		placements, total, err := store.GetPlacements(ctx, PlacementQueryFilter{Current: true})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		for _, p := range placements {
			assert.NotEqual(t, placedThenRetracted.AssetID.Hex(), p.AssetID)
		}
	})

	t.Run("partial identity uses jsonb containment", func(t *testing.T) {
		placements, total, err := store.GetPlacements(ctx, PlacementQueryFilter{
			Identity: map[string]interface{}{"kind": "ERC721", "chain_id": 137},
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, placements, 1)
		assert.Equal(t, otherPublisher.AssetID.Hex(), placements[0].AssetID)
	})

	t.Run("publisher filter", func(t *testing.T) {
		_, total, err := store.GetPlacements(ctx, PlacementQueryFilter{Publisher: stringPtr(testPublisher.Hex())})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), total)
	})

	t.Run("placed by owner filter", func(t *testing.T) {
		placements, total, err := store.GetPlacements(ctx, PlacementQueryFilter{PlacedByOwner: boolPtr(false)})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, placements, 1)
		assert.Equal(t, unverified.AssetID.Hex(), placements[0].AssetID)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		placements, total, err := store.GetPlacements(ctx, PlacementQueryFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, uint64(5), total)
		require.Len(t, placements, 2)
		assert.Equal(t, uint64(702), placements[0].BlockNumber)
		assert.Equal(t, uint64(701), placements[1].BlockNumber)
	})
}

// =============================================================================
// Test: Webhooks
// =============================================================================

func testWebhookClients(t *testing.T, store Store) {
	ctx := context.Background()

	clients, err := store.GetActiveWebhookClients(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		assert.True(t, c.IsActive)
		ids = append(ids, c.ClientID)
	}
	assert.Contains(t, ids, "client-active-123")
	assert.Contains(t, ids, "client-second-456")
	assert.NotContains(t, ids, "client-inactive-789")
}

func testWebhookDeliveries(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("CreateWebhookDelivery", func(t *testing.T) {
		payload := []byte(`{"event_id":"01JNE0TEST0000000000000001","records":[]}`)
		delivery, err := store.CreateWebhookDelivery(ctx, CreateWebhookDeliveryInput{
			ClientID:    "client-active-123",
			EventID:     "01JNE0TEST0000000000000001",
			Payload:     payload,
			RecordCount: 0,
		})
		require.NoError(t, err)
		assert.NotZero(t, delivery.ID)
		assert.Equal(t, schema.WebhookDeliveryStatusPending, delivery.DeliveryStatus)
		assert.JSONEq(t, string(payload), string(delivery.Payload))
	})

	t.Run("UpdateWebhookDeliveryStatus", func(t *testing.T) {
		delivery, err := store.CreateWebhookDelivery(ctx, CreateWebhookDeliveryInput{
			ClientID:    "client-second-456",
			EventID:     "01JNE0TEST0000000000000002",
			Payload:     []byte(`{"records":[{}]}`),
			RecordCount: 1,
		})
		require.NoError(t, err)

		statusCode := 200
		err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusSuccess, &statusCode, "ok", "")
		assert.NoError(t, err)

		statusCode = 500
		err = store.UpdateWebhookDeliveryStatus(ctx, delivery.ID, schema.WebhookDeliveryStatusFailed, &statusCode, "", strings.Repeat("x", 2048))
		assert.NoError(t, err)
	})

	t.Run("CreateWebhookDelivery - unknown client", func(t *testing.T) {
		_, err := store.CreateWebhookDelivery(ctx, CreateWebhookDeliveryInput{
			ClientID: "non-existent-client",
			EventID:  "01JNE0TEST0000000000000003",
			Payload:  []byte(`{}`),
		})
		assert.Error(t, err, "Should reject unknown client_id due to foreign key constraint")
	})
}

// =============================================================================
// Test: Relay nonces and account links
// =============================================================================

func testRelayNonce(t *testing.T, store Store) {
	ctx := context.Background()
	relayer := "0x4444444444444444444444444444444444444444"

	t.Run("first nonce is zero and increments", func(t *testing.T) {
		for want := uint64(0); want < 3; want++ {
			nonce, err := store.NextRelayNonce(ctx, relayer)
			require.NoError(t, err)
			assert.Equal(t, want, nonce)
		}
	})

	t.Run("resync stores the last used nonce", func(t *testing.T) {
		require.NoError(t, store.SetRelayNonce(ctx, relayer, 41))

		nonce, err := store.NextRelayNonce(ctx, relayer)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), nonce)
	})

	t.Run("resync to an unused account restarts at zero", func(t *testing.T) {
		require.NoError(t, store.SetRelayNonce(ctx, relayer, -1))

		nonce, err := store.NextRelayNonce(ctx, relayer)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), nonce)
	})
}

func testAccountLink(t *testing.T, store Store) {
	ctx := context.Background()

	link, err := store.GetAccountLink(ctx, "0x1111111111111111111111111111111111111111", domain.ChainTezosMainnet)
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", link.ForeignAccount)

	link, err = store.GetAccountLink(ctx, "0x1111111111111111111111111111111111111111", domain.ChainTezosGhostnet)
	require.NoError(t, err)
	assert.Nil(t, link)
}

// =============================================================================
// Test Runner - runs all tests against a given store implementation
// =============================================================================

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"SyncCursor", testSyncCursor},
		{"SaveSyncBatch", testSaveSyncBatch},
		{"GetLatestPlacementByAssetID", testGetLatestPlacementByAssetID},
		{"GetPlacements", testGetPlacements},
		{"WebhookClients", testWebhookClients},
		{"WebhookDeliveries", testWebhookDeliveries},
		{"RelayNonce", testRelayNonce},
		{"AccountLink", testAccountLink},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
