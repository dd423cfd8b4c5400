package store

import (
	"context"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
)

// SaveSyncBatchInput is everything one sync pass commits
type SaveSyncBatchInput struct {
	// CursorName identifies the registry the cursor belongs to
	CursorName string
	// BlockNumber is the new cursor value, the stored cursor never moves backwards
	BlockNumber uint64
	// Records are upserted by (block_hash, block_log_index)
	Records []domain.ValidatedPlacementRecord
}

// PlacementQueryFilter selects placements. Empty fields do not filter.
type PlacementQueryFilter struct {
	// Identity is a partial decoded asset identity matched with jsonb containment,
	// e.g. {"kind": "ERC721", "chain_id": 1}
	Identity map[string]interface{}
	// AssetIDs restricts to the given asset ids
	AssetIDs []string
	// Publisher restricts to one checksummed publisher address
	Publisher *string
	// ParentAssetID restricts to assets placed inside the given asset
	ParentAssetID *string
	// PlacedByOwner restricts to verified (true) or unverified (false) placements
	PlacedByOwner *bool
	// Current keeps only the latest record per asset id and drops it when it is a retraction
	Current bool
	Limit   int
	Offset  uint64
}

// CreateWebhookDeliveryInput is the audit row written before a webhook POST
type CreateWebhookDeliveryInput struct {
	ClientID    string
	EventID     string
	Payload     []byte
	RecordCount int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetSyncCursor retrieves the last processed block number, 0 when the registry was never synced
	GetSyncCursor(ctx context.Context, name string) (uint64, error)
	// SaveSyncBatch upserts the records and advances the cursor in one transaction
	SaveSyncBatch(ctx context.Context, input SaveSyncBatchInput) error

	// GetLatestPlacementByAssetID retrieves the latest placement of an asset, nil when none exists
	GetLatestPlacementByAssetID(ctx context.Context, assetID string) (*schema.Placement, error)
	// GetPlacements retrieves placements matching the filter, newest first, with the total count
	GetPlacements(ctx context.Context, filter PlacementQueryFilter) ([]schema.Placement, uint64, error)

	// GetActiveWebhookClients retrieves every active webhook client
	GetActiveWebhookClients(ctx context.Context) ([]*schema.WebhookClient, error)
	// CreateWebhookDelivery creates a pending delivery audit row
	CreateWebhookDelivery(ctx context.Context, input CreateWebhookDeliveryInput) (*schema.WebhookDelivery, error)
	// UpdateWebhookDeliveryStatus records the outcome of a delivery
	UpdateWebhookDeliveryStatus(ctx context.Context, deliveryID uint64, status schema.WebhookDeliveryStatus, responseStatus *int, responseBody, errorMessage string) error

	// NextRelayNonce atomically increments the relayer nonce and returns it, starting at 0
	NextRelayNonce(ctx context.Context, relayerAddress string) (uint64, error)
	// SetRelayNonce overwrites the last used relayer nonce
	SetRelayNonce(ctx context.Context, relayerAddress string, nonce int64) error

	// GetAccountLink retrieves the foreign account linked to an EVM address, nil when not linked
	GetAccountLink(ctx context.Context, evmAddress string, chain domain.Chain) (*schema.AccountLink, error)
}
