package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/api/shared/constants"
	"github.com/feral-file/ff-placement-indexer/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-placement-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
	"github.com/feral-file/ff-placement-indexer/internal/relay"
	"github.com/feral-file/ff-placement-indexer/internal/store"
	"github.com/feral-file/ff-placement-indexer/internal/store/schema"
	"github.com/feral-file/ff-placement-indexer/internal/sync"
	"github.com/feral-file/ff-placement-indexer/internal/types"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetPlacement retrieves the latest placement of an asset with its resolved location
	GetPlacement(ctx context.Context, assetID string) (*dto.PlacementResponse, error)

	// GetPlacements retrieves placements matching a query
	GetPlacements(ctx context.Context, query dto.PlacementQuery) (*dto.PlacementListResponse, error)

	// TriggerSync runs one rate limited sync pass
	TriggerSync(ctx context.Context) (*dto.SyncResponse, error)

	// ExecuteMetaTransaction relays a user-signed meta transaction
	ExecuteMetaTransaction(ctx context.Context, mtx domain.MetaTransaction) (*dto.ExecuteMetaTransactionResponse, error)

	// ResyncNonce resets the relayer nonce from the ledger
	ResyncNonce(ctx context.Context) (*dto.ResyncNonceResponse, error)
}

type executor struct {
	store   store.Store
	trigger sync.Trigger
	relay   relay.Service
}

// NewExecutor creates an executor. relay may be nil when no relayer key is configured.
func NewExecutor(store store.Store, trigger sync.Trigger, relay relay.Service) Executor {
	return &executor{store: store, trigger: trigger, relay: relay}
}

func (e *executor) GetPlacement(ctx context.Context, assetID string) (*dto.PlacementResponse, error) {
	placement, err := e.store.GetLatestPlacementByAssetID(ctx, common.HexToHash(assetID).Hex())
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get placement: %v", err))
	}

	if placement == nil {
		return nil, nil
	}

	record, err := types.PlacementToRecord(placement)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to map placement: %v", err))
	}

	resp := dto.MapPlacementToDTO(record)
	resolved, err := e.resolveLocation(ctx, placement)
	if err != nil {
		return nil, err
	}
	resp.ResolvedLocation = resolved

	return resp, nil
}

// resolveLocation walks up the parent chain until a placement with a location is found.
// Returns nil when the chain ends, loops or exceeds MAX_PARENT_DEPTH without one.
func (e *executor) resolveLocation(ctx context.Context, placement *schema.Placement) (*dto.LocationResponse, error) {
	visited := map[string]bool{}
	current := placement

	for depth := 0; depth <= constants.MAX_PARENT_DEPTH; depth++ {
		if current.BitPrecision > 0 {
			record, err := types.PlacementToRecord(current)
			if err != nil {
				return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to map placement: %v", err))
			}
			location := dto.MapLocationToDTO(record.Location)
			location.SourceAssetID = current.AssetID
			return &location, nil
		}

		visited[current.AssetID] = true
		if current.ParentAssetID == nil || visited[*current.ParentAssetID] {
			return nil, nil
		}

		parent, err := e.store.GetLatestPlacementByAssetID(ctx, *current.ParentAssetID)
		if err != nil {
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get parent placement: %v", err))
		}
		if parent == nil {
			return nil, nil
		}
		current = parent
	}

	logger.WarnCtx(ctx, "Parent chain too deep to resolve location", zap.String("assetID", placement.AssetID))
	return nil, nil
}

func (e *executor) GetPlacements(ctx context.Context, query dto.PlacementQuery) (*dto.PlacementListResponse, error) {
	if query.Limit <= 0 {
		query.Limit = constants.DEFAULT_PLACEMENTS_LIMIT
	}
	if query.Limit > constants.MAX_PAGE_SIZE {
		query.Limit = constants.MAX_PAGE_SIZE
	}

	filter := store.PlacementQueryFilter{
		Identity:      query.Identity(),
		PlacedByOwner: query.PlacedByOwner,
		Current:       query.Current,
		Limit:         query.Limit,
		Offset:        query.Offset,
	}
	if query.Publisher != "" {
		publisher := domain.NormalizeAddress(query.Publisher)
		filter.Publisher = &publisher
	}
	if query.ParentAssetID != "" {
		parent := common.HexToHash(query.ParentAssetID).Hex()
		filter.ParentAssetID = &parent
	}

	placements, total, err := e.store.GetPlacements(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get placements: %v", err))
	}

	resp := &dto.PlacementListResponse{
		Placements: make([]dto.PlacementResponse, 0, len(placements)),
		Total:      total,
	}
	for i := range placements {
		record, err := types.PlacementToRecord(&placements[i])
		if err != nil {
			return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to map placement: %v", err))
		}
		resp.Placements = append(resp.Placements, *dto.MapPlacementToDTO(record))
	}

	// Offset of the next page, omitted on the last one
	next := query.Offset + uint64(len(placements))
	if len(placements) > 0 && next < total {
		resp.Offset = &next
	}

	return resp, nil
}

func (e *executor) TriggerSync(ctx context.Context) (*dto.SyncResponse, error) {
	summary, err := e.trigger.Trigger(ctx)
	if err != nil {
		if errors.Is(err, sync.ErrRateLimited) {
			return nil, apierrors.NewRateLimitedError("Sync is rate limited", "retry after the minimum interval")
		}
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to sync: %v", err))
	}

	return &dto.SyncResponse{
		BlockNumber: summary.BlockNumber,
		Events:      summary.Events,
		Persisted:   summary.Persisted,
		Owned:       summary.Owned,
		Failed:      summary.Failed,
		Skipped:     summary.Skipped,
	}, nil
}

func (e *executor) ExecuteMetaTransaction(ctx context.Context, mtx domain.MetaTransaction) (*dto.ExecuteMetaTransactionResponse, error) {
	if e.relay == nil {
		return nil, apierrors.NewServiceError("Relay is not configured")
	}

	result, err := e.relay.ExecuteMetaTransaction(ctx, mtx)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMetaTransaction) {
			return nil, apierrors.NewValidationError(err.Error())
		}
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to relay meta transaction: %v", err))
	}

	return &dto.ExecuteMetaTransactionResponse{
		TxHash: result.TxHash.Hex(),
		Nonce:  result.Nonce,
	}, nil
}

func (e *executor) ResyncNonce(ctx context.Context) (*dto.ResyncNonceResponse, error) {
	if e.relay == nil {
		return nil, apierrors.NewServiceError("Relay is not configured")
	}

	result, err := e.relay.ResyncNonce(ctx)
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to resync nonce: %v", err))
	}

	return &dto.ResyncNonceResponse{Nonce: result.Nonce}, nil
}
