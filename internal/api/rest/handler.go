package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-placement-indexer/internal/api/shared/dto"
	"github.com/feral-file/ff-placement-indexer/internal/api/shared/executor"
	"github.com/feral-file/ff-placement-indexer/internal/types"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetPlacement retrieves the latest placement of an asset
	// GET /api/v1/placements/:asset_id
	GetPlacement(c *gin.Context)

	// ListPlacements retrieves placements with optional filters
	// GET /api/v1/placements?kind=<kind>&chain_id=<chain_id>&contract=<address>&token_id=<id>&publisher=<address>&parent_asset_id=<id>&placed_by_owner=<bool>&current=<bool>&limit=<limit>&offset=<offset>
	ListPlacements(c *gin.Context)

	// TriggerSync runs one sync pass, rejected with 429 inside the minimum interval
	// POST /api/v1/sync
	TriggerSync(c *gin.Context)

	// ExecuteMetaTransaction relays a user-signed meta transaction
	// POST /api/v1/relay/execute
	ExecuteMetaTransaction(c *gin.Context)

	// ResyncNonce resets the relayer nonce from the ledger (requires authentication)
	// POST /api/v1/relay/nonce/resync
	ResyncNonce(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// GetPlacement retrieves the latest placement of an asset by its asset id
func (h *handler) GetPlacement(c *gin.Context) {
	assetID := c.Param("asset_id")
	if assetID == "" {
		respondBadRequest(c, "Asset ID is required")
		return
	}

	if !types.IsHash(assetID) {
		respondBadRequest(c, "Invalid asset ID", "expected 0x-prefixed 32-byte hex")
		return
	}

	placement, err := h.executor.GetPlacement(c.Request.Context(), assetID)
	if err != nil {
		respondError(c, err, "Failed to get placement")
		return
	}

	if placement == nil {
		respondNotFound(c, "Placement not found")
		return
	}

	c.JSON(http.StatusOK, placement)
}

// ListPlacements retrieves placements with filtering and pagination
func (h *handler) ListPlacements(c *gin.Context) {
	queryParams, err := ParseListPlacementsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	query := queryParams.ToQuery()
	if err := query.Validate(); err != nil {
		respondError(c, err, "Invalid query")
		return
	}

	response, err := h.executor.GetPlacements(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to list placements")
		return
	}

	c.JSON(http.StatusOK, response)
}

// TriggerSync runs one sync pass and returns its summary
func (h *handler) TriggerSync(c *gin.Context) {
	response, err := h.executor.TriggerSync(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to sync")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExecuteMetaTransaction relays a user-signed meta transaction (open, no authentication required)
func (h *handler) ExecuteMetaTransaction(c *gin.Context) {
	var req dto.ExecuteMetaTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	mtx, err := req.ToMetaTransaction()
	if err != nil {
		respondError(c, err, "Invalid meta transaction")
		return
	}

	response, err := h.executor.ExecuteMetaTransaction(c.Request.Context(), mtx)
	if err != nil {
		respondError(c, err, "Failed to relay meta transaction")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ResyncNonce resets the relayer nonce (requires authentication)
func (h *handler) ResyncNonce(c *gin.Context) {
	response, err := h.executor.ResyncNonce(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to resync nonce")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "ok",
		Service: "ff-placement-indexer-api",
	})
}
