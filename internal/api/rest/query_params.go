package rest

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-placement-indexer/internal/api/shared/constants"
	"github.com/feral-file/ff-placement-indexer/internal/api/shared/dto"
)

// ListPlacementsQueryParams holds query parameters for GET /placements
type ListPlacementsQueryParams struct {
	// Identity filters
	Kind     string `form:"kind"`
	ChainID  string `form:"chain_id"`
	Contract string `form:"contract"`
	TokenID  string `form:"token_id"`

	// Column filters
	Publisher     string `form:"publisher"`
	ParentAssetID string `form:"parent_asset_id"`
	PlacedByOwner *bool  `form:"placed_by_owner"`
	Current       bool   `form:"current,default=false"`

	// Pagination
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListPlacementsQuery parses query parameters for GET /placements
func ParseListPlacementsQuery(c *gin.Context) (*ListPlacementsQueryParams, error) {
	var params ListPlacementsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// Validate validates the pagination parameters
func (p *ListPlacementsQueryParams) Validate() error {
	if p.Limit < 1 {
		return errors.New("limit must be at least 1")
	}
	return nil
}

// ToQuery converts the parameters into an executor query
func (p *ListPlacementsQueryParams) ToQuery() dto.PlacementQuery {
	return dto.PlacementQuery{
		Kind:          p.Kind,
		ChainID:       p.ChainID,
		Contract:      p.Contract,
		TokenID:       p.TokenID,
		Publisher:     p.Publisher,
		ParentAssetID: p.ParentAssetID,
		PlacedByOwner: p.PlacedByOwner,
		Current:       p.Current,
		Limit:         p.Limit,
		Offset:        p.Offset,
	}
}
