package placement

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-placement-indexer/internal/asset"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

const maxBitPrecision = 64

var (
	errAssetIDMismatch = errors.New("asset id does not match the encoded identity")
	errLocation        = errors.New("location does not fit the geohash model")
	errTimeRange       = errors.New("time range bound out of range")
)

// Decoder turns registry events into placement records
//
//go:generate mockgen -source=decoder.go -destination=../mocks/placement_decoder.go -package=mocks -mock_names=Decoder=MockPlacementDecoder
type Decoder interface {
	// Decode converts an unpacked registry event into a placement record.
	// Unknown asset kinds fail with domain.ErrUnknownAssetKind, malformed events with *domain.DecodeError.
	Decode(event domain.PlacementEvent) (*domain.PlacementRecord, error)
}

type decoder struct {
	registry asset.Registry
}

// NewDecoder creates a decoder backed by an asset registry
func NewDecoder(registry asset.Registry) Decoder {
	return &decoder{registry: registry}
}

func (d *decoder) Decode(event domain.PlacementEvent) (*domain.PlacementRecord, error) {
	identity, err := d.registry.Decode(event.Asset)
	if err != nil {
		return nil, err
	}

	if assetID := asset.Hash(event.Asset); assetID != event.AssetID {
		return nil, domain.NewDecodeError(identity.Kind(), fmt.Errorf("%w: event %s, derived %s", errAssetIDMismatch, event.AssetID.Hex(), assetID.Hex()))
	}

	location, err := decodeLocation(event.GeohashBits, event.BitPrecision)
	if err != nil {
		return nil, domain.NewDecodeError("", err)
	}

	start, err := decodeTime(event.StartTime)
	if err != nil {
		return nil, domain.NewDecodeError("", err)
	}
	end, err := decodeTime(event.EndTime)
	if err != nil {
		return nil, domain.NewDecodeError("", err)
	}

	record := &domain.PlacementRecord{
		AssetID:       event.AssetID,
		Asset:         identity,
		Encoded:       event.Asset,
		Publisher:     event.Publisher,
		Published:     event.Published,
		Location:      location,
		PlacedAt:      event.Timestamp.UTC(),
		TimeRange:     domain.TimeRange{Start: start, End: end},
		BlockNumber:   event.BlockNumber,
		BlockHash:     event.BlockHash,
		BlockLogIndex: event.LogIndex,
		TxHash:        event.TxHash,
	}

	if event.ParentAssetID != (common.Hash{}) {
		parent := event.ParentAssetID
		record.ParentAssetID = &parent
	}

	if event.SceneURI != "" {
		sceneURI := event.SceneURI
		record.SceneURI = &sceneURI
	}

	return record, nil
}

// decodeLocation keeps the geohash bits exactly as emitted
func decodeLocation(bits *big.Int, precision *big.Int) (domain.Location, error) {
	if bits == nil || precision == nil {
		return domain.Location{}, fmt.Errorf("%w: missing geohash fields", errLocation)
	}
	if !precision.IsUint64() || precision.Uint64() > maxBitPrecision {
		return domain.Location{}, fmt.Errorf("%w: bit precision %s exceeds %d", errLocation, precision, maxBitPrecision)
	}
	if bits.Sign() < 0 || bits.BitLen() > int(precision.Uint64()) {
		return domain.Location{}, fmt.Errorf("%w: geohash bits %s exceed precision %s", errLocation, bits, precision)
	}

	return domain.Location{
		GeohashBits:  bits.Uint64(),
		BitPrecision: uint8(precision.Uint64()),
	}, nil
}

// decodeTime converts a unix timestamp, zero meaning unbounded
func decodeTime(ts *big.Int) (*time.Time, error) {
	if ts == nil || ts.Sign() == 0 {
		return nil, nil
	}
	if !ts.IsInt64() || ts.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", errTimeRange, ts)
	}

	t := time.Unix(ts.Int64(), 0).UTC()
	return &t, nil
}
