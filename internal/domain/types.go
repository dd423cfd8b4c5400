package domain

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Blockchain represents the blockchain name
type Blockchain string

const (
	BlockchainEthereum Blockchain = "ethereum"
	BlockchainTezos    Blockchain = "tezos"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
	ChainPolygonAmoy     Chain = "eip155:80002"
	ChainTezosMainnet    Chain = "tezos:mainnet"
	ChainTezosGhostnet   Chain = "tezos:ghostnet"
)

var evmChainRegex = regexp.MustCompile(`^eip155:[1-9][0-9]*$`)

// IsValidChain checks if a chain is valid
// Any EIP-155 chain is accepted, Tezos is limited to the known networks.
func IsValidChain(chain Chain) bool {
	if evmChainRegex.MatchString(string(chain)) {
		return true
	}
	return chain == ChainTezosMainnet || chain == ChainTezosGhostnet
}

// EVMChain returns the CAIP-2 identifier of an EIP-155 chain id
func EVMChain(chainID uint64) Chain {
	return Chain(fmt.Sprintf("eip155:%d", chainID))
}

// EVMChainID returns the numeric EIP-155 chain id
func (c Chain) EVMChainID() (uint64, error) {
	if !evmChainRegex.MatchString(string(c)) {
		return 0, fmt.Errorf("not an EVM chain: %s", c)
	}
	return strconv.ParseUint(strings.TrimPrefix(string(c), "eip155:"), 10, 64)
}

// Blockchain returns the blockchain family of the chain
func (c Chain) Blockchain() Blockchain {
	if strings.HasPrefix(string(c), "tezos:") {
		return BlockchainTezos
	}
	return BlockchainEthereum
}

// AssetKind is the name of an asset kind. Its keccak256 hash is the on-chain type tag.
type AssetKind string

const (
	AssetKindERC721        AssetKind = "ERC721"
	AssetKindERC1155       AssetKind = "ERC1155"
	AssetKindTezosFA2      AssetKind = "TEZOS_FA2"
	AssetKindMessage       AssetKind = "MESSAGE"
	AssetKindSelfPublished AssetKind = "SELF_PUBLISHED"
)

// Location is a geohash given as raw bits and the number of significant bits
type Location struct {
	GeohashBits  uint64 `json:"geohash_bits,string"`
	BitPrecision uint8  `json:"bit_precision"`
}

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// Geohash renders the location as a base32 geohash string.
// Returns an empty string when the precision is not a whole number of characters.
func (l Location) Geohash() string {
	if l.BitPrecision == 0 || l.BitPrecision%5 != 0 || l.BitPrecision > 60 {
		return ""
	}

	chars := int(l.BitPrecision / 5)
	var sb strings.Builder
	for i := 0; i < chars; i++ {
		shift := uint(l.BitPrecision) - uint(5*(i+1))
		sb.WriteByte(geohashAlphabet[(l.GeohashBits>>shift)&31])
	}
	return sb.String()
}

// TimeRange is the optional validity window of a placement
type TimeRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// PlacementEvent is a registry log unpacked into typed fields
// It carries ledger values as-is, the decoder is responsible for normalization.
type PlacementEvent struct {
	AssetID       common.Hash
	ParentAssetID common.Hash
	Publisher     common.Address
	Asset         EncodedAssetIdentity
	Published     bool
	GeohashBits   *big.Int
	BitPrecision  *big.Int
	SceneURI      string
	StartTime     *big.Int
	EndTime       *big.Int
	BlockNumber   uint64
	BlockHash     common.Hash
	LogIndex      uint
	TxHash        common.Hash
	Timestamp     time.Time
}

// EventBatch is the result of one ledger fetch.
// Events are ordered by block number then log index and none is above CurrentBlockNumber.
type EventBatch struct {
	CurrentBlockNumber uint64
	Events             []PlacementEvent
}

// PlacementRecord is one decoded placement claim
type PlacementRecord struct {
	AssetID       common.Hash          `json:"asset_id"`
	ParentAssetID *common.Hash         `json:"parent_asset_id"`
	Asset         AssetIdentity        `json:"decoded_asset_id"`
	Encoded       EncodedAssetIdentity `json:"encoded_asset_id"`
	Publisher     common.Address       `json:"publisher"`
	Published     bool                 `json:"published"`
	Location      Location             `json:"location"`
	SceneURI      *string              `json:"scene_uri"`
	PlacedAt      time.Time            `json:"placed_at"`
	TimeRange     TimeRange            `json:"time_range"`
	BlockNumber   uint64               `json:"block_number"`
	BlockHash     common.Hash          `json:"block_hash"`
	BlockLogIndex uint                 `json:"block_log_index"`
	TxHash        common.Hash          `json:"tx"`
	LinkedAccount *string              `json:"linked_account"`
}

// EventKey returns the idempotency key of the underlying ledger event
func (r *PlacementRecord) EventKey() string {
	return fmt.Sprintf("%s:%d", r.BlockHash.Hex(), r.BlockLogIndex)
}

// ValidatedPlacementRecord is a placement record after ownership verification
type ValidatedPlacementRecord struct {
	PlacementRecord
	PlacedByOwner bool `json:"placed_by_owner"`
}

// NormalizeAddresses normalizes a list of addresses to the format used by the blockchain
func NormalizeAddresses(addresses []string) []string {
	for i, address := range addresses {
		addresses[i] = NormalizeAddress(address)
	}
	return addresses
}

// NormalizeAddress normalizes an address to the format used by the blockchain
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") {
		return common.HexToAddress(address).String()
	}
	return address
}
