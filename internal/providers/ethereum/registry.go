package ethereum

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const placementUpdatedEventName = "PlacementUpdated"

const executeMetaTransactionMethod = "executeMetaTransaction"

// registryABIJSON covers the parts of the placement registry contract the indexer uses
const registryABIJSON = `[
	{"anonymous":false,"type":"event","name":"PlacementUpdated","inputs":[
		{"indexed":true,"name":"assetId","type":"bytes32"},
		{"indexed":true,"name":"parentAssetId","type":"bytes32"},
		{"indexed":true,"name":"publisher","type":"address"},
		{"indexed":false,"name":"assetType","type":"bytes32"},
		{"indexed":false,"name":"collectionId","type":"bytes"},
		{"indexed":false,"name":"itemId","type":"bytes"},
		{"indexed":false,"name":"published","type":"bool"},
		{"indexed":false,"name":"geohashBits","type":"uint256"},
		{"indexed":false,"name":"bitPrecision","type":"uint256"},
		{"indexed":false,"name":"sceneUri","type":"string"},
		{"indexed":false,"name":"startTime","type":"uint256"},
		{"indexed":false,"name":"endTime","type":"uint256"}
	]},
	{"type":"function","name":"executeMetaTransaction","stateMutability":"payable","inputs":[
		{"name":"userAddress","type":"address"},
		{"name":"functionSignature","type":"bytes"},
		{"name":"sigR","type":"bytes32"},
		{"name":"sigS","type":"bytes32"},
		{"name":"sigV","type":"uint8"}
	],"outputs":[{"name":"","type":"bytes"}]}
]`

const erc721ABIJSON = `[{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"payable":false,"stateMutability":"view","type":"function"}]`

const erc1155ABIJSON = `[{"constant":true,"inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}]`

var (
	registryABI = mustParseABI(registryABIJSON)
	erc721ABI   = mustParseABI(erc721ABIJSON)
	erc1155ABI  = mustParseABI(erc1155ABIJSON)

	// PlacementUpdatedEventSignature is topic 0 of every placement log
	PlacementUpdatedEventSignature = registryABI.Events[placementUpdatedEventName].ID
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("invalid contract ABI: %v", err))
	}
	return parsed
}
