package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/logger"
)

// DefaultMaxBlockRange is the initial block span of one eth_getLogs request
const DefaultMaxBlockRange = uint64(10000)

// filterLogsTimeout bounds one paginated log scan
const filterLogsTimeout = time.Minute

//go:generate mockgen -source=client.go -destination=../../mocks/ethereum_client.go -package=mocks -mock_names=EthereumClient=MockEthereumClient
type EthereumClient interface {
	// FilterPlacementLogs returns the placement logs of a registry contract in the inclusive block range
	FilterPlacementLogs(ctx context.Context, registry common.Address, fromBlock, toBlock uint64) ([]types.Log, error)

	// ParsePlacementLog unpacks a placement log into a placement event without block timestamp
	ParsePlacementLog(vLog types.Log) (*domain.PlacementEvent, error)

	// ERC721OwnerOf fetches the current owner of an ERC721 token
	ERC721OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int) (common.Address, error)

	// ERC1155BalanceOf fetches the balance of a specific token ID for an account from an ERC1155 contract
	ERC1155BalanceOf(ctx context.Context, contract common.Address, account common.Address, tokenID *big.Int) (*big.Int, error)

	// PendingNonceAt returns the transaction count of an account including pending transactions
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)

	// SendMetaTransaction relays a user-signed call to the registry contract with the given nonce
	// and returns the transaction hash. A zero gasLimit lets the node estimate it.
	SendMetaTransaction(ctx context.Context, key *ecdsa.PrivateKey, registry common.Address, nonce uint64, gasLimit uint64, mtx domain.MetaTransaction) (common.Hash, error)

	// Close closes the connection
	Close()
}

type ethereumClient struct {
	chainID       domain.Chain
	client        adapter.EthClient
	maxBlockRange uint64
}

func NewClient(chainID domain.Chain, client adapter.EthClient, maxBlockRange uint64) EthereumClient {
	if maxBlockRange == 0 {
		maxBlockRange = DefaultMaxBlockRange
	}
	return &ethereumClient{chainID: chainID, client: client, maxBlockRange: maxBlockRange}
}

// FilterPlacementLogs scans the range in chunks, halving the chunk when the node
// refuses a query for returning too many results
func (c *ethereumClient) FilterPlacementLogs(ctx context.Context, registry common.Address, fromBlock, toBlock uint64) ([]types.Log, error) {
	if fromBlock > toBlock {
		return nil, nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, filterLogsTimeout)
	defer cancel()

	query := ethereum.FilterQuery{
		Addresses: []common.Address{registry},
		Topics:    [][]common.Hash{{PlacementUpdatedEventSignature}},
	}

	var allLogs []types.Log
	stepSize := c.maxBlockRange
	currentFrom := fromBlock

	for currentFrom <= toBlock {
		currentTo := currentFrom + stepSize - 1
		if currentTo > toBlock || currentTo < currentFrom {
			currentTo = toBlock
		}

		rangeQuery := query
		rangeQuery.FromBlock = new(big.Int).SetUint64(currentFrom)
		rangeQuery.ToBlock = new(big.Int).SetUint64(currentTo)

		logs, err := c.client.FilterLogs(timeoutCtx, rangeQuery)
		if err == nil {
			allLogs = append(allLogs, logs...)
			if currentTo == toBlock {
				break
			}
			currentFrom = currentTo + 1
			continue
		}

		if !isTooManyResultsError(err) || stepSize == 1 {
			return nil, fmt.Errorf("failed to get logs for range %d-%d: %w", currentFrom, currentTo, err)
		}

		stepSize = stepSize / 2

		logger.WarnCtx(ctx, "Too many results, reducing step size",
			zap.Uint64("oldStepSize", stepSize*2),
			zap.Uint64("newStepSize", stepSize),
			zap.Uint64("fromBlock", currentFrom),
			zap.Uint64("toBlock", currentTo))
	}

	return allLogs, nil
}

// isTooManyResultsError checks if the error is related to too many results
func isTooManyResultsError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "query returned more than 10000 results") ||
		strings.Contains(errStr, "query timeout exceeded") ||
		strings.Contains(errStr, "too many results") ||
		strings.Contains(errStr, "exceeded maximum") ||
		strings.Contains(errStr, "block range is too wide")
}

// isRevertError reports whether a call failed inside the EVM rather than in transport
func isRevertError(err error) bool {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == 3 {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "execution reverted") ||
		strings.Contains(errStr, "invalid opcode")
}

// placementLogData is the non-indexed part of a PlacementUpdated log
type placementLogData struct {
	AssetType    [32]byte `abi:"assetType"`
	CollectionID []byte   `abi:"collectionId"`
	ItemID       []byte   `abi:"itemId"`
	Published    bool     `abi:"published"`
	GeohashBits  *big.Int `abi:"geohashBits"`
	BitPrecision *big.Int `abi:"bitPrecision"`
	SceneURI     string   `abi:"sceneUri"`
	StartTime    *big.Int `abi:"startTime"`
	EndTime      *big.Int `abi:"endTime"`
}

// ParsePlacementLog parses a PlacementUpdated log
// PlacementUpdated(bytes32 indexed assetId, bytes32 indexed parentAssetId, address indexed publisher, ...)
func (c *ethereumClient) ParsePlacementLog(vLog types.Log) (*domain.PlacementEvent, error) {
	if len(vLog.Topics) == 0 || vLog.Topics[0] != PlacementUpdatedEventSignature {
		return nil, fmt.Errorf("not a placement log: tx %s index %d", vLog.TxHash.Hex(), vLog.Index)
	}
	if len(vLog.Topics) != 4 {
		return nil, fmt.Errorf("invalid PlacementUpdated event: expected 4 topics, got %d", len(vLog.Topics))
	}

	var data placementLogData
	if err := registryABI.UnpackIntoInterface(&data, placementUpdatedEventName, vLog.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack PlacementUpdated data: %w", err)
	}

	return &domain.PlacementEvent{
		AssetID:       vLog.Topics[1],
		ParentAssetID: vLog.Topics[2],
		Publisher:     common.BytesToAddress(vLog.Topics[3].Bytes()),
		Asset: domain.EncodedAssetIdentity{
			AssetType:    common.Hash(data.AssetType),
			CollectionID: data.CollectionID,
			ItemID:       data.ItemID,
		},
		Published:    data.Published,
		GeohashBits:  data.GeohashBits,
		BitPrecision: data.BitPrecision,
		SceneURI:     data.SceneURI,
		StartTime:    data.StartTime,
		EndTime:      data.EndTime,
		BlockNumber:  vLog.BlockNumber,
		BlockHash:    vLog.BlockHash,
		LogIndex:     vLog.Index,
		TxHash:       vLog.TxHash,
	}, nil
}

// call runs a read-only contract call.
// Reverts and empty results fail with domain.ErrContractReverted.
func (c *ethereumClient) call(ctx context.Context, contract common.Address, data []byte) ([]byte, error) {
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &contract,
		Data: data,
	}, nil)
	if err != nil {
		if isRevertError(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrContractReverted, err)
		}
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: empty result from %s", domain.ErrContractReverted, contract.Hex())
	}
	return result, nil
}

// ERC721OwnerOf fetches the current owner of an ERC721 token
func (c *ethereumClient) ERC721OwnerOf(ctx context.Context, contract common.Address, tokenID *big.Int) (common.Address, error) {
	data, err := erc721ABI.Pack("ownerOf", tokenID)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, contract, data)
	if err != nil {
		return common.Address{}, err
	}

	var owner common.Address
	if err := erc721ABI.UnpackIntoInterface(&owner, "ownerOf", result); err != nil {
		return common.Address{}, fmt.Errorf("failed to unpack result: %w", err)
	}

	return owner, nil
}

// ERC1155BalanceOf fetches the balance of a specific token ID for an account from an ERC1155 contract
func (c *ethereumClient) ERC1155BalanceOf(ctx context.Context, contract common.Address, account common.Address, tokenID *big.Int) (*big.Int, error) {
	data, err := erc1155ABI.Pack("balanceOf", account, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	result, err := c.call(ctx, contract, data)
	if err != nil {
		return nil, err
	}

	var balance *big.Int
	if err := erc1155ABI.UnpackIntoInterface(&balance, "balanceOf", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}

	return balance, nil
}

// PendingNonceAt returns the transaction count of an account including pending transactions
func (c *ethereumClient) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	nonce, err := c.client.PendingNonceAt(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("failed to get pending nonce of %s: %w", account.Hex(), err)
	}
	return nonce, nil
}

// SendMetaTransaction packs executeMetaTransaction, signs it with the EIP-155 signer
// of the client chain and submits it
func (c *ethereumClient) SendMetaTransaction(ctx context.Context, key *ecdsa.PrivateKey, registry common.Address, nonce uint64, gasLimit uint64, mtx domain.MetaTransaction) (common.Hash, error) {
	chainID, err := c.chainID.EVMChainID()
	if err != nil {
		return common.Hash{}, err
	}

	data, err := registryABI.Pack(executeMetaTransactionMethod,
		mtx.UserAddress, mtx.FunctionSignature, mtx.SigR, mtx.SigS, mtx.SigV)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to pack meta transaction: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to suggest gas price: %w", err)
	}

	if gasLimit == 0 {
		gasLimit, err = c.client.EstimateGas(ctx, ethereum.CallMsg{
			From: crypto.PubkeyToAddress(key.PublicKey),
			To:   &registry,
			Data: data,
		})
		if err != nil {
			return common.Hash{}, fmt.Errorf("failed to estimate gas: %w", err)
		}
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &registry,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(new(big.Int).SetUint64(chainID)), key)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("failed to send transaction with nonce %d: %w", nonce, err)
	}

	return signed.Hash(), nil
}

// Close closes the connection
func (c *ethereumClient) Close() {
	c.client.Close()
}
