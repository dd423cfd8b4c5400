package tezos

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"regexp"

	"github.com/feral-file/ff-placement-indexer/internal/adapter"
	"github.com/feral-file/ff-placement-indexer/internal/domain"
)

var (
	accountRegex  = regexp.MustCompile(`^(tz1|tz2|tz3|tz4|KT1)[1-9A-HJ-NP-Za-km-z]{33}$`)
	contractRegex = regexp.MustCompile(`^KT1[1-9A-HJ-NP-Za-km-z]{33}$`)
	tokenIDRegex  = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)
)

// TzKTClient defines an interface for TzKT API client operations to enable mocking
//
//go:generate mockgen -source=tzkt_client.go -destination=../../mocks/tzkt_client.go -package=mocks -mock_names=TzKTClient=MockTzKTClient
type TzKTClient interface {
	// GetTokenBalance returns the FA2 balance of an account, zero when the account never held the token
	GetTokenBalance(ctx context.Context, contract, tokenID, account string) (*big.Int, error)
}

// tzktClient is the concrete implementation of TzKTClient
type tzktClient struct {
	baseURL    string
	httpClient adapter.HTTPClient
}

// NewTzKTClient creates a new TzKT API client
func NewTzKTClient(baseURL string, httpClient adapter.HTTPClient) TzKTClient {
	return &tzktClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// GetTokenBalance queries /v1/tokens/balances selecting only the balance column
func (c *tzktClient) GetTokenBalance(ctx context.Context, contract, tokenID, account string) (*big.Int, error) {
	if !contractRegex.MatchString(contract) {
		return nil, fmt.Errorf("%w: invalid FA2 contract address: %s", domain.ErrInvalidOwnershipQuery, contract)
	}
	if !accountRegex.MatchString(account) {
		return nil, fmt.Errorf("%w: invalid tezos account: %s", domain.ErrInvalidOwnershipQuery, account)
	}
	if !tokenIDRegex.MatchString(tokenID) {
		return nil, fmt.Errorf("%w: invalid token id: %s", domain.ErrInvalidOwnershipQuery, tokenID)
	}

	query := url.Values{}
	query.Set("account", account)
	query.Set("token.contract", contract)
	query.Set("token.tokenId", tokenID)
	query.Set("select", "balance")
	endpoint := fmt.Sprintf("%s/v1/tokens/balances?%s", c.baseURL, query.Encode())

	var balances []string
	if err := c.httpClient.Get(ctx, endpoint, &balances); err != nil {
		return nil, fmt.Errorf("failed to get token balance of %s for %s:%s: %w", account, contract, tokenID, err)
	}

	if len(balances) == 0 {
		return new(big.Int), nil
	}

	balance, ok := new(big.Int).SetString(balances[0], 10)
	if !ok {
		return nil, fmt.Errorf("invalid balance returned by TzKT: %q", balances[0])
	}

	return balance, nil
}
