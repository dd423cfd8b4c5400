package tezos_test

import (
	"context"
	"errors"
	"math/big"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-placement-indexer/internal/domain"
	"github.com/feral-file/ff-placement-indexer/internal/mocks"
	"github.com/feral-file/ff-placement-indexer/internal/providers/tezos"
)

const (
	testContract = "KT1RJ6PbjHpwc3M5rw5s2Nbmefwbuwbdxton"
	testAccount  = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
)

func TestGetTokenBalance(t *testing.T) {
	tests := []struct {
		name     string
		response []string
		want     *big.Int
	}{
		{name: "holder", response: []string{"3"}, want: big.NewInt(3)},
		{name: "never held", response: []string{}, want: big.NewInt(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			httpClient := mocks.NewMockHTTPClient(ctrl)
			client := tezos.NewTzKTClient("https://api.ghostnet.tzkt.io", httpClient)
			ctx := context.Background()

			httpClient.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, endpoint string, result interface{}) error {
					require.True(t, strings.HasPrefix(endpoint, "https://api.ghostnet.tzkt.io/v1/tokens/balances?"))
					u, err := url.Parse(endpoint)
					require.NoError(t, err)
					assert.Equal(t, testAccount, u.Query().Get("account"))
					assert.Equal(t, testContract, u.Query().Get("token.contract"))
					assert.Equal(t, "7", u.Query().Get("token.tokenId"))
					assert.Equal(t, "balance", u.Query().Get("select"))

					*result.(*[]string) = tt.response
					return nil
				})

			balance, err := client.GetTokenBalance(ctx, testContract, "7", testAccount)
			require.NoError(t, err)
			assert.Equal(t, 0, tt.want.Cmp(balance))
		})
	}
}

func TestGetTokenBalance_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	client := tezos.NewTzKTClient("https://api.tzkt.io", httpClient)
	ctx := context.Background()

	_, err := client.GetTokenBalance(ctx, "0xnotacontract", "1", testAccount)
	assert.ErrorContains(t, err, "invalid FA2 contract")

	_, err = client.GetTokenBalance(ctx, testContract, "1", "tz1&select=id")
	assert.ErrorContains(t, err, "invalid tezos account")

	_, err = client.GetTokenBalance(ctx, testContract, "01", testAccount)
	assert.ErrorContains(t, err, "invalid token id")
	assert.ErrorIs(t, err, domain.ErrInvalidOwnershipQuery)

	httpClient.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).Return(errors.New("service unavailable"))
	_, err = client.GetTokenBalance(ctx, testContract, "1", testAccount)
	assert.ErrorContains(t, err, "service unavailable")
	assert.NotErrorIs(t, err, domain.ErrInvalidOwnershipQuery)

	httpClient.EXPECT().Get(ctx, gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, result interface{}) error {
			*result.(*[]string) = []string{"not-a-number"}
			return nil
		})
	_, err = client.GetTokenBalance(ctx, testContract, "1", testAccount)
	assert.ErrorContains(t, err, "invalid balance")
}
