package types

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	tezosAddressRegex = regexp.MustCompile(`^(tz1|tz2|tz3|tz4|KT1)[1-9A-HJ-NP-Za-km-z]{33}$`)
	hashRegex         = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)
)

// StringPtr converts a string to a pointer to a string
func StringPtr(s string) *string {
	return &s
}

// StringNilOrEmpty checks if a pointer to a string is nil or empty
func StringNilOrEmpty(s *string) bool {
	return s == nil || *s == ""
}

// SafeString returns a safe string from a pointer to a string
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsTezosAddress checks if a string is a valid Tezos address
func IsTezosAddress(s string) bool {
	return tezosAddressRegex.MatchString(s)
}

// IsEthereumAddress checks if a string is a valid Ethereum address
func IsEthereumAddress(s string) bool {
	return common.IsHexAddress(s) && strings.HasPrefix(s, "0x")
}

// IsHash checks if a string is a 0x-prefixed 32-byte hex value
func IsHash(s string) bool {
	return hashRegex.MatchString(s)
}
