package entity

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// AddressLength is the decoded payload size of an account address in bytes.
const AddressLength = 20

// MaxAssetLength bounds the length of an asset symbol.
const MaxAssetLength = 12

// Address is the base58 form of a 20-byte account identity. The empty value
// is the null address and never identifies a valid party.
type Address string

// ParseAddress decodes and validates a base58 account address. The all-zero
// payload is rejected alongside malformed input.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != AddressLength {
		return "", fmt.Errorf("%w: decoded to %d bytes, want %d", ErrInvalidAddress, len(raw), AddressLength)
	}
	zero := true
	for _, b := range raw {
		if b != 0 {
			zero = false
			break
		}
	}
	if zero {
		return "", fmt.Errorf("%w: zero address", ErrInvalidAddress)
	}
	return Address(base58.Encode(raw)), nil
}

func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is the null identity.
func (a Address) IsZero() bool {
	return a == ""
}

// Asset is an uppercase symbol identifying a fungible asset type. The empty
// value is the null asset and is rejected everywhere.
type Asset string

// ParseAsset normalizes a symbol to upper case and validates it. Symbols are
// 1 to MaxAssetLength characters from [A-Z0-9].
func ParseAsset(s string) (Asset, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("%w: empty symbol", ErrInvalidAsset)
	}
	if len(s) > MaxAssetLength {
		return "", fmt.Errorf("%w: symbol %q longer than %d characters", ErrInvalidAsset, s, MaxAssetLength)
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return "", fmt.Errorf("%w: symbol %q", ErrInvalidAsset, s)
		}
	}
	return Asset(s), nil
}

func (a Asset) String() string {
	return string(a)
}

// IsZero reports whether the asset is the null identity.
func (a Asset) IsZero() bool {
	return a == ""
}
