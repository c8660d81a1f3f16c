package entity

import (
	"bytes"
	"errors"
	"testing"

	"github.com/mr-tron/base58"
)

func TestParseAddress(t *testing.T) {
	valid := base58.Encode(bytes.Repeat([]byte{0xAB}, AddressLength))

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid address",
			input:   valid,
			wantErr: nil,
		},
		{
			name:    "empty address",
			input:   "",
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "invalid base58 characters",
			input:   "0OIl+/=",
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "payload too short",
			input:   base58.Encode([]byte{1, 2, 3}),
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "payload too long",
			input:   base58.Encode(bytes.Repeat([]byte{7}, AddressLength+1)),
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "zero address",
			input:   base58.Encode(make([]byte, AddressLength)),
			wantErr: ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAddress(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil && addr.String() != tt.input {
				t.Errorf("ParseAddress(%q) = %q, want input back", tt.input, addr)
			}
			if tt.wantErr != nil && !addr.IsZero() {
				t.Errorf("ParseAddress(%q) returned non-zero address %q on error", tt.input, addr)
			}
		})
	}
}

func TestParseAsset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Asset
		wantErr error
	}{
		{
			name:  "plain symbol",
			input: "BTC",
			want:  "BTC",
		},
		{
			name:  "lowercase is normalized",
			input: "eth",
			want:  "ETH",
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "  USDT ",
			want:  "USDT",
		},
		{
			name:  "digits allowed",
			input: "T0KEN2",
			want:  "T0KEN2",
		},
		{
			name:    "empty symbol",
			input:   "",
			wantErr: ErrInvalidAsset,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: ErrInvalidAsset,
		},
		{
			name:    "symbol too long",
			input:   "ABCDEFGHIJKLM",
			wantErr: ErrInvalidAsset,
		},
		{
			name:    "punctuation rejected",
			input:   "BTC-PERP",
			wantErr: ErrInvalidAsset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := ParseAsset(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseAsset(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if asset != tt.want {
				t.Errorf("ParseAsset(%q) = %q, want %q", tt.input, asset, tt.want)
			}
		})
	}
}
