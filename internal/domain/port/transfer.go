package port

import (
	"context"

	"strongbox.dev/internal/domain/entity"
)

// TransferService is the port for moving asset value between external
// holdings and custody. Both calls are all-or-nothing: on error no value
// moved. Calls are strictly one-way; implementations must not invoke ledger
// operations from inside a transfer.
type TransferService interface {
	// Pull moves amount of asset from the party's external holdings into
	// custody. Fails when the party's holdings cannot cover amount or the
	// transfer is refused externally.
	Pull(ctx context.Context, asset entity.Asset, from entity.Address, amount entity.Amount) error

	// Push moves amount of asset out of custody to the party. Fails when
	// custody cannot cover amount or the transfer is refused externally.
	Push(ctx context.Context, asset entity.Asset, to entity.Address, amount entity.Amount) error
}
