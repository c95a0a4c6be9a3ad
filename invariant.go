package invariant

import (
	client "github.com/krazyTry/invariant-go/invariant"
)

// NewClient creates a new simulation client.
//
// Example:
//
// snapshot, _ := invariant.LoadSnapshotFile("pool.json")
//
// sim := NewClient(invariant.WithLogger(logger), invariant.WithSlippage(math.ToDecimal(1, 2)))
//
// sim.SwapQuote(snapshot, invariant.SwapRequest{XToY: true, ByAmountIn: true, Amount: amount})
var NewClient = client.NewInvariant

// LoadSnapshot decodes a JSON pool snapshot.
var LoadSnapshot = client.LoadSnapshot
