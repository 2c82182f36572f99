// Package rules holds the reference detector catalog: the concrete
// vulnerability checks that ship with the analyzer, each grounded on one
// SWC Registry entry or a closely related heuristic.
package rules

import "github.com/omensec/solsca/pkg/detector"

// All returns the static detector catalog in a fixed, deterministic order.
// The registry is assembled at compile time rather than discovered by
// scanning a plugin directory at runtime.
func All() []detector.Detector {
	return []detector.Detector{
		newReentrancyIR(),
		newReentrancyText(),
		newUncheckedReturnIR(),
		newUncheckedReturnText(),
		newTxOrigin(),
		newPragmaVersion(),
		newDelegatecallText(),
		newControlledDelegatecall(),
		newArbitrarySendEth(),
		newArbitrarySendERC20(),
		newMsgValueLoop(),
		newUnprotectedWithdraw(),
		newIntegerOverflow(),
		newUninitializedState(),
		newProtectedVars(),
		newPublicStateVisibility(),
	}
}
