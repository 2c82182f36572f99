package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omensec/solsca/pkg/analysisctx"
	"github.com/omensec/solsca/pkg/ir"
	"github.com/omensec/solsca/pkg/source"
)

func textCtx(src string) *analysisctx.Context {
	snap := source.FromText("Test.sol", src)
	return analysisctx.New(snap, nil, ir.BuildFromText(snap))
}

func TestTxOriginDetectsBareTextUsage(t *testing.T) {
	ctx := textCtx(`pragma solidity ^0.8.0;
contract C {
    function withdraw() public {
        require(tx.origin == owner);
    }
}
`)
	issues := newTxOrigin().Run(ctx)
	require.Len(t, issues, 1)
	assert.Equal(t, 4, issues[0].Line)
}

func TestTxOriginIgnoresCommentedLine(t *testing.T) {
	ctx := textCtx(`pragma solidity ^0.8.0;
contract C {
    // tx.origin should not be used here
}
`)
	issues := newTxOrigin().Run(ctx)
	assert.Empty(t, issues, "expected no issues for a commented-out mention")
}

func TestReentrancyTextDetectsCallValue(t *testing.T) {
	ctx := textCtx(`pragma solidity ^0.6.0;
contract C {
    function withdraw(address payable to) public {
        to.call.value(1 ether)("");
    }
}
`)
	issues := newReentrancyText().Run(ctx)
	require.Len(t, issues, 1)
}

func TestReentrancyTextDetectsCallBraceValue(t *testing.T) {
	ctx := textCtx(`pragma solidity ^0.8.0;
contract C {
    function withdraw(address payable to) public {
        to.call{value: 1 ether}("");
    }
}
`)
	issues := newReentrancyText().Run(ctx)
	require.Len(t, issues, 1)
}

func TestIntegerOverflowGatedByVersion(t *testing.T) {
	pre080 := textCtx(`pragma solidity ^0.7.0;
contract C {
    function add(uint a, uint b) public pure returns (uint) {
        return a + b;
    }
}
`)
	assert.NotEmpty(t, newIntegerOverflow().Run(pre080), "expected an overflow issue on a pre-0.8.0 contract")

	post080 := textCtx(`pragma solidity ^0.8.0;
contract C {
    function add(uint a, uint b) public pure returns (uint) {
        return a + b;
    }
}
`)
	assert.Empty(t, newIntegerOverflow().Run(post080), "expected no overflow issues on a >=0.8.0 contract (built-in checked arithmetic)")
}

func TestUnprotectedWithdrawFlagsUnguardedSelfdestruct(t *testing.T) {
	ctx := textCtx(`pragma solidity ^0.8.0;
contract C {
    function kill(address payable recipient) public {
        selfdestruct(recipient);
    }
}
`)
	issues := newUnprotectedWithdraw().Run(ctx)
	require.Len(t, issues, 1)
}

func TestUnprotectedWithdrawAllowsGuardedSelfdestruct(t *testing.T) {
	// unprotectedWithdraw is a line-local heuristic (see its doc comment): the
	// access-control marker must appear on the same line as the selfdestruct.
	ctx := textCtx(`pragma solidity ^0.8.0;
contract C {
    function kill() public {
        if (msg.sender == owner) selfdestruct(payable(msg.sender));
    }
}
`)
	issues := newUnprotectedWithdraw().Run(ctx)
	assert.Empty(t, issues, "expected no issues when guarded on the same line")
}

func TestRegistryReturnsAllSixteenDetectors(t *testing.T) {
	dets := All()
	require.Len(t, dets, 16)

	seen := map[string]bool{}
	for _, d := range dets {
		assert.False(t, seen[d.ID()], "duplicate detector id %q", d.ID())
		seen[d.ID()] = true
		assert.NotEmpty(t, d.Severity(), "detector %q has empty severity", d.ID())
	}
}
