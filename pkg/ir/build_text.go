package ir

import (
	"regexp"
	"strings"

	"github.com/omensec/solsca/pkg/source"
)

// bareTransferPattern matches a bare transfer( call not already covered by
// the dotted ".transfer(" form (old-style free function calls).
var bareTransferPattern = regexp.MustCompile(`(^|[^.\w])transfer\s*\(`)

// stateHeuristicTokens are the well-known state-variable-ish identifiers the
// text fallback looks for when guessing at a STATE_WRITE. The list is
// intentionally small and not user-extensible; see DESIGN.md for the
// open question this leaves unresolved.
var stateHeuristicTokens = []string{"balance", "owner"}

// BuildFromText produces an under-approximate IR directly from source text,
// for use when no AST is available. It maintains a single synthetic
// function and emits events on a per-line basis.
func BuildFromText(snap *source.Snapshot) *IR {
	fn := &Function{Name: ""}
	fn.emit(FUNC, 1, "", false)

	for i, line := range snap.Lines {
		lineNum := i + 1

		if strings.Contains(line, "require(") {
			fn.emit(REQUIRE, lineNum, "", false)
		}

		if method, op, ok := detectCallSite(line); ok {
			checked := strings.Contains(line, "=") || method == "transfer"
			fn.emit(op, lineNum, method, checked)
		}

		if strings.Contains(line, "=") {
			for _, tok := range stateHeuristicTokens {
				if strings.Contains(line, tok) {
					fn.emit(STATE_WRITE, lineNum, tok, false)
					break
				}
			}
		}
	}

	return &IR{Functions: []*Function{fn}}
}

// detectCallSite reports the low-level call method (if any) present in
// line, in priority order call > send > transfer.
func detectCallSite(line string) (method string, op Opcode, ok bool) {
	switch {
	case strings.Contains(line, ".call{") || strings.Contains(line, ".call("):
		return "call", EXTERNAL_CALL, true
	case strings.Contains(line, ".send("):
		return "send", SEND, true
	case strings.Contains(line, ".transfer(") || bareTransferPattern.MatchString(line):
		return "transfer", SEND, true
	default:
		return "", "", false
	}
}
