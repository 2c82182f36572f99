// Package source implements the Source Loader: reading a Solidity file into
// an immutable Snapshot with a 1-based line index.
package source

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/omensec/solsca/pkg/models"
)

var pragmaPattern = regexp.MustCompile(`pragma\s+solidity\s+\^?(\d+)\.(\d+)(?:\.(\d+))?`)

// Snapshot is an immutable view of a source file: its full text, its lines
// split on '\n' (final non-terminated line preserved), and the compiler
// version its pragma declares.
type Snapshot struct {
	Filename string
	Text     string
	Lines    []string
	Version  string // "X.Y.Z", or "unknown" if no pragma was found

	offsets []int // offsets[i] = byte offset of the start of line i+1 (0-based)
}

// Load reads path as UTF-8 and builds a Snapshot.
func Load(path string) (*Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", models.ErrSourceIO, path, err)
	}
	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s: invalid UTF-8", models.ErrSourceIO, path)
	}
	return FromText(path, string(raw)), nil
}

// FromText builds a Snapshot directly from in-memory text, without touching
// the filesystem. Used by tests and by callers that already hold the bytes.
func FromText(filename, text string) *Snapshot {
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		// A trailing '\n' terminates the last line; it does not start a new one.
		lines = lines[:len(lines)-1]
	}
	s := &Snapshot{
		Filename: filename,
		Text:     text,
		Lines:    lines,
		Version:  detectVersion(text),
	}
	s.buildLineIndex()
	return s
}

func detectVersion(text string) string {
	m := pragmaPattern.FindStringSubmatch(text)
	if m == nil {
		return "unknown"
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return fmt.Sprintf("%s.%s.%s", m[1], m[2], patch)
}

// buildLineIndex computes a prefix-sum table of line-start byte offsets so
// LineAt runs in O(log n) instead of O(n) per lookup.
func (s *Snapshot) buildLineIndex() {
	s.offsets = make([]int, 0, len(s.Lines))
	offset := 0
	for _, line := range s.Lines {
		s.offsets = append(s.offsets, offset)
		offset += len(line) + 1 // +1 for the stripped '\n'
	}
}

// LineAt returns the 1-based line number containing byte offset off in the
// source text. Offsets past the end of the file clamp to the last line;
// a negative offset clamps to line 1, preserving the line >= 1 invariant.
func (s *Snapshot) LineAt(off int) int {
	if off < 0 || len(s.offsets) == 0 {
		return 1
	}
	lo, hi := 0, len(s.offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.offsets[mid] <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1
}

// LineCount returns the number of lines in the snapshot.
func (s *Snapshot) LineCount() int {
	return len(s.Lines)
}

// Snippet returns the lines in [start, end] (1-based, inclusive), clamped to
// file bounds, joined by newlines.
func (s *Snapshot) Snippet(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(s.Lines) {
		end = len(s.Lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(s.Lines[start-1:end], "\n")
}
