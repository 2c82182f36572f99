package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromTextDetectsVersion(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"caret with patch", "pragma solidity ^0.8.19;\ncontract C {}\n", "0.8.19"},
		{"no patch", "pragma solidity ^0.8;\n", "0.8.0"},
		{"no pragma", "contract C {}\n", "unknown"},
		{"exact version", "pragma solidity 0.7.6;\n", "0.7.6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromText("Test.sol", tt.text)
			assert.Equal(t, tt.want, s.Version)
		})
	}
}

func TestLineAt(t *testing.T) {
	text := "pragma solidity ^0.8.0;\ncontract C {\n    uint x;\n}\n"
	s := FromText("Test.sol", text)

	tests := []struct {
		off  int
		want int
	}{
		{0, 1},
		{-5, 1},
		{24, 2},
		{1000, s.LineCount()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.LineAt(tt.off), "LineAt(%d)", tt.off)
	}
}

func TestSnippet(t *testing.T) {
	text := "one\ntwo\nthree\nfour\n"
	s := FromText("Test.sol", text)

	assert.Equal(t, "two\nthree", s.Snippet(2, 3))
	assert.Equal(t, "one\ntwo\nthree\nfour", s.Snippet(0, 100), "Snippet should clamp to the available line range")
	assert.Equal(t, "", s.Snippet(10, 12), "Snippet out of range should be empty")
}
