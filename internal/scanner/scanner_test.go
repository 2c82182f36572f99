package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omensec/solsca/pkg/config"
)

func TestNewScanner(t *testing.T) {
	s := NewScanner(nil)
	require.NotNil(t, s)
	assert.NotNil(t, s.config, "scanner.config should not be nil when passing nil")

	cfg := config.DefaultConfig()
	s = NewScanner(cfg)
	assert.Same(t, cfg, s.config)
}

func TestScanDir(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]string{
		"Token.sol":          "pragma solidity ^0.8.0;\ncontract Token {}\n",
		"util/SafeMath.sol":  "pragma solidity ^0.8.0;\nlibrary SafeMath {}\n",
		"util/helper.py":     "# python\n",
		"internal/Vault.sol": "pragma solidity ^0.8.0;\ncontract Vault {}\n",
	}

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, result, 3)

	found := make(map[string]bool)
	for _, f := range result {
		rel, _ := filepath.Rel(tmpDir, f)
		found[rel] = true
	}

	for name := range files {
		if filepath.Ext(name) != ".sol" {
			continue
		}
		assert.True(t, found[filepath.FromSlash(name)], "Solidity file %s was not found", name)
	}
	assert.False(t, found[filepath.FromSlash("util/helper.py")], "non-Solidity file should not be found")
}

func TestScanDirExcludesDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	excludedDirs := []string{"node_modules", "artifacts", "cache"}
	for _, dir := range excludedDirs {
		path := filepath.Join(tmpDir, dir, "Excluded.sol")
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("pragma solidity ^0.8.0;\ncontract Excluded {}\n"), 0644))
	}

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "Main.sol"), []byte("pragma solidity ^0.8.0;\ncontract Main {}\n"), 0644))

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, result, 1, "excluded dirs should be skipped")
}

func TestScanDirExcludesPatterns(t *testing.T) {
	tmpDir := t.TempDir()

	files := []string{
		"Main.sol",
		"Main.t.sol",
	}

	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, name), []byte("pragma solidity ^0.8.0;\n"), 0644))
	}

	cfg := config.DefaultConfig()
	cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, "*.t.sol")

	s := NewScanner(cfg)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestScanFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		content  string
		want     bool
	}{
		{"solidity file", "Main.sol", "pragma solidity ^0.8.0;\n", true},
		{"python file", "script.py", "# python\n", false},
		{"text file", "readme.txt", "hello\n", false},
		{"directory", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			if tt.filename == "" {
				path = tmpDir
			} else {
				path = filepath.Join(tmpDir, tt.filename)
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))
			}

			s := NewScanner(nil)
			got, err := s.ScanFile(path)
			if err != nil {
				assert.False(t, tt.want, "ScanFile() error: %v", err)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanFileNonExistent(t *testing.T) {
	s := NewScanner(nil)
	_, err := s.ScanFile("/nonexistent/path/file.sol")
	assert.Error(t, err)
}

func TestScanDirWithGitignore(t *testing.T) {
	tmpDir := t.TempDir()

	gitignore := "skipme\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte(gitignore), 0644))

	files := map[string]string{
		"Main.sol":        "pragma solidity ^0.8.0;\n",
		"skipme/Skip.sol": "pragma solidity ^0.8.0;\n",
		"src/App.sol":     "pragma solidity ^0.8.0;\n",
	}

	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = true

	s := NewScanner(cfg)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)

	foundFiles := make(map[string]bool)
	for _, f := range result {
		rel, _ := filepath.Rel(tmpDir, f)
		foundFiles[rel] = true
	}

	assert.True(t, foundFiles["Main.sol"])
	assert.True(t, foundFiles[filepath.Join("src", "App.sol")])
}

func TestScanDirDisabledGitignore(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("ignored/\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "ignored"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignored", "File.sol"), []byte("pragma solidity ^0.8.0;\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Exclude.Gitignore = false

	s := NewScanner(cfg)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)

	found := false
	for _, f := range result {
		if filepath.Base(f) == "File.sol" {
			found = true
			break
		}
	}
	assert.True(t, found, "with gitignore disabled, should find files in 'ignored' directory")
}

func TestScanDirEmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestFilterBySize(t *testing.T) {
	tmpDir := t.TempDir()

	smallContent := "small"
	largeContent := make([]byte, 1024)
	for i := range largeContent {
		largeContent[i] = 'x'
	}

	smallFile := filepath.Join(tmpDir, "Small.sol")
	largeFile := filepath.Join(tmpDir, "Large.sol")

	require.NoError(t, os.WriteFile(smallFile, []byte(smallContent), 0644))
	require.NoError(t, os.WriteFile(largeFile, largeContent, 0644))

	t.Run("no limit", func(t *testing.T) {
		filtered, skipped := FilterBySize([]string{smallFile, largeFile}, 0)
		assert.Len(t, filtered, 2)
		assert.Equal(t, 0, skipped)
	})

	t.Run("negative limit", func(t *testing.T) {
		filtered, skipped := FilterBySize([]string{smallFile, largeFile}, -1)
		assert.Len(t, filtered, 2)
		assert.Equal(t, 0, skipped)
	})

	t.Run("with limit", func(t *testing.T) {
		filtered, skipped := FilterBySize([]string{smallFile, largeFile}, 100)
		require.Len(t, filtered, 1)
		assert.Equal(t, 1, skipped)
		assert.Equal(t, smallFile, filtered[0])
	})

	t.Run("with stat error", func(t *testing.T) {
		nonExistent := filepath.Join(tmpDir, "Nonexistent.sol")
		filtered, skipped := FilterBySize([]string{smallFile, nonExistent}, 100)
		assert.Len(t, filtered, 1)
		assert.Equal(t, 1, skipped)
	})
}

func TestIsWithinRoot(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		path string
		root string
		want bool
	}{
		{name: "same path", path: tmpDir, root: tmpDir, want: true},
		{name: "child path", path: filepath.Join(tmpDir, "subdir", "File.sol"), root: tmpDir, want: true},
		{name: "path outside root", path: "/some/other/path", root: tmpDir, want: false},
		{name: "parent path", path: filepath.Dir(tmpDir), root: tmpDir, want: false},
		{name: "similar prefix but different dir", path: tmpDir + "2/File.sol", root: tmpDir, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isWithinRoot(tt.path, tt.root))
		})
	}
}

func TestFindGitRoot(t *testing.T) {
	tmpDir := t.TempDir()
	assert.Equal(t, "", findGitRoot(tmpDir))

	gitDir := filepath.Join(tmpDir, ".git")
	require.NoError(t, os.Mkdir(gitDir, 0755))
	assert.Equal(t, tmpDir, findGitRoot(tmpDir))

	subDir := filepath.Join(tmpDir, "src", "pkg")
	require.NoError(t, os.MkdirAll(subDir, 0755))
	assert.Equal(t, tmpDir, findGitRoot(subDir))
}

func TestScanDirWithSymlinks(t *testing.T) {
	tmpDir := t.TempDir()

	realFile := filepath.Join(tmpDir, "Real.sol")
	require.NoError(t, os.WriteFile(realFile, []byte("pragma solidity ^0.8.0;\n"), 0644))

	symlinkPath := filepath.Join(tmpDir, "Link.sol")
	if err := os.Symlink(realFile, symlinkPath); err != nil {
		t.Skip("Symlinks not supported on this system")
	}

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)
	assert.NotEmpty(t, result, "should find at least the real file")
}

func TestScanDirWithUnresolvableSymlink(t *testing.T) {
	tmpDir := t.TempDir()

	symlinkPath := filepath.Join(tmpDir, "Dangling.sol")
	if err := os.Symlink("/nonexistent/path/file.sol", symlinkPath); err != nil {
		t.Skip("Symlinks not supported on this system")
	}

	realFile := filepath.Join(tmpDir, "Real.sol")
	require.NoError(t, os.WriteFile(realFile, []byte("pragma solidity ^0.8.0;\n"), 0644))

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, result, 1, "should skip the dangling symlink")
}

func TestScanDirWithSymlinkDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	realDir := filepath.Join(tmpDir, "real")
	require.NoError(t, os.Mkdir(realDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(realDir, "File.sol"), []byte("pragma solidity ^0.8.0;\n"), 0644))

	outsideDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outsideDir, "Outside.sol"), []byte("pragma solidity ^0.8.0;\n"), 0644))

	symlinkDir := filepath.Join(tmpDir, "linked")
	if err := os.Symlink(outsideDir, symlinkDir); err != nil {
		t.Skip("Symlinks not supported on this system")
	}

	s := NewScanner(nil)
	result, err := s.ScanDir(tmpDir)
	require.NoError(t, err)

	foundOutside := false
	for _, f := range result {
		if filepath.Base(f) == "Outside.sol" {
			foundOutside = true
		}
	}
	assert.False(t, foundOutside, "ScanDir() should not follow symlinks outside the root directory")
}
