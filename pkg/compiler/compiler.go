// Package compiler implements the Compiler Adapter: locating or installing
// the solc version a file's pragma declares, and driving it to produce an
// AST. The compiler itself is an external collaborator reached by shelling
// out to a solc-compatible binary; no compiler internals are reimplemented
// here.
package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/omensec/solsca/pkg/ast"
	"github.com/omensec/solsca/pkg/config"
	"github.com/omensec/solsca/pkg/models"
	"github.com/omensec/solsca/pkg/source"
)

// Adapter parses Solidity source into an AST via an external solc binary.
type Adapter struct {
	cfg *config.CompilerConfig
}

// New creates an Adapter from the given compiler configuration. A nil cfg
// falls back to config.DefaultConfig().Compiler.
func New(cfg *config.CompilerConfig) *Adapter {
	if cfg == nil {
		defaults := config.DefaultConfig().Compiler
		cfg = &defaults
	}
	return &Adapter{cfg: cfg}
}

// Parse attempts to produce an AST for snap. A nil Node with a nil error
// means the caller should fall back to text-only analysis (§7:
// CompilerUnavailable / ParseError are both non-fatal). The returned error
// is always nil: a cancelled or timed-out context also yields nil, nil.
func (a *Adapter) Parse(ctx context.Context, snap *source.Snapshot) (*ast.Node, error) {
	timeout := a.cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bin, err := a.resolveBinary(ctx, snap.Version)
	if err != nil {
		return nil, nil //nolint:nilerr // compiler unavailable degrades to text-only, per §7
	}

	root, err := a.compile(ctx, bin, snap)
	if err != nil {
		return nil, nil //nolint:nilerr // parse failure degrades to text-only, per §7
	}
	return root, nil
}

// InstalledVersions probes the configured search paths for solc-compatible
// binaries and returns the versions they report.
func (a *Adapter) InstalledVersions(ctx context.Context) []string {
	var versions []string
	for _, dir := range a.searchDirs() {
		matches, _ := filepath.Glob(filepath.Join(dir, "solc*"))
		for _, bin := range matches {
			if v, err := probeVersion(ctx, bin); err == nil {
				versions = append(versions, v)
			}
		}
	}
	return versions
}

// Install attempts to fetch the requested compiler version via the
// configured install command. Returns ErrCompilerUnavailable when no
// install command is configured.
func (a *Adapter) Install(ctx context.Context, version string) error {
	if a.cfg.InstallCommand == "" {
		return fmt.Errorf("%w: no install command configured for solc %s", models.ErrCompilerUnavailable, version)
	}
	cmd := exec.CommandContext(ctx, a.cfg.InstallCommand, version)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: installing solc %s: %s", models.ErrCompilerUnavailable, version, stderr.String())
	}
	return nil
}

func (a *Adapter) searchDirs() []string {
	if len(a.cfg.SearchPaths) > 0 {
		return a.cfg.SearchPaths
	}
	return []string{"/usr/local/bin", "/usr/bin"}
}

// resolveBinary finds a usable solc binary for the requested version,
// attempting installation once if none is found and an install command is
// configured.
func (a *Adapter) resolveBinary(ctx context.Context, version string) (string, error) {
	if a.cfg.BinaryPath != "" {
		if _, err := probeVersion(ctx, a.cfg.BinaryPath); err == nil {
			return a.cfg.BinaryPath, nil
		}
	}

	candidates := []string{"solc-" + version, "solc"}
	for _, dir := range a.searchDirs() {
		for _, name := range candidates {
			bin := filepath.Join(dir, name)
			if _, err := probeVersion(ctx, bin); err == nil {
				return bin, nil
			}
		}
	}

	if err := a.Install(ctx, version); err != nil {
		return "", err
	}
	for _, dir := range a.searchDirs() {
		bin := filepath.Join(dir, "solc-"+version)
		if _, err := probeVersion(ctx, bin); err == nil {
			return bin, nil
		}
	}
	return "", fmt.Errorf("%w: no solc binary for version %s", models.ErrCompilerUnavailable, version)
}

func probeVersion(ctx context.Context, bin string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, "--version")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// solcInput is the minimal Solidity Standard JSON input requesting only the
// AST output.
type solcInput struct {
	Language string                    `json:"language"`
	Sources  map[string]solcInputFile  `json:"sources"`
	Settings solcInputSettings         `json:"settings"`
}

type solcInputFile struct {
	Content string `json:"content"`
}

type solcInputSettings struct {
	OutputSelection map[string]map[string][]string `json:"outputSelection"`
}

// compile drives bin over Standard JSON and returns the first source file's
// AST root.
func (a *Adapter) compile(ctx context.Context, bin string, snap *source.Snapshot) (*ast.Node, error) {
	input := solcInput{
		Language: "Solidity",
		Sources:  map[string]solcInputFile{snap.Filename: {Content: snap.Text}},
		Settings: solcInputSettings{
			OutputSelection: map[string]map[string][]string{
				"*": {"": {"ast"}},
			},
		},
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding solc input: %v", models.ErrParse, err)
	}

	cmd := exec.CommandContext(ctx, bin, "--standard-json")
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: invoking %s: %s", models.ErrParse, bin, stderr.String())
	}

	var result struct {
		Sources map[string]struct {
			AST json.RawMessage `json:"ast"`
		} `json:"sources"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("%w: decoding solc output: %v", models.ErrParse, err)
	}
	for _, src := range result.Sources {
		if len(src.AST) == 0 {
			continue
		}
		return ast.Parse(src.AST)
	}
	return nil, fmt.Errorf("%w: solc produced no AST", models.ErrParse)
}

// ParseVersion parses a "X.Y.Z" pragma-derived version string.
func ParseVersion(version string) (*semver.Version, error) {
	return semver.NewVersion(version)
}

// IsBelowV080 reports whether version is strictly below 0.8.0, the pragma
// gate used by the integer-overflow detector. Unparseable versions (e.g.
// "unknown") are treated as below the gate, since an unknown compiler
// cannot be assumed to have checked arithmetic.
func IsBelowV080(version string) bool {
	v, err := ParseVersion(version)
	if err != nil {
		return true
	}
	gate := semver.MustParse("0.8.0")
	return v.LessThan(gate)
}
