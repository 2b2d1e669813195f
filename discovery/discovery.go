// Package discovery locates feature files on disk. Discovery and
// read failures are hard errors: they abort the run instead of being
// recorded in suite state.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-zglob"
)

// Source supplies file paths and contents to the driver. It exists so
// tests can substitute an in-memory implementation.
type Source interface {
	// Discover returns the paths under root whose name carries the
	// given extension (e.g. ".feature"), sorted for deterministic
	// run order.
	Discover(root, ext string) ([]string, error)
	// ReadFile returns the full contents of path.
	ReadFile(path string) ([]byte, error)
}

type osSource struct {
	log log.Logger
}

// NewSource returns a Source backed by the local filesystem.
func NewSource(logger log.Logger) Source {
	if logger == nil {
		logger = log.New()
	}
	return &osSource{log: logger}
}

// Discover implements Source using recursive glob matching.
func (s *osSource) Discover(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("discovering in %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("discovering in %q: not a directory", root)
	}

	pattern := filepath.Join(root, "**", "*"+ext)
	matches, err := zglob.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", pattern, err)
	}

	// zglob's ** requires at least one intermediate directory, so
	// pick up files sitting directly under root as well.
	direct, err := filepath.Glob(filepath.Join(root, "*"+ext))
	if err != nil {
		return nil, fmt.Errorf("globbing %q: %w", root, err)
	}

	seen := make(map[string]struct{}, len(matches)+len(direct))
	var paths []string
	for _, m := range append(direct, matches...) {
		if !strings.HasSuffix(m, ext) {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		paths = append(paths, m)
	}
	sort.Strings(paths)

	s.log.Debug("Discovered files", "root", root, "ext", ext, "count", len(paths))
	return paths, nil
}

// ReadFile implements Source.
func (s *osSource) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return data, nil
}
