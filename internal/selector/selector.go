// Package selector picks the input file a run processes.
package selector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"birmerge/internal/domain"
)

type candidate struct {
	name    string
	modTime time.Time
}

// Selector picks one regular file with a given suffix from a directory
// according to its policy. It implements port.InputSelector.
type Selector struct {
	policy domain.SelectionPolicy
}

// New creates a Selector. An empty policy means lexicographic.
func New(policy domain.SelectionPolicy) (*Selector, error) {
	if policy == "" {
		policy = domain.SelectionLexicographic
	}
	if !domain.ValidSelectionPolicies[policy] {
		return nil, fmt.Errorf("%w: unknown selection policy %q", domain.ErrInvalidConfig, policy)
	}
	return &Selector{policy: policy}, nil
}

// Select returns the path of the chosen file. Lexicographic picks the first
// name in sorted order; newest picks the latest modification time, breaking
// ties by name.
func (s *Selector) Select(dir, suffix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: directory %s does not exist", domain.ErrNoInput, dir)
		}
		return "", fmt.Errorf("%w: listing %s: %w", domain.ErrFileIO, dir, err)
	}

	var matches []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		matches = append(matches, candidate{name: e.Name(), modTime: info.ModTime()})
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: no %q files in %s", domain.ErrNoInput, suffix, dir)
	}

	switch s.policy {
	case domain.SelectionNewest:
		sort.Slice(matches, func(i, j int) bool {
			if !matches[i].modTime.Equal(matches[j].modTime) {
				return matches[i].modTime.After(matches[j].modTime)
			}
			return matches[i].name < matches[j].name
		})
	default:
		sort.Slice(matches, func(i, j int) bool { return matches[i].name < matches[j].name })
	}

	return filepath.Join(dir, matches[0].name), nil
}
