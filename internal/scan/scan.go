package scan

import (
	"fmt"
	"os"

	"cull/internal/media"
)

// Index maps a filename stem to the candidates sharing it, in enumeration
// order. Built once per run and read-only afterward.
type Index map[string][]media.Candidate

// Siblings returns all candidates sharing the given stem.
func (ix Index) Siblings(stem string) []media.Candidate {
	return ix[stem]
}

// Build enumerates the direct entries of dir and returns the candidates in
// enumeration order together with the stem index. Subdirectories are
// skipped; the listing never recurses. The returned error is non-nil only
// when the directory itself cannot be read.
func Build(dir string, sets media.Sets) ([]media.Candidate, Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read source directory %s: %w", dir, err)
	}

	candidates := make([]media.Candidate, 0, len(entries))
	index := make(Index, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		candidate := media.NewCandidate(dir, entry.Name(), sets)
		candidates = append(candidates, candidate)
		index[candidate.Stem] = append(index[candidate.Stem], candidate)
	}
	return candidates, index, nil
}
