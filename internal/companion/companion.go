package companion

import (
	"cull/internal/media"
	"cull/internal/scan"
)

// Resolver expands primary matches with their raw-format siblings.
type Resolver struct {
	Index     scan.Index
	Sets      media.Sets
	MatchRaws bool
	// Selectable is the exclusion gate; inherited siblings it rejects stay
	// out of the selection. Nil admits everything.
	Selectable func(media.Candidate) bool
}

// Resolve builds the final selection set from the primary matches. With
// MatchRaws, every sibling sharing a primary's stem whose extension is in
// the raw table joins the selection, inherited rather than independently
// evaluated. The result keeps directory-enumeration order (candidates is the
// enumeration sequence) and contains no duplicates. The returned map marks
// the paths that were inherited.
func (r Resolver) Resolve(candidates, primaries []media.Candidate) ([]media.Candidate, map[string]bool) {
	selected := make(map[string]bool, len(primaries))
	inherited := make(map[string]bool)
	for _, primary := range primaries {
		selected[primary.Path] = true
	}

	if r.MatchRaws {
		for _, primary := range primaries {
			for _, sibling := range r.Index.Siblings(primary.Stem) {
				if selected[sibling.Path] {
					continue
				}
				if !r.Sets.IsRaw(sibling.Ext) {
					continue
				}
				if r.Selectable != nil && !r.Selectable(sibling) {
					continue
				}
				selected[sibling.Path] = true
				inherited[sibling.Path] = true
			}
		}
	}

	selection := make([]media.Candidate, 0, len(selected))
	for _, candidate := range candidates {
		if selected[candidate.Path] {
			selection = append(selection, candidate)
		}
	}
	return selection, inherited
}
