package companion_test

import (
	"testing"

	"cull/internal/companion"
	"cull/internal/media"
	"cull/internal/scan"
)

func buildFixture(names ...string) ([]media.Candidate, scan.Index) {
	sets := media.DefaultSets()
	candidates := make([]media.Candidate, 0, len(names))
	index := make(scan.Index)
	for _, name := range names {
		c := media.NewCandidate("/photos", name, sets)
		candidates = append(candidates, c)
		index[c.Stem] = append(index[c.Stem], c)
	}
	return candidates, index
}

func byName(candidates []media.Candidate, name string) media.Candidate {
	for _, c := range candidates {
		if c.Name == name {
			return c
		}
	}
	return media.Candidate{}
}

func selectionNames(selection []media.Candidate) []string {
	out := make([]string, 0, len(selection))
	for _, c := range selection {
		out = append(out, c.Name)
	}
	return out
}

func TestResolveInheritsRawSiblings(t *testing.T) {
	candidates, index := buildFixture("IMG001.ARW", "IMG001.jpg", "IMG001.png", "IMG002.jpg")
	primary := byName(candidates, "IMG001.jpg")

	r := companion.Resolver{Index: index, Sets: media.DefaultSets(), MatchRaws: true}
	selection, inherited := r.Resolve(candidates, []media.Candidate{primary})

	got := selectionNames(selection)
	want := []string{"IMG001.ARW", "IMG001.jpg"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("selection = %v, want %v", got, want)
	}
	if !inherited[byName(candidates, "IMG001.ARW").Path] {
		t.Fatal("ARW sibling should be marked inherited")
	}
	for _, c := range selection {
		if c.Name == "IMG001.png" {
			t.Fatal("non-raw sibling must not be auto-included")
		}
	}
}

func TestResolveWithoutMatchRaws(t *testing.T) {
	candidates, index := buildFixture("IMG001.ARW", "IMG001.jpg")
	primary := byName(candidates, "IMG001.jpg")

	r := companion.Resolver{Index: index, Sets: media.DefaultSets()}
	selection, inherited := r.Resolve(candidates, []media.Candidate{primary})

	if len(selection) != 1 || selection[0].Name != "IMG001.jpg" {
		t.Fatalf("selection = %v, want [IMG001.jpg]", selectionNames(selection))
	}
	if len(inherited) != 0 {
		t.Fatalf("no candidates should be inherited, got %v", inherited)
	}
}

func TestResolvePrimaryRawNotDuplicated(t *testing.T) {
	candidates, index := buildFixture("IMG001.ARW", "IMG001.jpg")
	jpg := byName(candidates, "IMG001.jpg")
	arw := byName(candidates, "IMG001.ARW")

	r := companion.Resolver{Index: index, Sets: media.DefaultSets(), MatchRaws: true}
	selection, inherited := r.Resolve(candidates, []media.Candidate{arw, jpg})

	if len(selection) != 2 {
		t.Fatalf("selection = %v, want two entries", selectionNames(selection))
	}
	if inherited[arw.Path] {
		t.Fatal("a raw file that is itself a primary match must not be marked inherited")
	}
}

func TestResolveExclusionGatesInheritance(t *testing.T) {
	candidates, index := buildFixture("IMG001.ARW", "IMG001.jpg")
	primary := byName(candidates, "IMG001.jpg")

	r := companion.Resolver{
		Index:     index,
		Sets:      media.DefaultSets(),
		MatchRaws: true,
		Selectable: func(c media.Candidate) bool {
			return c.Ext != "arw"
		},
	}
	selection, _ := r.Resolve(candidates, []media.Candidate{primary})

	if len(selection) != 1 || selection[0].Name != "IMG001.jpg" {
		t.Fatalf("selection = %v, want [IMG001.jpg]", selectionNames(selection))
	}
}

func TestResolveEnumerationOrder(t *testing.T) {
	candidates, index := buildFixture("A001.ARW", "A001.jpg", "B002.ARW", "B002.jpg")
	r := companion.Resolver{Index: index, Sets: media.DefaultSets(), MatchRaws: true}

	// Primaries supplied out of enumeration order.
	primaries := []media.Candidate{byName(candidates, "B002.jpg"), byName(candidates, "A001.jpg")}
	selection, _ := r.Resolve(candidates, primaries)

	got := selectionNames(selection)
	want := []string{"A001.ARW", "A001.jpg", "B002.ARW", "B002.jpg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("selection order = %v, want %v", got, want)
		}
	}
}

func TestResolveSharedStemAcrossPrimaries(t *testing.T) {
	candidates, index := buildFixture("IMG001.ARW", "IMG001.heic", "IMG001.jpg")
	jpg := byName(candidates, "IMG001.jpg")
	heic := byName(candidates, "IMG001.heic")

	r := companion.Resolver{Index: index, Sets: media.DefaultSets(), MatchRaws: true}
	selection, _ := r.Resolve(candidates, []media.Candidate{heic, jpg})

	if len(selection) != 3 {
		t.Fatalf("selection = %v, want three entries", selectionNames(selection))
	}
}
