package media

import (
	"path/filepath"
	"strings"
)

// Class identifies the broad media category of a source entry.
type Class int

const (
	ClassUnknown Class = iota
	ClassImage
	ClassVideo
)

func (c Class) String() string {
	switch c {
	case ClassImage:
		return "image"
	case ClassVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Candidate is a single source-directory entry considered for selection.
// Stem and Ext derive from Name; Ext is lower-case without the leading dot.
type Candidate struct {
	Path  string
	Name  string
	Stem  string
	Ext   string
	Class Class
}

// NewCandidate builds a Candidate for the named entry inside dir,
// classifying it against the provided extension sets.
func NewCandidate(dir, name string, sets Sets) Candidate {
	ext := NormalizeExt(filepath.Ext(name))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	return Candidate{
		Path:  filepath.Join(dir, name),
		Name:  name,
		Stem:  stem,
		Ext:   ext,
		Class: sets.Classify(ext),
	}
}

// Sets holds the extension tables driving media classification and
// raw-companion membership.
type Sets struct {
	images map[string]struct{}
	videos map[string]struct{}
	raws   map[string]struct{}
}

var (
	defaultImageExtensions = []string{"heic", "jpg", "jpeg", "png", "arw", "dng"}
	defaultVideoExtensions = []string{"mov", "mp4", "avi"}
	defaultRawExtensions   = []string{"arw", "cr2", "cr3", "nef", "raf", "dng", "orf", "rw2"}
)

// DefaultSets returns the built-in extension tables.
func DefaultSets() Sets {
	return NewSets(defaultImageExtensions, defaultVideoExtensions, defaultRawExtensions)
}

// DefaultExtensions returns copies of the built-in extension lists in
// image, video, raw order, for configuration defaults.
func DefaultExtensions() (images, videos, raws []string) {
	return append([]string(nil), defaultImageExtensions...),
		append([]string(nil), defaultVideoExtensions...),
		append([]string(nil), defaultRawExtensions...)
}

// NewSets builds extension tables from the provided lists. Entries are
// normalized, so values may carry a leading dot and mixed case.
func NewSets(images, videos, raws []string) Sets {
	return Sets{
		images: buildSet(images),
		videos: buildSet(videos),
		raws:   buildSet(raws),
	}
}

// Classify maps an extension to its media class. Image membership wins when
// an extension appears in both tables.
func (s Sets) Classify(ext string) Class {
	normalized := NormalizeExt(ext)
	if normalized == "" {
		return ClassUnknown
	}
	if _, ok := s.images[normalized]; ok {
		return ClassImage
	}
	if _, ok := s.videos[normalized]; ok {
		return ClassVideo
	}
	return ClassUnknown
}

// IsRaw reports whether the extension belongs to the raw-companion table.
func (s Sets) IsRaw(ext string) bool {
	_, ok := s.raws[NormalizeExt(ext)]
	return ok
}

// NormalizeExt lowercases an extension and strips any leading dot.
func NormalizeExt(value string) string {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimPrefix(trimmed, ".")
	return strings.ToLower(trimmed)
}

func buildSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := NormalizeExt(value)
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}
