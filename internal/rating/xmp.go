package rating

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"regexp"
	"strconv"
)

// XMP packets commonly sit near the end of the file for video containers and
// near the start for JPEG/PNG, so the scanner checks a bounded tail window
// first and then a bounded prefix. Files whose packet lies outside both
// windows report an absent rating rather than an error.
const (
	xmpStartMarker = "<x:xmpmeta"
	xmpEndMarker   = "</x:xmpmeta>"

	tailWindowSize = 1 << 20 // 1 MiB
	headScanLimit  = 4 << 20 // 4 MiB
)

var (
	ratingAttrPattern    = regexp.MustCompile(`xmp:Rating\s*=\s*["']\s*(-?\d+)\s*["']`)
	ratingElementPattern = regexp.MustCompile(`<xmp:Rating>\s*(-?\d+)\s*</xmp:Rating>`)
)

// ScanDecoder reads the rating from an embedded XMP packet without any
// external tooling. A missing packet or missing xmp:Rating property is an
// absent result, not an error.
type ScanDecoder struct{}

// NewScanDecoder returns the built-in XMP packet decoder.
func NewScanDecoder() *ScanDecoder {
	return &ScanDecoder{}
}

func (d *ScanDecoder) Rating(_ context.Context, path string) (Result, error) {
	packet, err := extractPacket(path)
	if err != nil {
		return Result{}, err
	}
	if packet == nil {
		return Result{}, nil
	}
	value, ok := parseRating(packet)
	if !ok {
		return Result{}, nil
	}
	return Result{Value: value, Present: true}, nil
}

// extractPacket returns the first complete XMP packet within the scan
// windows, or nil when none is found.
func extractPacket(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	// Small files are searched in one read.
	if size <= headScanLimit+tailWindowSize {
		buf, err := readRange(file, 0, size)
		if err != nil {
			return nil, err
		}
		return packetIn(buf), nil
	}

	tail, err := readRange(file, size-tailWindowSize, tailWindowSize)
	if err != nil {
		return nil, err
	}
	if packet := packetIn(tail); packet != nil {
		return packet, nil
	}

	head, err := readRange(file, 0, headScanLimit)
	if err != nil {
		return nil, err
	}
	return packetIn(head), nil
}

func readRange(file *os.File, offset, length int64) ([]byte, error) {
	buf := make([]byte, length)
	n, err := file.ReadAt(buf, offset)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}

func packetIn(buf []byte) []byte {
	start := bytes.Index(buf, []byte(xmpStartMarker))
	if start < 0 {
		return nil
	}
	rest := buf[start:]
	end := bytes.Index(rest, []byte(xmpEndMarker))
	if end < 0 {
		return nil
	}
	return rest[:end+len(xmpEndMarker)]
}

// parseRating accepts the two shapes writers produce: the RDF attribute form
// (xmp:Rating="5") and the element form (<xmp:Rating>5</xmp:Rating>).
// Values are signed; XMP uses -1 for "rejected".
func parseRating(packet []byte) (int, bool) {
	if m := ratingAttrPattern.FindSubmatch(packet); m != nil {
		return atoiMatch(m[1])
	}
	if m := ratingElementPattern.FindSubmatch(packet); m != nil {
		return atoiMatch(m[1])
	}
	return 0, false
}

func atoiMatch(raw []byte) (int, bool) {
	value, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, false
	}
	return value, true
}
