package report

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// CaptureTime reads the EXIF capture timestamp from path. It is
// best-effort: files without EXIF data (raw formats the decoder does
// not understand, videos, sidecars) report false and the row simply
// omits the timestamp.
func CaptureTime(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, false
	}
	taken, err := meta.DateTime()
	if err != nil {
		return time.Time{}, false
	}
	return taken, true
}
