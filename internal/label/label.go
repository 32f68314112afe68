// Package label stores the keep label on selected files as an
// extended attribute so downstream tools can find it without a
// sidecar database.
package label

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Attr is the extended attribute name that carries the label value.
const Attr = "user.xmp.label"

// Xattr writes labels with setxattr on the destination file.
type Xattr struct{}

// Apply stores value under Attr on path.
func (Xattr) Apply(path, value string) error {
	if err := unix.Setxattr(path, Attr, []byte(value), 0); err != nil {
		return fmt.Errorf("set %s on %s: %w", Attr, path, err)
	}
	return nil
}

// Read returns the label stored on path, or "" when none is set.
func Read(path string) (string, error) {
	buf := make([]byte, 256)
	size, err := unix.Getxattr(path, Attr, buf)
	if err != nil {
		if errors.Is(err, unix.ENODATA) {
			return "", nil
		}
		return "", fmt.Errorf("read %s from %s: %w", Attr, path, err)
	}
	return string(buf[:size]), nil
}
