package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"cull/internal/deps"
)

// Check display names, also used by callers to classify failures.
const (
	SourceCheckName      = "Source directory"
	DestinationCheckName = "Destination directory"
)

// CheckSourceDirectory verifies that the source exists, is a directory,
// and can be listed. Actions that unlink entries also need write access
// on the directory itself.
func CheckSourceDirectory(path string, needWrite bool) Result {
	const name = SourceCheckName

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	if needWrite {
		mode |= unix.W_OK
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (access ok)", path)}
}

// CheckDestinationDirectory verifies that the destination exists, is a
// directory, and is writable.
func CheckDestinationDirectory(path string) Result {
	const name = DestinationCheckName

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
}

// CheckExifTool verifies that the exiftool binary resolves on PATH or
// at the configured location.
func CheckExifTool(binary string) Result {
	status := deps.CheckBinaries([]deps.Requirement{deps.ExifTool(binary)})[0]
	if status.Available {
		return Result{Name: status.Name, Passed: true, Detail: status.Command}
	}
	return Result{Name: status.Name, Detail: status.Detail}
}
