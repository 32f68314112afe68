package preflight

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects which checks apply to a run.
type Options struct {
	// Source is the directory the run enumerates.
	Source string
	// MutatesSource is set for actions that unlink entries from the
	// source, which needs write access on the directory itself.
	MutatesSource bool
	// Dest is the destination directory, or "" when the action
	// writes nothing.
	Dest string
	// ExifTool is the decoder binary to resolve, or "" when the
	// built-in scan decoder is active.
	ExifTool string
}

// RunAll executes all applicable checks for the given options.
func RunAll(opts Options) []Result {
	results := []Result{CheckSourceDirectory(opts.Source, opts.MutatesSource)}
	if opts.Dest != "" {
		results = append(results, CheckDestinationDirectory(opts.Dest))
	}
	if opts.ExifTool != "" {
		results = append(results, CheckExifTool(opts.ExifTool))
	}
	return results
}

// Failures returns the subset of results that did not pass.
func Failures(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
