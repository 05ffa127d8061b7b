package rpm

import "fmt"

// BadSpecError reports a malformed or incomplete spec/manifest, per SPEC_FULL.md §7's
// "Bad specification" taxonomy entry: a missing version/release tag, a binary-mode
// path without a leading slash, or a manifest file missing on disk.
type BadSpecError struct {
	Reason string
}

func (e *BadSpecError) Error() string { return "bad spec: " + e.Reason }

func badSpecf(format string, args ...any) error {
	return &BadSpecError{Reason: fmt.Sprintf(format, args...)}
}

// ExecError reports a failed chdir, fork/exec, or a non-zero/signaled child process,
// per SPEC_FULL.md §7's "Execution failure" taxonomy entry.
type ExecError struct {
	Reason string
	Err    error
}

func (e *ExecError) Error() string {
	if e.Err != nil {
		return "exec failure: " + e.Reason + ": " + e.Err.Error()
	}
	return "exec failure: " + e.Reason
}
func (e *ExecError) Unwrap() error { return e.Err }

// LimitError reports that one of the module's growable-but-bounded containers
// (identity caches, doc-directory registry) exceeded its historical 1024-entry
// ceiling, per SPEC_FULL.md §7's "Internal limit" taxonomy entry.
type LimitError struct {
	What  string
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("internal limit exceeded: more than %d %s accumulated", e.Limit, e.What)
}
