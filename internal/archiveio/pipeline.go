// Package archiveio realizes the archive emitter's two-child-process pipeline
// (SPEC_FULL.md §4.6) using os/exec in place of the original's raw fork/exec/pipe
// sequence. The construct-then-wire-pipes-then-Start-then-Wait shape is grounded on
// the subprocess-invocation idiom in the example pack's conductor repo
// (internal/claude/invoker.go): build the *exec.Cmd explicitly, wire its Stdin/Stdout
// before Start, and translate a non-zero exit into a typed error the caller can
// inspect.
package archiveio

import (
	"fmt"
	"io"
	"os/exec"
)

// Pipeline streams a list of archive member names through an external archiver,
// piped into an external compressor whose output is appended to an already-open
// output file. It is the Go realization of §4.6's fork/exec/pipe sequence.
type Pipeline struct {
	// ArchiverPath and CompressorPath name the external programs to invoke.
	// They default to "cpio" and "gzip" via NewPipeline.
	ArchiverPath, CompressorPath string

	// Verbose selects the archiver's verbosity flag (-ov vs -o).
	Verbose bool

	// Dir is the working directory both children are started in: the staging
	// directory for source packages, the root-prefix override for binary
	// packages, or "/" when neither is configured (§4.6 step 2).
	Dir string

	// Staging is true when Dir is a staging directory (selects -LH over -H and
	// disables leading-slash stripping on emitted names, per §4.6 step 4).
	Staging bool
}

// NewPipeline returns a Pipeline with the default external program names.
func NewPipeline() *Pipeline {
	return &Pipeline{ArchiverPath: "cpio", CompressorPath: "gzip"}
}

// ExecError reports that a child process in the pipeline exited abnormally,
// corresponding to the "Execution failure" taxonomy entry in SPEC_FULL.md §7.
type ExecError struct {
	Program string
	Err     error
}

func (e *ExecError) Error() string { return fmt.Sprintf("%s: %v", e.Program, e.Err) }
func (e *ExecError) Unwrap() error { return e.Err }

// Run starts the archiver and compressor, feeds names (one per line, in order) into
// the archiver's stdin, pipes the archiver's stdout into the compressor's stdin, and
// writes the compressor's stdout into out. It waits for the archiver, then the
// compressor, in that order, per §4.6 step 5 and §5's ordering guarantee.
func (p *Pipeline) Run(out io.Writer, names []string) error {
	archiverFlag := "-o"
	if p.Verbose {
		archiverFlag = "-ov"
	}
	linkFlag := "-H"
	if p.Staging {
		linkFlag = "-LH"
	}

	archiver := exec.Command(p.ArchiverPath, archiverFlag, linkFlag, "crc")
	archiver.Dir = p.Dir

	archiverStdin, err := archiver.StdinPipe()
	if err != nil {
		return &ExecError{Program: p.ArchiverPath, Err: err}
	}
	archiverStdout, err := archiver.StdoutPipe()
	if err != nil {
		return &ExecError{Program: p.ArchiverPath, Err: err}
	}

	compressor := exec.Command(p.CompressorPath, "-c9fn")
	compressor.Dir = p.Dir
	compressor.Stdin = archiverStdout
	compressor.Stdout = out

	if err := archiver.Start(); err != nil {
		return &ExecError{Program: p.ArchiverPath, Err: err}
	}
	if err := compressor.Start(); err != nil {
		return &ExecError{Program: p.CompressorPath, Err: err}
	}

	for _, name := range names {
		if !p.Staging {
			name = stripLeadingSlash(name)
		}
		if _, err := io.WriteString(archiverStdin, name+"\n"); err != nil {
			archiverStdin.Close()
			return &ExecError{Program: p.ArchiverPath, Err: err}
		}
	}
	if err := archiverStdin.Close(); err != nil {
		return &ExecError{Program: p.ArchiverPath, Err: err}
	}

	if err := archiver.Wait(); err != nil {
		return &ExecError{Program: p.ArchiverPath, Err: err}
	}
	if err := compressor.Wait(); err != nil {
		return &ExecError{Program: p.CompressorPath, Err: err}
	}
	return nil
}

func stripLeadingSlash(name string) string {
	if len(name) > 0 && name[0] == '/' {
		return name[1:]
	}
	return name
}
