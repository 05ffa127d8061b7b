package rpm

import (
	"encoding/json"
	"fmt"
)

// Listener receives structured build events. Adapted from the teacher's
// manifest.Listener (func(fmt.Stringer)) pattern, repurposed with event types for
// this domain.
type Listener func(Event)

// Event is a structured, JSON-renderable build notification.
type Event interface {
	fmt.Stringer
	SessionID() string
}

func jsonString(sessionID string, v any) string {
	b, _ := json.Marshal(map[string]any{
		"session": sessionID,
		fmt.Sprintf("%T", v): v,
	})
	return string(b)
}

// EventManifestExpanded is emitted after a sub-package's file list has been
// expanded, sorted and populated into a header.
type EventManifestExpanded struct {
	Session      string `json:"-"`
	Package      string `json:"package"`
	FileCount    int    `json:"file_count"`
	InstalledSize int64 `json:"installed_size"`
}

func (e EventManifestExpanded) String() string    { return jsonString(e.Session, e) }
func (e EventManifestExpanded) SessionID() string { return e.Session }

// EventPackageWritten is emitted once an output file has been fully written.
type EventPackageWritten struct {
	Session string `json:"-"`
	Path    string `json:"path"`
	Kind    string `json:"kind"` // "binary" or "source"
}

func (e EventPackageWritten) String() string    { return jsonString(e.Session, e) }
func (e EventPackageWritten) SessionID() string { return e.Session }

// EventSubPackageSkipped is emitted for a sub-package with no declared file list
// (SPEC_FULL.md §8: "Sub-packages with no declared file list produce no output.").
type EventSubPackageSkipped struct {
	Session string `json:"-"`
	Name    string `json:"name"`
}

func (e EventSubPackageSkipped) String() string    { return jsonString(e.Session, e) }
func (e EventSubPackageSkipped) SessionID() string { return e.Session }

// EventArchiveStreamed is emitted after the archiver/compressor pipeline completes
// successfully for one output file.
type EventArchiveStreamed struct {
	Session   string `json:"-"`
	Path      string `json:"path"`
	FileCount int    `json:"file_count"`
}

func (e EventArchiveStreamed) String() string    { return jsonString(e.Session, e) }
func (e EventArchiveStreamed) SessionID() string { return e.Session }

// EventBadSpec describes a driver abort caused by a BadSpecError. The drivers in
// this package do not emit it; they return the BadSpecError only.
type EventBadSpec struct {
	Session string `json:"-"`
	Reason  string `json:"reason"`
}

func (e EventBadSpec) String() string    { return jsonString(e.Session, e) }
func (e EventBadSpec) SessionID() string { return e.Session }
