// Package archtab implements the architecture/OS identifier lookup SPEC_FULL.md §1
// treats as an out-of-scope external collaborator. No ecosystem library provides this
// mapping (see DESIGN.md); the one RPM-adjacent repo in the example pack hand-rolls
// an equivalent archMap rather than importing one.
package archtab

import "runtime"

// archCodes assigns each known runtime.GOARCH value a small integer code, the same
// role the original "architecture lookup" plays for the lead record and header tags.
var archCodes = map[string]int8{
	"386":     1,
	"amd64":   2,
	"arm":     3,
	"arm64":   4,
	"riscv64": 5,
	"ppc64":   6,
	"ppc64le": 7,
	"s390x":   8,
}

// osCodes assigns each known runtime.GOOS value a small integer code.
var osCodes = map[string]int8{
	"linux":   1,
	"darwin":  2,
	"freebsd": 3,
	"openbsd": 4,
	"windows": 5,
}

// ArchCode returns the numeric code for a GOARCH-style architecture name, or 0 for
// an architecture not in the table (the "unknown/noarch" code).
func ArchCode(arch string) int8 {
	return archCodes[arch]
}

// OSCode returns the numeric code for a GOOS-style OS name, or 0 if unknown.
func OSCode(os string) int8 {
	return osCodes[os]
}

// HostArchName returns the build machine's GOARCH-style architecture name.
func HostArchName() string { return runtime.GOARCH }

// HostOSName returns the build machine's GOOS-style OS name.
func HostOSName() string { return runtime.GOOS }

// HostArchCode returns the numeric code for the build machine's architecture.
func HostArchCode() int8 { return ArchCode(runtime.GOARCH) }

// HostOSCode returns the numeric code for the build machine's OS.
func HostOSCode() int8 { return OSCode(runtime.GOOS) }
