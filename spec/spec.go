// Package spec loads the YAML build description the rpm drivers consume — this
// module's analogue of a .spec file, standing in for manifest.Package /
// manifest.Repository's role in the teacher (SPEC_FULL.md §3, §10).
package spec

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Script names a shell fragment attached to one of the four lifecycle hooks.
type Script struct {
	PreIn  string `yaml:"pre_install,omitempty"`
	PostIn string `yaml:"post_install,omitempty"`
	PreUn  string `yaml:"pre_uninstall,omitempty"`
	PostUn string `yaml:"post_uninstall,omitempty"`
}

// SubPackage is one binary or source output the build produces.
type SubPackage struct {
	// Name, if empty, defaults to the base package's Name; non-empty names
	// become NAME-SUBNAME on disk (SPEC_FULL.md §4.7).
	Name string `yaml:"name,omitempty"`

	// FullName, if set, replaces the base package's Name entirely rather than
	// being appended as a suffix; it takes priority over Name (SPEC_FULL.md §3,
	// §4.7).
	FullName string `yaml:"full_name,omitempty"`

	// Files holds one %files-style line per entry (SPEC_FULL.md §4.1).
	Files []string `yaml:"files"`

	Summary     string `yaml:"summary,omitempty"`
	Description string `yaml:"description,omitempty"`
	Group       string `yaml:"group,omitempty"`

	Icon string `yaml:"icon,omitempty"`

	Scripts Script `yaml:"scripts,omitempty"`
}

// Spec is the parsed build description for one source package and the set of
// binary/source sub-packages it produces.
type Spec struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Release string `yaml:"release"`
	License string `yaml:"license,omitempty"`
	Summary string `yaml:"summary,omitempty"`

	// Sources lists paths, relative to the spec file unless absolute, symlinked
	// into the source package's staging directory (SPEC_FULL.md §4.8).
	Sources []string `yaml:"sources,omitempty"`

	// Defines are string variables substituted into every string field listed
	// above via {{ }} placeholders (SPEC_FULL.md §3's "Spec file" addition).
	Defines map[string]string `yaml:"defines,omitempty"`

	Packages []SubPackage `yaml:"packages"`

	// Path is the filesystem location the spec was loaded from, recorded for
	// resolving Sources and for inclusion in the source package's file list.
	Path string `yaml:"-"`
}

// Load reads and parses a YAML spec file, then resolves every {{ }} placeholder
// against Defines.
func Load(path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("spec: reading %s: %w", path, err)
	}
	var s Spec
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("spec: parsing %s: %w", path, err)
	}
	s.Path = path
	if err := s.render(); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("spec: name is required")
	}
	if s.Version == "" {
		return fmt.Errorf("spec: version is required")
	}
	if s.Release == "" {
		return fmt.Errorf("spec: release is required")
	}
	return nil
}

// OutputName returns the on-disk base name for sub: sub.FullName if set, else
// s.Name-sub.Name if sub.Name is set, else the bare base name (SPEC_FULL.md §4.7).
func (s *Spec) OutputName(sub SubPackage) string {
	if sub.FullName != "" {
		return sub.FullName
	}
	if sub.Name == "" {
		return s.Name
	}
	return s.Name + "-" + sub.Name
}
