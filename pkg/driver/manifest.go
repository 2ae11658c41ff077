package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the manifest looked up in the working directory.
const ManifestFileName = "mlua.yml"

// Manifest represents the parsed contents of mlua.yml: an ordered list of
// independent programs to run.
type Manifest struct {
	Path        string
	Name        string
	SharedStore bool
	Programs    []*ProgramSpec
}

// ProgramSpec describes one program entry. Exactly one of a plain path or a
// git source (Git plus one of Rev/Tag/Branch, with Path inside the repo) is
// used.
type ProgramSpec struct {
	Name   string
	Path   string
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// IsGit reports whether the program is read from a git repository.
func (p *ProgramSpec) IsGit() bool {
	return p != nil && p.Git != ""
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses mlua.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	manifest, err := DecodeManifest(file)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		var validation *ValidationError
		if errors.As(err, &validation) {
			return nil, err
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	manifest.Path = absPath
	return manifest, nil
}

// DecodeManifest reads and validates a manifest from r. Unknown keys are
// rejected.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	manifest := raw.toManifest()
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// Dir returns the directory relative program paths resolve against.
func (m *Manifest) Dir() string {
	if m == nil || m.Path == "" {
		return "."
	}
	return filepath.Dir(m.Path)
}

// FindProgram looks up a program by name; the query is sanitized the same
// way manifest names are.
func (m *Manifest) FindProgram(name string) (*ProgramSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := sanitizeSegment(name)
	for _, prog := range m.Programs {
		if prog != nil && strings.EqualFold(prog.Name, key) {
			return prog, true
		}
	}
	return nil, false
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if len(m.Programs) == 0 {
		errs.Issues = append(errs.Issues, "programs must list at least one program")
	}
	seen := make(map[string]int, len(m.Programs))
	for i, prog := range m.Programs {
		if prog == nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs[%d] must not be empty", i))
			continue
		}
		if prog.Path == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs[%d] requires a path", i))
		}
		if prog.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs[%d] requires a name", i))
		} else if first, exists := seen[prog.Name]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs[%d] and programs[%d] share the name %q", first, i, prog.Name))
		} else {
			seen[prog.Name] = i
		}
		for _, issue := range prog.validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s: %s", prog.Name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func (p *ProgramSpec) validate() []string {
	var errs []string
	refs := 0
	for _, ref := range []string{p.Rev, p.Tag, p.Branch} {
		if ref != "" {
			refs++
		}
	}
	switch {
	case p.Git == "" && refs > 0:
		errs = append(errs, "rev, tag and branch apply only to git programs")
	case p.Git != "" && refs == 0:
		errs = append(errs, "git programs require rev, tag, or branch")
	case refs > 1:
		errs = append(errs, "specify only one of rev, tag, or branch")
	}
	if p.Git != "" && filepath.IsAbs(p.Path) {
		errs = append(errs, "git program paths must be relative to the repository root")
	}
	return errs
}

type manifestFile struct {
	Name        string      `yaml:"name"`
	SharedStore bool        `yaml:"shared_store"`
	Programs    programList `yaml:"programs"`
}

type programList []*ProgramSpec

func (pl *programList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*pl = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*pl = nil
			return nil
		}
		return fmt.Errorf("manifest: programs must be a sequence")
	case yaml.AliasNode:
		return pl.UnmarshalYAML(value.Alias)
	case yaml.SequenceNode:
	default:
		return fmt.Errorf("manifest: programs must be a sequence")
	}
	items := make(programList, 0, len(value.Content))
	for i, node := range value.Content {
		spec := new(ProgramSpec)
		if err := spec.unmarshalYAML(node); err != nil {
			return fmt.Errorf("manifest: programs[%d]: %w", i, err)
		}
		items = append(items, spec)
	}
	*pl = items
	return nil
}

func (p *ProgramSpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*p = ProgramSpec{}
			return nil
		}
		*p = ProgramSpec{Path: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Name   string `yaml:"name"`
			Path   string `yaml:"path"`
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*p = ProgramSpec{
			Name:   strings.TrimSpace(raw.Name),
			Path:   strings.TrimSpace(raw.Path),
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
		}
		return nil
	case yaml.AliasNode:
		return p.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest() *Manifest {
	result := &Manifest{
		Name:        sanitizeSegment(mf.Name),
		SharedStore: mf.SharedStore,
		Programs:    make([]*ProgramSpec, 0, len(mf.Programs)),
	}
	for _, prog := range mf.Programs {
		if prog == nil {
			result.Programs = append(result.Programs, nil)
			continue
		}
		spec := *prog
		if spec.Name == "" {
			spec.Name = programNameFromPath(spec.Path)
		}
		spec.Name = sanitizeSegment(spec.Name)
		result.Programs = append(result.Programs, &spec)
	}
	return result
}

func programNameFromPath(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(filepath.ToSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sanitizeSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.ReplaceAll(seg, "-", "_")
	seg = strings.ReplaceAll(seg, " ", "_")
	return seg
}
