package driver

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// Source produces program text for the loader.
type Source interface {
	Name() string
	Read(ctx context.Context) (path string, text string, err error)
}

// FileSource reads a program from the local filesystem.
type FileSource struct {
	Label string
	Path  string
}

// Name returns the label, or the file stem when no label is set.
func (s FileSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return programNameFromPath(s.Path)
}

func (s FileSource) Read(ctx context.Context) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return s.Path, "", err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return s.Path, "", fmt.Errorf("read %s: %w", s.Path, err)
	}
	return s.Path, string(data), nil
}

// GitSource reads a program from a file inside a git repository, pinned to a
// revision, tag, or branch. The repository is cloned into memory.
type GitSource struct {
	Label  string
	URL    string
	Rev    string
	Tag    string
	Branch string
	Path   string
}

func (s GitSource) Name() string {
	if s.Label != "" {
		return s.Label
	}
	return programNameFromPath(s.Path)
}

// Display renders the source as url@ref:path for diagnostics.
func (s GitSource) Display() string {
	_, descriptor, err := s.revision()
	if err != nil {
		descriptor = "?"
	}
	return fmt.Sprintf("%s@%s:%s", s.URL, descriptor, s.Path)
}

func (s GitSource) Read(ctx context.Context) (string, string, error) {
	display := s.Display()
	revision, _, err := s.revision()
	if err != nil {
		return display, "", err
	}

	fs := memfs.New()
	repo, err := git.CloneContext(ctx, memory.NewStorage(), fs, &git.CloneOptions{
		URL:  s.URL,
		Tags: git.AllTags,
	})
	if err != nil {
		return display, "", fmt.Errorf("git clone %s: %w", s.URL, err)
	}

	hash, err := repo.ResolveRevision(revision)
	if err != nil {
		return display, "", fmt.Errorf("resolve revision %s: %w", revision, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return display, "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{
		Hash:  *hash,
		Force: true,
	}); err != nil {
		return display, "", fmt.Errorf("git checkout %s: %w", revision, err)
	}

	rel := path.Clean(filepath.ToSlash(strings.TrimSpace(s.Path)))
	data, err := util.ReadFile(worktree.Filesystem, rel)
	if err != nil {
		return display, "", fmt.Errorf("read %s at %s: %w", rel, hash.String()[:7], err)
	}
	return display, string(data), nil
}

// Remote branches land under refs/remotes/origin after a clone, so branch
// names resolve there rather than under refs/heads.
func (s GitSource) revision() (plumbing.Revision, string, error) {
	if rev := strings.TrimSpace(s.Rev); rev != "" {
		return plumbing.Revision(rev), rev, nil
	}
	if tag := strings.TrimSpace(s.Tag); tag != "" {
		return plumbing.Revision("refs/tags/" + tag), tag, nil
	}
	if branch := strings.TrimSpace(s.Branch); branch != "" {
		return plumbing.Revision("refs/remotes/origin/" + branch), branch, nil
	}
	return "", "", fmt.Errorf("git sources require rev, tag, or branch")
}

// ProgramsFromManifest converts manifest entries into sources. Relative file
// paths resolve against the manifest directory.
func ProgramsFromManifest(m *Manifest) []Source {
	if m == nil {
		return nil
	}
	dir := m.Dir()
	sources := make([]Source, 0, len(m.Programs))
	for _, prog := range m.Programs {
		if prog == nil {
			continue
		}
		if prog.IsGit() {
			url := prog.Git
			if isLocalPath(url) && !filepath.IsAbs(url) {
				url = filepath.Join(dir, url)
			}
			sources = append(sources, GitSource{
				Label:  prog.Name,
				URL:    url,
				Rev:    prog.Rev,
				Tag:    prog.Tag,
				Branch: prog.Branch,
				Path:   prog.Path,
			})
			continue
		}
		p := prog.Path
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		sources = append(sources, FileSource{Label: prog.Name, Path: p})
	}
	return sources
}

func isLocalPath(url string) bool {
	return !strings.Contains(url, "://") && !strings.Contains(url, "@")
}
