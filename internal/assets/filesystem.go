package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader loads a course's own assets from a directory laid out like
// the embedded ones: styles/{name}.css and templates/{name}/*.html.
type FilesystemLoader struct {
	root string // absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader rooted at basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	root, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	// Containment checks compare real paths, so the root must be one too.
	if real, err := filepath.EvalSymlinks(root); err == nil {
		root = real
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{root: root}, nil
}

// LoadStyle reads {root}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	file, err := f.resolve("styles", name+".css")
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(file) // #nosec G304 -- contained in root
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

// LoadTemplateSet reads the page templates of {root}/templates/{name}/.
// Each file is checked for containment on its own, so a symlinked page
// cannot point outside root either.
func (f *FilesystemLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	if _, err := f.resolve("templates", name); err != nil {
		return nil, err
	}

	return readTemplateSet(name, func(file string) ([]byte, error) {
		p, err := f.resolve("templates", name, file)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(p) // #nosec G304 -- contained in root
	})
}

// StyleNames lists the stylesheets under {root}/styles, nil when there is no
// such directory.
func (f *FilesystemLoader) StyleNames() []string {
	entries, err := os.ReadDir(filepath.Join(f.root, "styles"))
	if err != nil {
		return nil
	}
	return cssNames(entries)
}

// resolve joins parts under root and rejects a result that leaves it once
// symlinks are followed. Paths that do not exist are checked as written.
func (f *FilesystemLoader) resolve(parts ...string) (string, error) {
	p := filepath.Join(append([]string{f.root}, parts...)...)
	if real, err := filepath.EvalSymlinks(p); err == nil {
		p = real
	}
	if !strings.HasPrefix(p, f.root+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, filepath.Join(parts...), f.root)
	}
	return p, nil
}

var (
	_ AssetLoader = (*FilesystemLoader)(nil)
	_ StyleLister = (*FilesystemLoader)(nil)
)
