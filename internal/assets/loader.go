package assets

import (
	"io/fs"
	"strings"
)

// AssetLoader loads site stylesheets and page template sets by name.
type AssetLoader interface {
	// LoadStyle returns the CSS of styles/{name}.css.
	// Returns ErrStyleNotFound or ErrInvalidAssetName.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the page templates of templates/{name}/.
	// Returns ErrTemplateSetNotFound, ErrIncompleteTemplateSet or
	// ErrInvalidAssetName.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// StyleLister is implemented by loaders that can enumerate their styles.
type StyleLister interface {
	StyleNames() []string
}

// cssNames returns the names of the .css entries without their extension,
// in directory order.
func cssNames(entries []fs.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := strings.CutSuffix(e.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	return names
}
