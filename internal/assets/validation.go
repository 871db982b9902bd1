package assets

import (
	"fmt"
	"regexp"
)

// MaxAssetNameLength bounds style and template set names.
const MaxAssetNameLength = 50

// assetNamePattern admits names that are a single path element on every
// platform: no separators, no dots.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName checks that name can address styles/{name}.css or
// templates/{name}/. Returns ErrInvalidAssetName otherwise.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: %d chars, max %d", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	case !assetNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q (use letters, digits, '-' and '_')", ErrInvalidAssetName, name)
	}
	return nil
}
