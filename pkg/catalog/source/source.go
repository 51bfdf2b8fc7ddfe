// Package source loads catalog descriptors from their storage backends and
// watches them for changes.
package source

import (
	"context"
	"errors"

	"mosaic-hq/configurator/pkg/catalog"
)

// ErrNoCatalogs is returned when a source resolves to zero descriptors.
var ErrNoCatalogs = errors.New("source: no catalogs found")

// Source loads catalog descriptors. Implementations must be safe for
// concurrent use.
type Source interface {
	// Load returns every descriptor the source currently holds.
	Load(ctx context.Context) ([]*catalog.Descriptor, error)
}
