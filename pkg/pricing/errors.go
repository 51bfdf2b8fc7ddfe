package pricing

import "errors"

// ErrNilDescriptor indicates a calculator was constructed without a catalog
// snapshot. This is a programmer error, not a data condition.
var ErrNilDescriptor = errors.New("catalog descriptor cannot be nil")
