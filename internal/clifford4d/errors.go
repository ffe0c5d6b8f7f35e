package clifford4d

import "errors"

// ErrInvalidArgument is returned for non-positive particle counts, unknown color
// schemes and output buffers whose length does not match the point set.
var ErrInvalidArgument = errors.New("invalid argument")
