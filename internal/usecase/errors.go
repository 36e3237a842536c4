package usecase

import "errors"

// ErrNotOwner indicates an authenticated caller who is not the owner of the
// requested resource. Ownership failures are only reachable once the
// resource is confirmed to exist.
var ErrNotOwner = errors.New("access to this resource is not allowed")
