// Package mediahost abstracts the external image-hosting service. The core
// only needs one operation: store a validated binary and hand back a durable
// delivery URL. The host's internal behavior (optimization, CDN fan-out) is
// its own concern.
package mediahost

import "context"

// Object is one validated upload heading to the host. Key is already
// content-addressed under the fixed "portfolio/" namespace.
type Object struct {
	Key         string
	ContentType string
	Body        []byte
}

// Result is what a successful store yields: the canonical delivery URL and
// the host-side identifier of the asset. Never an embedded copy of the bytes.
type Result struct {
	URL      string
	PublicID string
}

// Host stores objects with a remote media service.
type Host interface {
	Store(ctx context.Context, obj Object) (*Result, error)
}
