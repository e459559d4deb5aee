package domain

import "errors"

var (
	// ErrNotFound indicates a collaborator has no data for the requested track.
	// Callers treat it as success-with-empty, never as a failure.
	ErrNotFound = errors.New("domain: not found")

	// ErrNoDescriptors is returned once every descriptor source has been tried
	// without producing a bundle. Descriptor fields stay null in that case.
	ErrNoDescriptors = errors.New("domain: no descriptors available")
)
