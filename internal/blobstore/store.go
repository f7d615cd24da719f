// Package blobstore talks to the external object store that holds uploaded
// screenshots and gallery media. Objects are written under a caller-chosen
// path and addressed by the returned URL for deletion.
package blobstore

import "context"

// Store is the object storage collaborator. Put uploads bytes under path and
// returns the externally resolvable URL. Delete removes the object addressed
// by a URL previously returned from Put.
type Store interface {
	Put(ctx context.Context, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
