// Package state stores opaque values by key in a relational table. The
// persisted document and the remote bearer token both live here.
package state

import "context"

// Repository is a key/value store. Get returns common.ErrorNotFound when the
// key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
