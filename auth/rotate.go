package auth

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Rotator holds the current KeyStore snapshot and swaps in new ones
// produced by an external refresh function. Decoders reading through a
// Rotator always observe a fully formed snapshot, never a partial update.
// Where the new material comes from (file reload, remote JWKS, vault) is
// the refresh function's business.
type Rotator struct {
	refresh func(context.Context) (*KeyStore, error)
	current atomic.Pointer[KeyStore]
	group   singleflight.Group
}

// NewRotator creates a rotator seeded with an initial snapshot.
func NewRotator(initial *KeyStore, refresh func(context.Context) (*KeyStore, error)) (*Rotator, error) {
	if initial == nil {
		return nil, errors.New("auth: rotator requires an initial keystore")
	}
	if refresh == nil {
		return nil, errors.New("auth: rotator requires a refresh function")
	}
	r := &Rotator{refresh: refresh}
	r.current.Store(initial)
	return r, nil
}

// Current returns the latest snapshot. Safe for concurrent use.
func (r *Rotator) Current() *KeyStore {
	return r.current.Load()
}

// Refresh replaces the snapshot with a freshly produced one. Concurrent
// calls are coalesced into a single refresh. On failure the previous
// snapshot stays in service.
func (r *Rotator) Refresh(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (any, error) {
		ks, err := r.refresh(ctx)
		if err != nil {
			return nil, err
		}
		if ks == nil {
			return nil, errors.New("auth: refresh produced no keystore")
		}
		r.current.Store(ks)
		return nil, nil
	})
	return err
}

var _ KeySource = (*Rotator)(nil)
