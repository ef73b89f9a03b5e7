package services

import (
	"context"
	"testing"

	"giftbasket_server/lib"
	"giftbasket_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRequiresAuth(t *testing.T) {
	ws := NewWishlistService(gecho.NewDefaultLogger(), nil, nil)

	_, err := ws.Toggle(context.Background(), uuid.New(), "", 1)
	assert.ErrorIs(t, err, lib.ErrAuthRequired)

	_, err = ws.Toggle(context.Background(), uuid.Nil, "token", 1)
	assert.ErrorIs(t, err, lib.ErrAuthRequired)
}

func TestHydrateRequiresAuth(t *testing.T) {
	ws := NewWishlistService(gecho.NewDefaultLogger(), nil, nil)

	_, err := ws.Hydrate(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, lib.ErrAuthRequired)
}

func TestToggleRejectsConcurrentTogglesPerProduct(t *testing.T) {
	ws := NewWishlistService(gecho.NewDefaultLogger(), nil, nil)
	userID := uuid.New()

	// Simulate a toggle already in flight for this (user, product).
	ws.mu.Lock()
	ws.inflight[toggleKey(userID, 42)] = struct{}{}
	ws.mu.Unlock()

	_, err := ws.Toggle(context.Background(), userID, "token", 42)
	assert.ErrorIs(t, err, lib.ErrToggleInFlight)

	state, err := ws.State(userID, 42)
	require.NoError(t, err)
	assert.Equal(t, structs.TogglePending, state)
}

type fakeWishlistMirror struct {
	members  map[int64]bool
	replaced int
}

func newFakeWishlistMirror(ids ...int64) *fakeWishlistMirror {
	m := &fakeWishlistMirror{members: make(map[int64]bool)}
	for _, id := range ids {
		m.members[id] = true
	}
	return m
}

func (m *fakeWishlistMirror) IsWishlisted(owner string, productID int64) (bool, error) {
	return m.members[productID], nil
}

func (m *fakeWishlistMirror) AddWishlisted(owner string, productID int64) error {
	m.members[productID] = true
	return nil
}

func (m *fakeWishlistMirror) RemoveWishlisted(owner string, productID int64) error {
	delete(m.members, productID)
	return nil
}

func (m *fakeWishlistMirror) ReplaceWishlist(owner string, ids []int64) error {
	m.members = make(map[int64]bool)
	for _, id := range ids {
		m.members[id] = true
	}
	m.replaced++
	return nil
}

func (m *fakeWishlistMirror) WishlistMembers(owner string) ([]int64, error) {
	ids := make([]int64, 0, len(m.members))
	for id := range m.members {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeWishlistUpstream struct {
	list      []int64
	addErr    error
	removeErr error
}

func (u *fakeWishlistUpstream) FetchWishlist(ctx context.Context, token string) ([]int64, error) {
	return append([]int64(nil), u.list...), nil
}

func (u *fakeWishlistUpstream) WishlistAdd(ctx context.Context, token string, productID int64) error {
	if u.addErr != nil {
		return u.addErr
	}
	u.list = append(u.list, productID)
	return nil
}

func (u *fakeWishlistUpstream) WishlistRemove(ctx context.Context, token string, productID int64) error {
	if u.removeErr != nil {
		return u.removeErr
	}
	kept := u.list[:0]
	for _, id := range u.list {
		if id != productID {
			kept = append(kept, id)
		}
	}
	u.list = kept
	return nil
}

func newTestWishlistService(mirror *fakeWishlistMirror, upstream *fakeWishlistUpstream) *WishlistService {
	return &WishlistService{
		logger:         gecho.NewDefaultLogger(),
		cacheService:   mirror,
		catalogService: upstream,
		inflight:       make(map[string]struct{}),
	}
}

func TestToggleAddsAndReconciles(t *testing.T) {
	mirror := newFakeWishlistMirror()
	upstream := &fakeWishlistUpstream{}
	ws := newTestWishlistService(mirror, upstream)
	userID := uuid.New()

	result, err := ws.Toggle(context.Background(), userID, "token", 7)
	require.NoError(t, err)

	assert.Equal(t, structs.ToggleWishlisted, result.State)
	assert.True(t, result.Wishlisted)
	assert.Equal(t, []int64{7}, upstream.list)
	assert.True(t, mirror.members[7])

	// The mirror was reconciled against the authoritative set.
	assert.Equal(t, 1, mirror.replaced)
}

func TestToggleRemovesExistingMember(t *testing.T) {
	mirror := newFakeWishlistMirror(7)
	upstream := &fakeWishlistUpstream{list: []int64{7}}
	ws := newTestWishlistService(mirror, upstream)

	result, err := ws.Toggle(context.Background(), uuid.New(), "token", 7)
	require.NoError(t, err)

	assert.Equal(t, structs.ToggleNotWishlisted, result.State)
	assert.False(t, result.Wishlisted)
	assert.Empty(t, upstream.list)
	assert.False(t, mirror.members[7])
}

func TestToggleRevertsMirrorOnUpstreamFailure(t *testing.T) {
	mirror := newFakeWishlistMirror()
	upstream := &fakeWishlistUpstream{addErr: lib.ErrUpstream}
	ws := newTestWishlistService(mirror, upstream)
	userID := uuid.New()

	_, err := ws.Toggle(context.Background(), userID, "token", 7)
	require.ErrorIs(t, err, lib.ErrUpstream)

	// The optimistic flip was rolled back and the pending slot cleared,
	// so the product reads not-wishlisted and a retry is allowed.
	assert.False(t, mirror.members[7])
	state, err := ws.State(userID, 7)
	require.NoError(t, err)
	assert.Equal(t, structs.ToggleNotWishlisted, state)

	upstream.addErr = nil
	result, err := ws.Toggle(context.Background(), userID, "token", 7)
	require.NoError(t, err)
	assert.True(t, result.Wishlisted)
}

func TestToggleKeyScopedToUserAndProduct(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.NotEqual(t, toggleKey(a, 1), toggleKey(b, 1))
	assert.NotEqual(t, toggleKey(a, 1), toggleKey(a, 2))
	assert.Equal(t, toggleKey(a, 1), toggleKey(a, 1))
}
