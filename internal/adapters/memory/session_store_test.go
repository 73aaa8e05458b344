package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/itamlab/assetview-ui/internal/domain/auth"
)

func TestSaveReadRoundTrip(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		Token: "tok-1",
		User:  &domainauth.UserClaim{UserID: 1, Username: "root", Role: domainauth.RoleAdmin},
	}
	require.NoError(t, store.Save(ctx, "sid", sess))
	assert.Equal(t, sess, store.Read(ctx, "sid"))
}

func TestReadMissingIsZero(t *testing.T) {
	store := NewSessionStore()
	got := store.Read(context.Background(), "nope")
	assert.False(t, got.IsAuthenticated())
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sid", domainauth.Session{Token: "tok"}))
	require.NoError(t, store.Clear(ctx, "sid"))
	require.NoError(t, store.Clear(ctx, "sid"))
	assert.False(t, store.Read(ctx, "sid").IsAuthenticated())
	assert.Zero(t, store.Len())
}

func TestEmptyIDRejectedOnSave(t *testing.T) {
	store := NewSessionStore()
	assert.Error(t, store.Save(context.Background(), "", domainauth.Session{Token: "tok"}))
}
