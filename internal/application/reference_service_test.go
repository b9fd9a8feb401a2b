package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hris/internal/domain/apperr"
)

func TestReferenceService_ReadThroughCache(t *testing.T) {
	refs := newMemRefs()
	cache := &memCache{}
	svc := NewReferenceService(refs, cache, nil)
	ctx := context.Background()

	roles, err := svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
	assert.Equal(t, 1, refs.calls)

	roles, err = svc.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
	assert.Equal(t, 1, refs.calls, "second read served from cache")

	orgs, err := svc.ListOrganizations(ctx)
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "default", orgs[0].Slug)
	assert.Equal(t, 2, cache.setCalls)
}

func TestReferenceService_CacheFailureFallsBack(t *testing.T) {
	refs := newMemRefs()
	svc := NewReferenceService(refs, &memCache{readErr: errors.New("redis down")}, nil)

	roles, err := svc.ListRoles(context.Background())
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestReferenceService_NoCache(t *testing.T) {
	refs := newMemRefs()
	svc := NewReferenceService(refs, nil, nil)

	_, err := svc.ListOrganizations(context.Background())
	require.NoError(t, err)
	_, err = svc.ListOrganizations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, refs.calls)
}

func TestReferenceService_StoreError(t *testing.T) {
	refs := newMemRefs()
	refs.listErr = apperr.ErrSetupIncomplete
	svc := NewReferenceService(refs, &memCache{}, nil)

	_, err := svc.ListRoles(context.Background())
	assert.ErrorIs(t, err, apperr.ErrSetupIncomplete)
}
