package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/let-tech/applicant-dashboard-api/pkg/errors"
)

type fakeCacheStore struct {
	values   map[string]string
	getErr   error
	setErr   error
	patterns []string
}

func (f *fakeCacheStore) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	raw, ok := f.values[key]
	if !ok {
		return "", apperrors.ErrCacheMiss
	}
	return raw, nil
}

func (f *fakeCacheStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
	return nil
}

func (f *fakeCacheStore) DeleteByPattern(_ context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	store := &fakeCacheStore{}
	svc := NewCacheService(store, nil, time.Minute, nil)

	svc.SetJSON(context.Background(), "dashboard:kpis", map[string]int{"total": 42})

	var got map[string]int
	require.True(t, svc.GetJSON(context.Background(), "dashboard:kpis", &got))
	assert.Equal(t, 42, got["total"])
}

func TestCacheServiceMissReportsNotFound(t *testing.T) {
	svc := NewCacheService(&fakeCacheStore{}, nil, time.Minute, nil)

	var got map[string]int
	assert.False(t, svc.GetJSON(context.Background(), "dashboard:kpis", &got))
}

func TestCacheServiceCorruptPayloadIsAMiss(t *testing.T) {
	store := &fakeCacheStore{values: map[string]string{"dashboard:kpis": "{not json"}}
	svc := NewCacheService(store, nil, time.Minute, nil)

	var got map[string]int
	assert.False(t, svc.GetJSON(context.Background(), "dashboard:kpis", &got))
}

func TestCacheServiceNilReceiverIsSafe(t *testing.T) {
	var svc *CacheService

	var got map[string]int
	assert.False(t, svc.GetJSON(context.Background(), "k", &got))
	svc.SetJSON(context.Background(), "k", got)
	svc.Invalidate(context.Background(), "dashboard:*")
}

func TestCacheServiceInvalidateForwardsPattern(t *testing.T) {
	store := &fakeCacheStore{}
	svc := NewCacheService(store, nil, time.Minute, nil)

	svc.Invalidate(context.Background(), "dashboard:*")
	assert.Equal(t, []string{"dashboard:*"}, store.patterns)
}
