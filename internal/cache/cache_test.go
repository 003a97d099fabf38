package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/cache"
	"github.com/granahq/grana/internal/transaction"
)

func TestCollection_FetchesOncePerKey(t *testing.T) {
	c := cache.NewCollection[string]()
	key := cache.Key{UserID: uuid.New(), AccountType: transaction.AccountPersonal}

	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.Get(context.Background(), key, fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, got)
	}

	assert.Equal(t, 1, calls)
}

func TestCollection_InvalidateIsPerKey(t *testing.T) {
	c := cache.NewCollection[int]()
	userID := uuid.New()
	personal := cache.Key{UserID: userID, AccountType: transaction.AccountPersonal}
	business := cache.Key{UserID: userID, AccountType: transaction.AccountBusiness}

	personalCalls, businessCalls := 0, 0

	_, _ = c.Get(context.Background(), personal, func(context.Context) ([]int, error) {
		personalCalls++
		return []int{1}, nil
	})
	_, _ = c.Get(context.Background(), business, func(context.Context) ([]int, error) {
		businessCalls++
		return []int{2}, nil
	})

	c.Invalidate(personal)

	_, _ = c.Get(context.Background(), personal, func(context.Context) ([]int, error) {
		personalCalls++
		return []int{1}, nil
	})
	_, _ = c.Get(context.Background(), business, func(context.Context) ([]int, error) {
		businessCalls++
		return []int{2}, nil
	})

	assert.Equal(t, 2, personalCalls)
	assert.Equal(t, 1, businessCalls)
}

func TestCollection_FetchErrorNotCached(t *testing.T) {
	c := cache.NewCollection[int]()
	key := cache.Key{UserID: uuid.New(), AccountType: transaction.AccountPersonal}

	boom := errors.New("db error")
	_, err := c.Get(context.Background(), key, func(context.Context) ([]int, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := c.Get(context.Background(), key, func(context.Context) ([]int, error) {
		return []int{7}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got)
}
