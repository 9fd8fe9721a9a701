package facade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

func isMissing(err error) bool { return errors.Is(err, errMissing) }

func found(v string) Getter[string] {
	return func(context.Context) (string, error) { return v, nil }
}

func failing(err error) Getter[string] {
	return func(context.Context) (string, error) { return "", err }
}

func TestLookup_PrimaryHit(t *testing.T) {
	secondaryCalled := false
	secondary := func(context.Context) (string, error) {
		secondaryCalled = true
		return "legacy", nil
	}

	value, err := Lookup(context.Background(), isMissing, errMissing, found("primary"), secondary)

	require.NoError(t, err)
	assert.Equal(t, "primary", value)
	assert.False(t, secondaryCalled)
}

func TestLookup_FallsBackOnNotFound(t *testing.T) {
	value, err := Lookup(context.Background(), isMissing, errMissing, failing(errMissing), found("legacy"))

	require.NoError(t, err)
	assert.Equal(t, "legacy", value)
}

func TestLookup_AllMiss(t *testing.T) {
	notFound := errors.New("order not found")

	_, err := Lookup(context.Background(), isMissing, notFound, failing(errMissing), failing(errMissing))

	assert.ErrorIs(t, err, notFound)
}

func TestLookup_PropagatesOtherErrors(t *testing.T) {
	boom := errors.New("connection refused")

	_, err := Lookup(context.Background(), isMissing, errMissing, failing(boom), found("legacy"))

	assert.ErrorIs(t, err, boom)
}

func TestListAll_KeepsProviderOrder(t *testing.T) {
	// Arrange: первый источник отвечает медленнее второго
	slow := func(context.Context) ([]int, error) {
		time.Sleep(20 * time.Millisecond)
		return []int{1, 2}, nil
	}
	fast := func(context.Context) ([]int, error) {
		return []int{3}, nil
	}

	// Act
	items, err := ListAll(context.Background(), slow, fast)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
}

func TestListAll_Error(t *testing.T) {
	boom := errors.New("mongo down")

	_, err := ListAll(context.Background(),
		func(context.Context) ([]int, error) { return []int{1}, nil },
		func(context.Context) ([]int, error) { return nil, boom },
	)

	assert.ErrorIs(t, err, boom)
}

func TestListAll_Empty(t *testing.T) {
	items, err := ListAll[int](context.Background())

	require.NoError(t, err)
	assert.Empty(t, items)
}
