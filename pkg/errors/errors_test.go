package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("unexpected token")
	err := NewParseError("fixture.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "fixture.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "fixture.yaml:12")
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("price_min", "must not exceed price_max", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "price_min", validationErr.Field)
	require.Equal(t, "validation error: price_min: must not exceed price_max", err.Error())
}

func TestStoreErrorIncludesOperation(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("database is locked")
	err := NewStoreError("count products", underlying)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	require.Equal(t, "count products", storeErr.Op)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "database is locked")
}

func TestPersistenceWriteFailureWrapsCause(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("read-only file system")
	err := NewPersistenceWriteFailure("/tmp/prefs.json", "theme", underlying)

	var writeErr *PersistenceWriteFailure
	require.ErrorAs(t, err, &writeErr)
	require.Equal(t, "theme", writeErr.Key)
	require.True(t, stdErrors.Is(err, underlying))
}

func TestRegistryInconsistencyDescribesHandle(t *testing.T) {
	t.Parallel()

	err := NewRegistryInconsistency("entry", 3, 7)
	require.Equal(t, "stale entry handle (slot 3, generation 7)", err.Error())
}

func TestNilErrorsAreSafe(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var storeErr *StoreError
	var writeErr *PersistenceWriteFailure
	require.Equal(t, "", parseErr.Error())
	require.Nil(t, storeErr.Unwrap())
	require.Nil(t, writeErr.Unwrap())
}
