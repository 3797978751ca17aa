package helpers_test

import (
	"errors"
	"fmt"
	"testing"

	"market-pulse/src/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	transport := fmt.Errorf("fetch IBOV: %w", helpers.NewTransportError("request failed", 0, cause))
	schema := fmt.Errorf("fetch IBOV: %w", helpers.NewProviderSchemaError("missing timestamps", nil))
	thin := fmt.Errorf("fetch IBOV: %w", helpers.NewInsufficientDataError("IBOV", 3, 5))
	panicked := helpers.NewCatastrophicAggregationError("task panicked", errors.New("boom"))

	assert.True(t, helpers.IsProviderError(transport))
	assert.True(t, helpers.IsProviderError(schema))
	assert.False(t, helpers.IsProviderError(thin))
	assert.True(t, helpers.IsInsufficientData(thin))
	assert.True(t, helpers.IsCatastrophic(panicked))
	assert.False(t, helpers.IsCatastrophic(transport))

	require.ErrorIs(t, transport, cause)

	var ie *helpers.InsufficientDataError
	require.ErrorAs(t, thin, &ie)
	assert.Equal(t, 3, ie.Points)
	assert.Equal(t, 5, ie.Required)
	assert.Equal(t, "insufficient data for IBOV: 3 points, need 5", ie.Error())
}

func TestGetResourceUsage(t *testing.T) {
	t.Parallel()

	u := helpers.GetResourceUsage()
	assert.Positive(t, u.Goroutines)
	assert.Positive(t, u.SysMB)
	assert.GreaterOrEqual(t, u.SysMB, u.HeapAllocMB)
}
