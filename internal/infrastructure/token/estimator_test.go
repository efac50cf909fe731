package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokens(t *testing.T) {
	estimator, err := GetEstimator()
	require.NoError(t, err)

	assert.Equal(t, 0, estimator.CountTokens(""))
	assert.Greater(t, estimator.CountTokens("hello world"), 0)

	// longer text costs more tokens
	short := estimator.CountTokens("hi")
	long := estimator.CountTokens("The school was established in 1995 and serves over a thousand students.")
	assert.Greater(t, long, short)
}

func TestCountTokensBatch(t *testing.T) {
	estimator, err := GetEstimator()
	require.NoError(t, err)

	texts := []string{"one", "two", "three"}
	total := estimator.CountTokensBatch(texts)

	sum := 0
	for _, text := range texts {
		sum += estimator.CountTokens(text)
	}
	assert.Equal(t, sum, total)
}

func TestGetEstimatorSingleton(t *testing.T) {
	first, err := GetEstimator()
	require.NoError(t, err)
	second, err := GetEstimator()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
