package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit_NoEndpointReturnsNoopProvider(t *testing.T) {
	tp, err := Init("test-service", "", zap.NewNop())

	require.NoError(t, err)
	assert.NotNil(t, tp)
}
