package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inostartas/grant-cli/pkg/anthropic"
)

func TestAIFieldGenerator_Success(t *testing.T) {
	client := &mockAnthropicClient{response: textResponse("  SensorKit Pro  \n", 80, 12)}
	g := NewAIFieldGenerator(testRegistry(t), client, testAnthropicConfig())

	value, err := g.GenerateField(context.Background(), "PROJECT_TITLE", "a sensor platform")
	require.NoError(t, err)
	assert.Equal(t, "SensorKit Pro", value)

	require.Len(t, client.requests, 1)
	assert.Equal(t, int64(256), client.requests[0].MaxTokens)
	assert.Contains(t, client.requests[0].Messages[0].Content, "PROJECT_TITLE")
}

func TestAIFieldGenerator_FailurePlaceholder(t *testing.T) {
	client := &mockAnthropicClient{err: errors.New("timeout")}
	g := NewAIFieldGenerator(testRegistry(t), client, testAnthropicConfig())

	value, err := g.GenerateField(context.Background(), "CEO_NAME", "idea")
	require.NoError(t, err)
	assert.Equal(t, "Generated value for CEO_NAME", value)
	assert.Equal(t, anthropic.TokenUsage{}, g.Usage())
}

func TestAIFieldGenerator_AccumulatesUsage(t *testing.T) {
	client := &mockAnthropicClient{response: textResponse("value one", 100, 20)}
	g := NewAIFieldGenerator(testRegistry(t), client, testAnthropicConfig())

	_, err := g.GenerateField(context.Background(), "COMPANY_NAME", "idea")
	require.NoError(t, err)
	_, err = g.GenerateField(context.Background(), "CEO_NAME", "idea")
	require.NoError(t, err)

	assert.Equal(t, int64(200), g.Usage().InputTokens)
	assert.Equal(t, int64(40), g.Usage().OutputTokens)
}
