package assistant

import (
	"context"
	"testing"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresKey(t *testing.T) {
	logger, _ := test.NewNullLogger()

	_, err := New(&config.Config{}, logger)
	assert.ErrorIs(t, err, ErrNotConfigured)

	c, err := New(&config.Config{AnthropicAPIKey: "k", AnthropicModel: "m"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "m", c.model)
}

func TestOfflineReply(t *testing.T) {
	reply, err := Offline{}.Reply(context.Background(), "how am I doing?", "Health score: 72 (B-)")
	require.NoError(t, err)
	assert.Contains(t, reply, "Health score: 72 (B-)")
}
