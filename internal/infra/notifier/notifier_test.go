//go:build unit

package notifier

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"engagement-scheduler/internal/domain/sequence"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTemplate(t *testing.T) {
	tpl, err := resolveTemplate("email/login-recovery/24h")
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.Subject)
	assert.NotEmpty(t, tpl.Text)
	assert.NotEmpty(t, tpl.HTML)

	_, err = resolveTemplate("email/unknown")
	assert.ErrorIs(t, err, ErrUnknownContentRef)
}

func TestConsoleNotifierSend(t *testing.T) {
	n := NewConsoleNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))

	receipt, err := n.Send(context.Background(), uuid.New(), sequence.StageID("24h"), "email/login-recovery/24h")
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.NotEmpty(t, receipt.MessageID)
}

func TestConsoleNotifierUnknownContentRef(t *testing.T) {
	n := NewConsoleNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := n.Send(context.Background(), uuid.New(), sequence.StageID("24h"), "email/missing")
	assert.ErrorIs(t, err, ErrUnknownContentRef)
}
