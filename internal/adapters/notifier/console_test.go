package notifier_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.seclens.dev/seclens/internal/adapters/notifier"
	"go.seclens.dev/seclens/internal/core/ports"
)

func TestConsole_PostAndDrain(t *testing.T) {
	c := notifier.New()

	c.Post(t.Context(), ports.Message{Command: "SCAN_GET_ALL_FILES_VULNERABILITY"})

	msg := <-c.Messages()
	assert.Equal(t, "SCAN_GET_ALL_FILES_VULNERABILITY", msg.Command)
}

func TestConsole_PostNeverBlocks(t *testing.T) {
	c := notifier.New()

	// Overflow the buffer with no reader attached.
	for i := 0; i < 200; i++ {
		c.Post(t.Context(), ports.Message{Command: fmt.Sprintf("msg-%d", i)})
	}

	// The newest message survives; the oldest were dropped.
	var last ports.Message
	for {
		select {
		case m := <-c.Messages():
			last = m
			continue
		default:
		}
		break
	}
	assert.Equal(t, "msg-199", last.Command)
}

func TestConsole_Popups(t *testing.T) {
	var buf bytes.Buffer
	c := notifier.New(notifier.WithOutput(&buf))

	c.ShowError("authentication failed")
	c.ShowInfo("application is archived")

	out := buf.String()
	assert.Contains(t, out, "error: authentication failed")
	assert.Contains(t, out, "info: application is archived")
}

func TestConsole_ConfirmDefaultsToDecline(t *testing.T) {
	c := notifier.New()
	assert.False(t, c.Confirm(t.Context(), "switch mode?"))
}

func TestConsole_ConfirmInjected(t *testing.T) {
	var prompt string
	c := notifier.New(notifier.WithConfirm(func(p string) bool {
		prompt = p
		return true
	}))

	require.True(t, c.Confirm(t.Context(), "switch to assess?"))
	assert.Equal(t, "switch to assess?", prompt)
}
