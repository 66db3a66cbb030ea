package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/formview/internal/cli/styles"
	"github.com/bnema/formview/internal/domain/entity"
)

type recordingCommander struct {
	calls   []string
	failSet error
}

func (c *recordingCommander) FetchSubmission(context.Context) (entity.RequestID, error) {
	c.calls = append(c.calls, "fetch")
	return entity.NewRequestID(), nil
}

func (c *recordingCommander) SetFieldValue(_ context.Context, name, value string) error {
	c.calls = append(c.calls, "set "+name+"="+value)
	return c.failSet
}

func TestRunCommands(t *testing.T) {
	in := strings.NewReader("set data[name]=Ada Lovelace\n\n  fetch  \nset novalue\nsubmit\nhelp\nset email=a=b\n")
	var out bytes.Buffer
	commander := &recordingCommander{}

	require.NoError(t, RunCommands(context.Background(), in, &out, styles.NewTheme(), commander))

	assert.Equal(t, []string{
		"set data[name]=Ada Lovelace",
		"fetch",
		"set email=a=b",
	}, commander.calls)
	assert.Contains(t, out.String(), "assignment must be name=value")
	assert.Contains(t, out.String(), `unknown command`)
	assert.Contains(t, out.String(), commandHelp)
}

func TestRunCommands_ReportsCommandErrors(t *testing.T) {
	var out bytes.Buffer
	commander := &recordingCommander{failSet: entity.ErrSessionNotReady}

	err := RunCommands(context.Background(), strings.NewReader("set name=x\nfetch\n"), &out, styles.NewTheme(), commander)
	require.NoError(t, err)
	assert.Contains(t, out.String(), entity.ErrSessionNotReady.Error())
	assert.Equal(t, []string{"set name=x", "fetch"}, commander.calls)
}

func TestRunCommands_StopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- RunCommands(ctx, pr, io.Discard, styles.NewTheme(), &recordingCommander{})
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("command loop ignored cancellation")
	}
}
