package parser

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

func TestExecEmpty(t *testing.T) {
	in := New()
	v, err := in.Exec(context.Background(), strings.NewReader("\n\n# nothing\n"))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
	assert.True(t, in.Root().IsRoot())
}

func TestExecCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := New()
	_, err := in.Exec(ctx, strings.NewReader("a = 1\n"))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, in.Root().Len())
}

func TestExecRateLimit(t *testing.T) {
	in := New(WithRateLimit(rate.Every(time.Hour), 2))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := in.Exec(ctx, strings.NewReader("a = 1\nb = 2\nc = 3\n"))
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, in.Root().Keys())
}

func TestExecLogsFailures(t *testing.T) {
	assert := assert.New(t)

	core, logs := observer.New(zap.DebugLevel)
	var out bytes.Buffer
	in := New(WithInterpreterLogger(zap.New(core)), WithOutput(&out), WithLiteralCache(8))

	_, err := in.Eval("x = 1 +\nlog \"ok\"\ny = 2 * 2")
	require.Error(t, err)
	assert.Equal("ok", out.String())

	warn := logs.FilterMessage("statement failed").All()
	require.Len(t, warn, 1)
	assert.Equal(zap.WarnLevel, warn[0].Level)
	assert.Equal(1, logs.FilterMessage("log directive").Len())
	assert.NotZero(logs.FilterMessage("reduce").Len())

	// every entry of one run carries the same run id
	var run string
	for _, e := range logs.All() {
		id, ok := e.ContextMap()["run"].(string)
		require.True(t, ok)
		if run == "" {
			run = id
		}
		assert.Equal(run, id)
	}
}

func TestExecReaderError(t *testing.T) {
	in := New()
	_, err := in.Exec(context.Background(), &failingReader{data: "a = 1\n"})
	assert.ErrorIs(t, err, errRead)
	assert.Equal(t, []string{"a"}, in.Root().Keys())
}

var errRead = errors.New("read failed")

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(b []byte) (int, error) {
	if r.done {
		return 0, errRead
	}
	r.done = true
	return copy(b, r.data), nil
}
