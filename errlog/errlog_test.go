package errlog_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/marcelsud/approval-relay/errlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := errlog.New(zerolog.New(&buf))

	logger.Error("webhook enqueue failed", fmt.Errorf("redis down: %w", fmt.Errorf("connection refused")))

	out := buf.String()
	assert.Contains(t, out, "webhook enqueue failed")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, `"level":"error"`)
}
