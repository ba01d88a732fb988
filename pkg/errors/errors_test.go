package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/gotd/td/tgerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNil(t *testing.T) {
	assert.NoError(t, New(ErrorTypeConfig, "load", nil))
}

func TestErrorWrapping(t *testing.T) {
	base := errors.New("no such section")
	err := Config("read credentials", base)

	assert.Equal(t, "read credentials: no such section", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ErrorTypeConfig, TypeOf(err))
	assert.True(t, IsType(fmt.Errorf("outer: %w", err), ErrorTypeConfig))

	bare := &Error{Type: ErrorTypeResolve, Err: base}
	assert.Equal(t, "resolve error: no such section", bare.Error())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"rpc error", tgerr.New(400, "CHANNEL_INVALID"), ErrorTypeAPI},
		{"wrapped rpc error", fmt.Errorf("get history: %w", tgerr.New(420, "FLOOD_WAIT_5")), ErrorTypeAPI},
		{"dial failure", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, ErrorTypeConnection},
		{"dns failure", &net.DNSError{Name: "example.org"}, ErrorTypeConnection},
		{"timeout", context.DeadlineExceeded, ErrorTypeConnection},
		{"anything else", errors.New("boom"), ErrorTypeUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeOf(tt.err))
		})
	}
}

func TestFloodWait(t *testing.T) {
	d, ok := FloodWait(fmt.Errorf("page: %w", tgerr.New(420, "FLOOD_WAIT_30")))
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, d)

	_, ok = FloodWait(tgerr.New(400, "PEER_ID_INVALID"))
	assert.False(t, ok)

	_, ok = FloodWait(errors.New("plain"))
	assert.False(t, ok)
}
