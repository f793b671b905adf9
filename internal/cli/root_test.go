package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/activerecord/internal/cli"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rc := cli.NewRootCommand(bytes.NewReader(nil), &stdout, &stderr)
	rc.SetArgs(args)
	err := rc.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestDemoOnMemory(t *testing.T) {
	out, err := execute(t, "demo", "--backend", "memory", "--log-level", "error")
	require.NoError(t, err)

	want := []string{
		"created #1 Widget price=9.99 status=open",
		"rejected: name is required; price must be at least 0",
		"created #2 Gadget price=24.5 status=open",
		"created #3 Doohickey price=3.25 status=open",
		"open products by price:\n  #2 Gadget price=24.5 status=open\n  #1 Widget price=9.99 status=open\n  #3 Doohickey price=3.25 status=open",
		"updated #1 Widget price=12.5 status=open",
		"closed 1 product(s)",
		"status counts: open=2 closed=1",
		"deleted #3 Doohickey price=3.25 status=closed",
		"remaining: 2",
	}
	for _, line := range want {
		assert.Contains(t, out, line)
	}
}

func TestPingMemory(t *testing.T) {
	out, err := execute(t, "ping", "-b", "memory")
	require.NoError(t, err)
	assert.Contains(t, out, "memory: ok")
}

func TestUnknownBackend(t *testing.T) {
	_, err := execute(t, "ping", "--backend", "sqlite")
	require.ErrorIs(t, err, cli.ErrUnknownBackend)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "ping", "--backend", "memory", "--log-level", "loud")
	require.Error(t, err)
}

func TestMigrateRequiresPostgres(t *testing.T) {
	_, err := execute(t, "migrate", "--backend", "memory")
	require.ErrorIs(t, err, cli.ErrMigrateUnsupported)
}
