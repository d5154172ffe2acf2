package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRejectsUnknownCommands(t *testing.T) {
	t.Setenv("JWT_SECRET", "ledgerctl-test-secret")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var out bytes.Buffer

	assert.ErrorIs(t, run(context.Background(), nil, &out, logger), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"rebalance"}, &out, logger), errUsage)
	assert.ErrorIs(t, run(context.Background(), []string{"reconcile", "--bogus"}, &out, logger), errUsage)
}

func TestCreateUserNeedsPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "ledgerctl-test-secret")
	t.Setenv("LEDGER_USER_PASSWORD", "")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := run(context.Background(), []string{"create-user", "--username", "root", "--full-name", "Root"}, io.Discard, logger)
	assert.ErrorIs(t, err, errUsage)
}
