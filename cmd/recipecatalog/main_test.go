package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-catalog/internal/config"
)

func TestLoadFixturesCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "catalog.db")
	t.Setenv("DATABASE_URL", dbPath)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"load-fixtures", filepath.Join("..", "..", "fixtures", "recipes.yaml")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "loaded 3 categories and 7 recipes")
}

func TestLoadFixturesRequiresFile(t *testing.T) {
	rootCmd.SetArgs([]string{"load-fixtures"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	assert.Error(t, rootCmd.Execute())
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:    "127.0.0.1:0",
		DatabaseURL: filepath.Join(t.TempDir(), "serve.db"),
		GinMode:     "test",
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
