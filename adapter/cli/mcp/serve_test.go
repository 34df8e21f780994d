package mcp

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imsachin001/chronosync/adapter/cli"
	"github.com/imsachin001/chronosync/pkg/config"
)

func TestServeCmd_RequiresApp(t *testing.T) {
	cli.SetApp(nil)

	serveCmd.SetContext(context.Background())
	serveCmd.SetOut(&bytes.Buffer{})
	err := serveCmd.RunE(serveCmd, nil)
	assert.EqualError(t, err, "application not initialized - database connection required")
}

func TestServeCmd_ConfigError(t *testing.T) {
	cli.SetApp(&cli.App{})
	t.Cleanup(func() { cli.SetApp(nil) })

	orig := loadConfig
	loadConfig = func() (*config.Config, error) { return nil, errors.New("bad ANALYTICS_STORE") }
	t.Cleanup(func() { loadConfig = orig })

	serveCmd.SetContext(context.Background())
	err := serveCmd.RunE(serveCmd, nil)
	assert.EqualError(t, err, "bad ANALYTICS_STORE")
}

func TestCmd_HasServe(t *testing.T) {
	sub, _, err := Cmd.Find([]string{"serve"})
	assert.NoError(t, err)
	assert.Equal(t, "serve", sub.Name())
}
