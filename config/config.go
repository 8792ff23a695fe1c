// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"runtime"

	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/curvevm/internal/pebble"
	"github.com/ava-labs/curvevm/trace"
)

type Config struct {
	LogLevel logging.Level `json:"logLevel"`

	// Number of actions ExecuteBatch may run at once
	ExecutorCores int `json:"executorCores"`

	// Directory for the durable store. Empty keeps all state in memory.
	DatabasePath string        `json:"databasePath"`
	Pebble       pebble.Config `json:"pebble"`

	Trace trace.Config `json:"trace"`
}

func New(b []byte) (*Config, error) {
	c := &Config{
		LogLevel:      logging.Info,
		ExecutorCores: runtime.NumCPU(),
		Pebble:        pebble.NewDefaultConfig(),
		Trace: trace.Config{
			Enabled:     false,
			ServiceName: "curvevm",
		},
	}

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}
	if err := c.Trace.Verify(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) GetExecutorCores() int {
	if c.ExecutorCores < 1 {
		return 1
	}
	return c.ExecutorCores
}
