// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/curvevm/internal/pebble"
	"github.com/ava-labs/curvevm/utils"
)

const stateDir = "statedb"

// New opens the pebble database holding pools and ledgers under
// [dataDir]/statedb.
func New(cfg pebble.Config, dataDir string, registerer prometheus.Registerer) (*pebble.Database, error) {
	path, err := utils.InitSubDirectory(dataDir, stateDir)
	if err != nil {
		return nil, err
	}
	return pebble.New(path, cfg, registerer)
}
