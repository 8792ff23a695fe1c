// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/config"
	"github.com/ava-labs/curvevm/controller"
	"github.com/ava-labs/curvevm/genesis"
	"github.com/ava-labs/curvevm/storage"
	"github.com/ava-labs/curvevm/utils"
)

const (
	configDirName = ".curve-cli"
	envPrefix     = "CURVE"
)

var errInvalidAmount = errors.New("amount must be a positive integer")

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
		os.Exit(1)
	}
	configDir := filepath.Join(homeDir, configDirName)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.SetDefault("data-dir", filepath.Join(configDir, "data"))

	// CURVE_DATA_DIR, CURVE_GENESIS, ...
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

// bindFlags lets flags take precedence over the environment and the config
// file for every key viper resolves.
func bindFlags(cmd *cobra.Command) error {
	for _, key := range []string{"output", "config", "genesis", "data-dir"} {
		if flag := cmd.Flags().Lookup(key); flag != nil {
			if err := viper.BindPFlag(key, flag); err != nil {
				return err
			}
		}
	}
	return nil
}

func isJSONOutputRequested() bool {
	return strings.ToLower(viper.GetString("output")) == "json"
}

// printValue renders [v] as indented JSON on the command's output when
// requested and otherwise runs [text].
func printValue(cmd *cobra.Command, v interface{}, text func()) error {
	if !isJSONOutputRequested() {
		text()
		return nil
	}
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
	return nil
}

func formatSpot(spot *uint64) string {
	if spot == nil {
		return "overflow"
	}
	return strconv.FormatUint(*spot, 10)
}

func loadConfig() (*config.Config, error) {
	var b []byte
	if path := viper.GetString("config"); path != "" {
		var err error
		b, err = utils.LoadBytes(path, -1)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	cfg, err := config.New(b)
	if err != nil {
		return nil, err
	}
	if dir := viper.GetString("data-dir"); dir != "" {
		cfg.DatabasePath = dir
	}
	return cfg, nil
}

func loadGenesis() (*genesis.Genesis, error) {
	path := viper.GetString("genesis")
	if path == "" {
		return genesis.NewDefaultGenesis(nil), nil
	}
	b, err := utils.LoadBytes(path, -1)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis: %w", err)
	}
	return genesis.Load(b)
}

// openController opens the local store. The caller must close it.
func openController() (*controller.Controller, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	gen, err := loadGenesis()
	if err != nil {
		return nil, err
	}
	log := logging.NewLogger(
		"",
		logging.NewWrappedCore(
			cfg.LogLevel,
			os.Stderr,
			logging.Plain.ConsoleEncoder(),
		))
	return controller.New(log, prometheus.NewRegistry(), cfg, gen)
}

// withController runs [f] against a freshly opened controller and closes it
// afterwards.
func withController(f func(c *controller.Controller) error) error {
	c, err := openController()
	if err != nil {
		return err
	}
	ferr := f(c)
	cerr := c.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}

// parseAsset accepts either a hex address or a ticker, which is mapped to
// its derived asset address.
func parseAsset(s string) codec.Address {
	if addr, err := codec.StringToAddress(s); err == nil {
		return addr
	}
	return storage.AssetAddress(s)
}

func parseAmount(s string) (uint64, error) {
	amount, err := strconv.ParseUint(s, 10, 64)
	if err != nil || amount == 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidAmount, s)
	}
	return amount, nil
}

func getActor(cmd *cobra.Command) (codec.Address, error) {
	actor, err := cmd.Flags().GetString("actor")
	if err != nil {
		return codec.EmptyAddress, err
	}
	if actor == "" {
		actor = viper.GetString("actor")
	}
	if actor == "" {
		return codec.EmptyAddress, errors.New("required value for actor not found")
	}
	return codec.StringToAddress(actor)
}
