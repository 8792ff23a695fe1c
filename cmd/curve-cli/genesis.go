// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/genesis"
	"github.com/ava-labs/curvevm/utils"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis [address=balance]...",
	Short: "Write a genesis file with the given allocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		maxTrade, err := cmd.Flags().GetUint64("max-trade-amount")
		if err != nil {
			return err
		}

		allocs := make([]*genesis.CustomAllocation, 0, len(args))
		for _, arg := range args {
			addrStr, balStr, ok := strings.Cut(arg, "=")
			if !ok {
				return fmt.Errorf("allocation %q must be address=balance", arg)
			}
			addr, err := codec.StringToAddress(addrStr)
			if err != nil {
				return err
			}
			bal, err := parseAmount(balStr)
			if err != nil {
				return err
			}
			allocs = append(allocs, &genesis.CustomAllocation{Address: addr, Balance: bal})
		}
		g := genesis.NewDefaultGenesis(allocs)
		g.Rules.MaxTradeAmount = maxTrade

		b, err := json.Marshal(g)
		if err != nil {
			return err
		}
		if err := utils.SaveBytes(out, b); err != nil {
			return err
		}
		utils.Outf("{{green}}created genesis:{{/}} %s {{yellow}}allocations:{{/}} %d\n", out, len(allocs))
		return nil
	},
}

func init() {
	genesisCmd.Flags().String("out", "genesis.json", "Where to write the genesis")
	genesisCmd.Flags().Uint64("max-trade-amount", 0, "Largest amount a single trade may move, 0 for no limit")
}
