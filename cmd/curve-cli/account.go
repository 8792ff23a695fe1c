// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/controller"
	"github.com/ava-labs/curvevm/utils"
)

type balanceOutput struct {
	Address codec.Address  `json:"address"`
	Value   uint64         `json:"value"`
	Asset   *codec.Address `json:"asset,omitempty"`
	Tokens  uint64         `json:"tokens,omitempty"`
}

var fundCmd = &cobra.Command{
	Use:   "fund [address] [amount]",
	Short: "Credit value to an address",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := codec.StringToAddress(args[0])
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		return withController(func(c *controller.Controller) error {
			bal, err := c.Fund(context.Background(), addr, amount)
			if err != nil {
				return err
			}
			return printValue(cmd, &balanceOutput{Address: addr, Value: bal}, func() {
				utils.Outf("{{green}}funded:{{/}} %s {{yellow}}balance:{{/}} %d\n", addr, bal)
			})
		})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the value and, optionally, token balance of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := codec.StringToAddress(args[0])
		if err != nil {
			return err
		}
		assetStr, err := cmd.Flags().GetString("asset")
		if err != nil {
			return err
		}
		return withController(func(c *controller.Controller) error {
			ctx := context.Background()
			out := &balanceOutput{Address: addr}
			out.Value, err = c.GetBalance(ctx, addr)
			if err != nil {
				return err
			}
			if assetStr != "" {
				asset := parseAsset(assetStr)
				out.Asset = &asset
				out.Tokens, err = c.GetTokenBalance(ctx, asset, addr)
				if err != nil {
					return err
				}
			}
			return printValue(cmd, out, func() {
				utils.Outf("{{yellow}}value:{{/}} %d\n", out.Value)
				if out.Asset != nil {
					utils.Outf("{{yellow}}%s:{{/}} %d\n", out.Asset, out.Tokens)
				}
			})
		})
	},
}

func init() {
	balanceCmd.Flags().String("asset", "", "Also print holdings of this asset")
}
