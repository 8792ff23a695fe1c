// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/curvevm/actions"
	"github.com/ava-labs/curvevm/codec"
	"github.com/ava-labs/curvevm/controller"
	"github.com/ava-labs/curvevm/utils"
)

type tradeFunc func(c *controller.Controller, ctx context.Context, actor codec.Address, asset codec.Address, amount uint64) (*actions.TradeResult, error)

func newTradeCmd(use string, short string, verb string, trade tradeFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [asset] [amount]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := getActor(cmd)
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			asset := parseAsset(args[0])
			return withController(func(c *controller.Controller) error {
				result, err := trade(c, context.Background(), actor, asset, amount)
				if err != nil {
					return err
				}
				return printValue(cmd, result, func() {
					utils.Outf("{{green}}%s %d{{/}} of %s for {{yellow}}%d{{/}}\n", verb, result.Amount, result.Asset, result.Value)
					utils.Outf("{{cyan}}supply:{{/}} %d {{cyan}}reserve:{{/}} %d\n", result.Supply, result.Reserve)
				})
			})
		},
	}
	cmd.Flags().String("actor", "", "Trading address")
	return cmd
}

var (
	buyCmd  = newTradeCmd("buy", "Mint units against the curve", "bought", (*controller.Controller).Buy)
	sellCmd = newTradeCmd("sell", "Return units to the curve", "sold", (*controller.Controller).Sell)
)

var quoteCmd = &cobra.Command{
	Use:   "quote [buy|sell] [asset] [amount]",
	Short: "Price a trade without executing it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		asset := parseAsset(args[1])
		return withController(func(c *controller.Controller) error {
			var (
				quote *controller.Quote
				err   error
			)
			switch args[0] {
			case "buy":
				quote, err = c.QuoteBuy(context.Background(), asset, amount)
			case "sell":
				quote, err = c.QuoteSell(context.Background(), asset, amount)
			default:
				return fmt.Errorf("unknown side %q", args[0])
			}
			if err != nil {
				return err
			}
			return printValue(cmd, quote, func() {
				utils.Outf("{{yellow}}%s %d:{{/}} %d\n", args[0], quote.Amount, quote.Value)
				utils.Outf("{{cyan}}supply after:{{/}} %d {{cyan}}reserve after:{{/}} %d\n", quote.Supply, quote.Reserve)
				utils.Outf("{{cyan}}spot price after:{{/}} %s\n", formatSpot(quote.SpotPrice))
			})
		})
	},
}
