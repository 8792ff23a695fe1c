// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ava-labs/curvevm/controller"
	"github.com/ava-labs/curvevm/storage"
	"github.com/ava-labs/curvevm/utils"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Create and inspect pools",
}

var poolCreateCmd = &cobra.Command{
	Use:   "create [asset]",
	Short: "Open a pool for an asset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := getActor(cmd)
		if err != nil {
			return err
		}
		basePrice, err := cmd.Flags().GetUint64("base-price")
		if err != nil {
			return err
		}
		slope, err := cmd.Flags().GetUint64("slope")
		if err != nil {
			return err
		}
		metadata, err := cmd.Flags().GetString("metadata")
		if err != nil {
			return err
		}
		asset := parseAsset(args[0])
		return withController(func(c *controller.Controller) error {
			result, err := c.CreatePool(context.Background(), actor, asset, basePrice, slope, metadata)
			if err != nil {
				return err
			}
			return printValue(cmd, result, func() {
				utils.Outf("{{green}}created pool:{{/}} %s\n", result.Asset)
				utils.Outf("{{yellow}}escrow:{{/}} %s\n", result.Escrow)
				utils.Outf("{{yellow}}base price:{{/}} %d {{yellow}}slope:{{/}} %d\n", result.BasePrice, result.Slope)
			})
		})
	},
}

var poolShowCmd = &cobra.Command{
	Use:   "show [asset]",
	Short: "Print the current state of a pool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset := parseAsset(args[0])
		return withController(func(c *controller.Controller) error {
			pool, err := c.GetPool(context.Background(), asset)
			if err != nil {
				return err
			}
			spot, err := controller.SpotPrice(pool.Curve(), pool.Supply)
			if err != nil {
				return err
			}
			return printValue(cmd, pool, func() { printPool(pool, spot) })
		})
	},
}

func printPool(pool *storage.Pool, spot *uint64) {
	utils.Outf("{{cyan}}asset:{{/}} %s\n", pool.Asset)
	utils.Outf("{{cyan}}supply:{{/}} %d\n", pool.Supply)
	utils.Outf("{{cyan}}reserve:{{/}} %d\n", pool.Reserve)
	utils.Outf("{{cyan}}base price:{{/}} %d {{cyan}}slope:{{/}} %d\n", pool.BasePrice, pool.Slope)
	utils.Outf("{{cyan}}spot price:{{/}} %s\n", formatSpot(spot))
	if len(pool.MetadataURI) > 0 {
		utils.Outf("{{cyan}}metadata:{{/}} %s\n", pool.MetadataURI)
	}
}

func init() {
	poolCreateCmd.Flags().String("actor", "", "Address creating the pool")
	poolCreateCmd.Flags().Uint64("base-price", 0, "Price of the first unit")
	poolCreateCmd.Flags().Uint64("slope", 0, "Price increase per unit of supply")
	poolCreateCmd.Flags().String("metadata", "", "Metadata URI")

	poolCmd.AddCommand(poolCreateCmd, poolShowCmd)
}
