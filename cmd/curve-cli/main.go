// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "curve-cli",
	Short: "Bonding curve market CLI",
	Long:  `A CLI application for creating bonding curve pools and trading against them on a local store.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("config", "", "Path to a JSON node config")
	rootCmd.PersistentFlags().String("genesis", "", "Path to a JSON genesis")
	rootCmd.PersistentFlags().String("data-dir", "", "Override the database directory")

	rootCmd.AddCommand(poolCmd, buyCmd, sellCmd, quoteCmd, fundCmd, balanceCmd, genesisCmd)
}

func main() {
	Execute()
}
