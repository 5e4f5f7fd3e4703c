// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jscope parses attribute-block documents into attribute trees.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbose int
	var comments bool

	rootCmd := &cobra.Command{
		Use:   "jscope",
		Short: "Build attribute trees from JSON documents",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().BoolVar(&comments, "comments", false, "allow comments and trailing commas")

	rootCmd.AddCommand(newParseCmd(&comments))
	rootCmd.AddCommand(newGetCmd(&comments))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
