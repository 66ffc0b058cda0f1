package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "smogwatch",
		Short: "Most polluted cities per country",
		Long: `smogwatch ranks the cities of a country by their latest PM2.5 reading
from OpenAQ and describes each one with the introduction of its Wikipedia article.

Run without arguments to start the web server.`,
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(newServeCmd(), newTopCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
