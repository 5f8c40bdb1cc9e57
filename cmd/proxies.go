package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/vizsync/internal/config"
	"github.com/zjrosen/vizsync/internal/presentation"
)

var proxiesCmd = &cobra.Command{
	Use:   "proxies",
	Short: "Print the proxy definitions and their field domains",
	Long: `Print every source, view and representation definition as JSON, with the
field domains each one publishes after step resolution.

Examples:
  vizsync proxies | jq '.[] | select(.group == "Representations")'
  vizsync proxies --config ./vizsync.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printProxies(os.Stdout, cfg.Scene)
	},
}

func init() {
	rootCmd.AddCommand(proxiesCmd)
}

func printProxies(w io.Writer, sc config.SceneConfig) error {
	defs, err := loadDefinitions(sc)
	if err != nil {
		return err
	}
	return presentation.NewFormatter(w).FormatProxies(presentation.FromDefinitions(defs))
}
