package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quarry/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the index over JSON HTTP:

  GET  /api/status   index presence and size
  POST /api/search   {"query": "...", "topK": 8}
  POST /api/ask      {"question": "..."}

The address defaults to server.addr from the config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := serveAddr
	if addr == "" {
		addr = settings.Server.Addr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Search: searchService,
		Ask:    askService,
	}, httpapi.Config{
		AskRate:  settings.Server.AskRate,
		AskBurst: settings.Server.AskBurst,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s\n", addr)
	return server.Run(cmd.Context(), addr)
}
