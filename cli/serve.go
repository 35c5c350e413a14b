package cli

import (
	"github.com/spf13/cobra"

	"github.com/whtowbin/Pynams/calculator"
	"github.com/whtowbin/Pynams/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve model requests over websocket",
		Long: `Start the websocket server. Clients connect to /ws and send
{"type": ..., "content": ...} messages; every request is answered in order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.LoadConfig(a.file)
			if addr != "" {
				cfg.Addr = addr
			}
			c := calculator.NewCalculator(a.opt, cfg.Workers)
			return server.NewServer(cfg, c).Serve()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides [server] Addr")
	return cmd
}
