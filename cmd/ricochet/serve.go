package main

import (
	"github.com/spf13/cobra"

	"github.com/AlonKellner-RedHat/ricochet-game-sub003/pkg/tracelog"
	"github.com/AlonKellner-RedHat/ricochet-game-sub003/web/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP and websocket (/healthz, /inspect, /api/trajectory, /api/visibility, /ws)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := server.NewServer(serveAddr, tracelog.NewDefaultLogger())
		return s.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "address to listen on")
}
