package main

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nihei9/laviz/server"
)

var serveFlags = struct {
	port *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve the analysis API over HTTP",
		Example: `  laviz serve --port 5002`,
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}
	serveFlags.port = cmd.Flags().IntP("port", "p", 5002, "port to listen on")
	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := fmt.Sprintf(":%v", *serveFlags.port)
	log.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, server.Router())
}
