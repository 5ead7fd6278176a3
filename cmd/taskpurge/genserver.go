package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/polar-ai/taskpurge/internal/genserver"
)

func genServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "genserver",
		Short: "Serve the reminder-generation backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:              addr,
				Handler:           genserver.NewRouter(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			fmt.Printf("taskpurge genserver listening on %s\n", addr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3001", "listen address")
	return cmd
}
