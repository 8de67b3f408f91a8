package cmd

import (
	"clipvault/config"
	server2 "clipvault/server"
	"github.com/spf13/cobra"
)

func server(config *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "start http api server",
		Run: func(cmd *cobra.Command, args []string) {
			server2.RunHttp(config)
		},
	}
}
