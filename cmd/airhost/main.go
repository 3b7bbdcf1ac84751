// Command airhost runs the ops API and its maintenance tasks.
//
// @title                       airhost ops API
// @version                     1.0
// @description                 Orders, media, chat and notifications for landlords and service workers.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "airhost",
	Short:         "airhost ops platform",
	Long:          "Serve the airhost ops API and manage its database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Database
	rootCmd.AddCommand(indexesCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createAdminCmd)
}
