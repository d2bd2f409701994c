// Command portalctl is the operator CLI for the customer portal: it seeds
// accounts and previews what a customer would see without going through HTTP.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/stephanygrace/customer-portal/internal/config"
	"github.com/stephanygrace/customer-portal/internal/database"
	"github.com/stephanygrace/customer-portal/internal/portal"
	"github.com/stephanygrace/customer-portal/internal/upstream"
)

// Overridden in tests.
var (
	loadConfig = config.Load
	openDB     = database.Connect
	newFetcher = func(cfg *config.Config) upstream.Fetcher {
		_, fetcher := portal.NewUpstream(cfg)
		return fetcher
	}
)

var rootCmd = &cobra.Command{
	Use:           "portalctl",
	Short:         "Customer portal operator tool",
	Long:          `Seed portal accounts and preview bookings and documents straight from the upstream platform.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func connect() (*config.Config, *gorm.DB, error) {
	cfg := loadConfig()
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
