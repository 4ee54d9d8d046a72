// Package cli implements the kasir command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kasir",
	Short: "Point-of-sale backend for Tunas Mustika",
	Long: `kasir runs the point-of-sale backend for the Tunas Mustika plastics
shop: product catalog, kasbon customer accounts, the register cart, and the
append-only transaction history with printable receipts.

Start the server with 'kasir serve'; manage the catalog with
'kasir product' and inspect sales with 'kasir sales'.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
