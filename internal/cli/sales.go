package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tunasmustika/kasir/internal/app/receipt"
	"github.com/tunasmustika/kasir/internal/daemon"
	"github.com/tunasmustika/kasir/internal/domain"
)

// ─── Sales CLI ──────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(salesCmd)
	salesCmd.Flags().Int("limit", 20, "How many recent sales to show")
	salesCmd.AddCommand(salesReceiptCmd)
}

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Show recent sales",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		txs, err := db.ListTransactions(limit)
		if err != nil {
			return err
		}
		if len(txs) == 0 {
			fmt.Fprintln(os.Stdout, "No sales recorded yet.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tPAYMENT\tTOTAL\tCUSTOMER")
		for _, tx := range txs {
			customer := "-"
			if tx.Customer != nil {
				customer = tx.Customer.Name
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				tx.ID, tx.Timestamp.Format("02-01-2006 15:04"),
				tx.PaymentType, domain.FormatRupiah(tx.Total), customer)
		}
		return tw.Flush()
	},
}

var salesReceiptCmd = &cobra.Command{
	Use:   "receipt TRANSACTION_ID",
	Short: "Print the struk for a past sale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := daemon.Load()
		if err != nil {
			return err
		}
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		tx, err := db.GetTransaction(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, receipt.Render(tx, receipt.ShopInfo{
			Name:    cfg.Shop.Name,
			Tagline: cfg.Shop.Tagline,
			Address: cfg.Shop.Address,
			Phone:   cfg.Shop.Phone,
		}))
		return nil
	},
}
