package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tunasmustika/kasir/internal/daemon"
	"github.com/tunasmustika/kasir/internal/domain"
	"github.com/tunasmustika/kasir/internal/infra/sqlite"
)

// ─── Product CLI ────────────────────────────────────────────────────────────
// Catalog maintenance without the admin screen: list, add, remove, restock.

func init() {
	rootCmd.AddCommand(productCmd)
	productCmd.AddCommand(productListCmd)
	productCmd.AddCommand(productAddCmd)
	productCmd.AddCommand(productRemoveCmd)
	productCmd.AddCommand(productRestockCmd)

	productAddCmd.Flags().String("category", "", "Product category")
	productAddCmd.Flags().Int64("price", 0, "Price in whole rupiah")
	productAddCmd.Flags().Int("stock", 0, "Initial stock count")
	productAddCmd.Flags().String("unit", "pcs", "Sale unit (pack, pcs, ...)")
}

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage the product catalog",
}

var productListCmd = &cobra.Command{
	Use:   "list [QUERY]",
	Short: "List catalog products",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		products, err := db.ListProducts(query)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Fprintln(os.Stdout, "No products found.")
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tUNIT")
		for _, p := range products {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
				p.ID, p.Name, p.Category, domain.FormatRupiah(p.Price), p.Stock, p.Unit)
		}
		return tw.Flush()
	},
}

var productAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a product to the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		category, _ := cmd.Flags().GetString("category")
		price, _ := cmd.Flags().GetInt64("price")
		stock, _ := cmd.Flags().GetInt("stock")
		unit, _ := cmd.Flags().GetString("unit")

		p := domain.Product{Name: args[0], Category: category, Price: price, Stock: stock, Unit: unit}
		if err := db.CreateProduct(&p); err != nil {
			return fmt.Errorf("add product: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Added %q (%s) at %s, stock %d %s\n",
			p.Name, p.ID, domain.FormatRupiah(p.Price), p.Stock, p.Unit)
		return nil
	},
}

var productRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Remove a product from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteProduct(args[0]); err != nil {
			return fmt.Errorf("remove product: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Removed product %s\n", args[0])
		return nil
	},
}

var productRestockCmd = &cobra.Command{
	Use:   "restock PRODUCT_ID DELTA",
	Short: "Apply a stock correction (DELTA may be negative)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		var delta int
		if _, err := fmt.Sscanf(args[1], "%d", &delta); err != nil {
			return fmt.Errorf("invalid delta %q", args[1])
		}
		if err := db.AdjustStock(args[0], delta); err != nil {
			return fmt.Errorf("restock: %w", err)
		}
		p, err := db.GetProduct(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "%s now has %d %s in stock\n", p.Name, p.Stock, p.Unit)
		return nil
	},
}

// openStore opens the configured shop database.
func openStore() (*sqlite.DB, error) {
	cfg, err := daemon.Load()
	if err != nil {
		return nil, err
	}
	return sqlite.Open(cfg.StoreDir())
}
