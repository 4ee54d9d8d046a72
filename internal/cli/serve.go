package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tunasmustika/kasir/internal/api"
	"github.com/tunasmustika/kasir/internal/app/receipt"
	"github.com/tunasmustika/kasir/internal/daemon"
	"github.com/tunasmustika/kasir/internal/domain"
	"github.com/tunasmustika/kasir/internal/infra/auth"
	"github.com/tunasmustika/kasir/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Override the configured host:port")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the POS HTTP server",
	Long:  `Start the kasir HTTP server for the register and admin screens.`,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := daemon.Load()
	if err != nil {
		return err
	}

	db, err := sqlite.Open(cfg.StoreDir())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	authenticator := auth.NewStatic([]auth.Credential{
		{Username: cfg.Auth.AdminUsername, Password: cfg.Auth.AdminPassword, Role: domain.RoleAdmin},
		{Username: cfg.Auth.KasirUsername, Password: cfg.Auth.KasirPassword, Role: domain.RoleKasir},
	})

	server := api.NewServer(db, authenticator, receipt.ShopInfo{
		Name:    cfg.Shop.Name,
		Tagline: cfg.Shop.Tagline,
		Address: cfg.Shop.Address,
		Phone:   cfg.Shop.Phone,
	})
	if cfg.API.EnableMetrics {
		server.EnableMetrics()
	}

	addr := cfg.ListenAddr()
	if override, _ := cmd.Flags().GetString("listen"); override != "" {
		addr = override
	}

	httpServer := &http.Server{
		Addr:    addr,
		Handler: server.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[serve] %s listening on http://%s", cfg.Shop.Name, addr)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case sig := <-sigCh:
		log.Printf("[serve] received %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
