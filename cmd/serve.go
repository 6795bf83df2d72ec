package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bookreserve/internal/config"
	"bookreserve/internal/handlers"
	"bookreserve/internal/services"
	"bookreserve/internal/storage"
	"bookreserve/internal/stores"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg := config.Load()

	catalog := stores.NewCatalogStore()
	ledger := stores.NewReservationLedger()
	users := stores.NewUserDirectory(storage.NewUserLog(cfg.UsersCSV))

	// Unreadable seed files are logged, not fatal: the server comes up
	// with empty stores.
	if seed, err := storage.LoadUsers(cfg.UsersCSV); err != nil {
		log.Printf("[WARN] serve: could not load %s: %v", cfg.UsersCSV, err)
	} else {
		users.Load(seed)
		log.Printf("[INFO] serve: loaded %d users from %s", len(seed), cfg.UsersCSV)
	}
	if seed, err := storage.LoadBooks(cfg.BooksCSV); err != nil {
		log.Printf("[WARN] serve: could not load %s: %v", cfg.BooksCSV, err)
	} else {
		catalog.Load(seed)
		log.Printf("[INFO] serve: loaded %d books from %s", len(seed), cfg.BooksCSV)
	}

	svc := services.NewReservationService(catalog, ledger, users)

	if cfg.SnapshotPath != "" {
		if entries, err := storage.LoadSnapshot(cfg.SnapshotPath); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("[WARN] serve: could not load snapshot %s: %v", cfg.SnapshotPath, err)
			}
		} else {
			svc.RestoreLedger(entries)
		}
	}

	router := gin.Default()
	handlers.RegisterRoutes(router, svc)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] serve: listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Printf("[INFO] serve: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] serve: shutdown: %v", err)
		}
	}

	if cfg.SnapshotPath != "" {
		if err := storage.SaveSnapshot(cfg.SnapshotPath, svc.ExportLedger()); err != nil {
			log.Printf("[ERROR] serve: could not save snapshot %s: %v", cfg.SnapshotPath, err)
		} else {
			log.Printf("[INFO] serve: ledger snapshot saved to %s", cfg.SnapshotPath)
		}
	}
	return nil
}
