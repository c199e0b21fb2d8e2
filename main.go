package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"goal-tracker/config"
	"goal-tracker/database"
	"goal-tracker/logging"
	"goal-tracker/realtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "goal-tracker",
		Short:         "Hedef takip API sunucusu",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logger, err = logging.New(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML ayar dosyası")

	serve := newServeCmd()
	root.AddCommand(serve, newMigrateCmd())
	// Alt komut verilmezse sunucu başlar
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func newServeCmd() *cobra.Command {
	var initDB bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP sunucusunu başlatır",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, initDB)
		},
	}
	cmd.Flags().BoolVar(&initDB, "init-db", true, "başlangıçta şemayı oluştur")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Şemayı oluşturur ve tohum verilerini yükler",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.InitDB(cmd.Context(), database.NewStore(db)); err != nil {
				return fmt.Errorf("şema oluşturulamadı: %w", err)
			}
			logger.Info("şema hazır")
			return nil
		},
	}
}

func serve(ctx context.Context, initDB bool) error {
	// Veritabanı bağlantısı
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("veritabanı bağlantı hatası: %w", err)
	}
	defer db.Close()

	store := database.NewStore(db)
	if initDB {
		if err := database.InitDB(ctx, store); err != nil {
			return fmt.Errorf("şema oluşturulamadı: %w", err)
		}
	}

	hub := realtime.NewHub(cfg.HTTP.CORSOrigins)
	defer hub.Close()

	srv := &http.Server{
		Handler:      newRouter(cfg, store, hub),
		Addr:         cfg.HTTP.Addr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("sunucu başlatılıyor", zap.String("addr", cfg.HTTP.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("sunucu kapatılıyor")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
