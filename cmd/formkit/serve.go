package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formkit.link/configs"
	"formkit.link/configs/configsdatabase"
	"formkit.link/configs/configslog"
	"formkit.link/configs/configsstorage"
	"formkit.link/database"
	"formkit.link/routes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP sunucusunu başlatır",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.GetConfig()

		configsdatabase.InitDB()
		defer configsdatabase.CloseDB()
		configsstorage.InitBlobStore()

		if autoMigrate {
			if err := database.Initialize(configsdatabase.GetDB(), cfg, true, true); err != nil {
				return err
			}
		}

		app := routes.NewApp(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			configslog.Log.Info("Sunucu başlatılıyor", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
			errCh <- app.Listen(":" + cfg.Port)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			configslog.Log.Error("Sunucu düzgün kapatılamadı", zap.Error(err))
			return err
		}
		configslog.SLog.Info("Sunucu durduruldu.")
		return nil
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "başlamadan önce migrasyon ve seeder'ları çalıştır")
}
