// Command formkit web sunucusunu ve veritabanı bakım komutlarını çalıştırır.
package main

import (
	"fmt"
	"os"

	"formkit.link/configs"
	"formkit.link/configs/configslog"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "formkit",
	Short:         "formkit form oluşturma ve yanıt toplama sunucusu",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env önce yüklenir; logger APP_ENV ve LOG_LEVEL'i ortamdan okur.
		cfg := configs.LoadConfig()
		configslog.InitLogger()
		if err := cfg.Validate(); err != nil {
			return err
		}
		configs.SetConfig(cfg)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		configslog.SyncLogger()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
