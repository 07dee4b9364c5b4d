package main

import (
	"formkit.link/configs"
	"formkit.link/configs/configsdatabase"
	"formkit.link/configs/configslog"
	"formkit.link/database"

	"github.com/spf13/cobra"
)

var seedFlag bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Veritabanı tablolarını oluşturur",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configsdatabase.InitDB()
		defer configsdatabase.CloseDB()

		configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
		if err := database.Initialize(configsdatabase.GetDB(), configs.GetConfig(), true, seedFlag); err != nil {
			return err
		}
		configslog.SLog.Info("Veritabanı başlatma işlemi tamamlandı.")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedFlag, "seed", false, "sistem kullanıcısı seeder'ını da çalıştır")
}
