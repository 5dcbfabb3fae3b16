// @title QR Quiz API
// @version 1.0
// @description Backend for a QR-code quiz platform: creators publish quizzes
// @description behind printed QR codes, participants scan and answer.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"qr_quiz_backend/internal/app"
	"qr_quiz_backend/internal/config"
	"qr_quiz_backend/pkg/configwatcher"
	"qr_quiz_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			logger.Log.Info("Config reloaded",
				zap.Strings("allowed_origins", c.CORS.AllowedOrigins))
		}
	})

	application.Run()
}
