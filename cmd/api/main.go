package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/shearbook/shearbook/internal/config"
	dbpkg "github.com/shearbook/shearbook/internal/db"
	"github.com/shearbook/shearbook/internal/jobs"
	"github.com/shearbook/shearbook/internal/realtime"
	"github.com/shearbook/shearbook/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}
	notifier := realtime.NewNotifier(rdb)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	backfillUC := routes.RegisterRoutes(r, db, cfg, notifier)

	reminders := jobs.NewReminderService(db, cfg)
	scheduler := jobs.NewScheduler(db, backfillUC, reminders)
	scheduler.Start()
	defer scheduler.Stop()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
