package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/ZakariaBatty/fleetdesk/internal/config"
	"github.com/ZakariaBatty/fleetdesk/internal/db"
	"github.com/ZakariaBatty/fleetdesk/internal/server"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN, cfg.SeedAdminEmail, cfg.SeedAdminPassword)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}
	if *seedOnlyFlag {
		if err := db.SeedSuperAdmin(conn, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding completed successfully")
		return
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      withLogging(server.NewApp(conn)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (env=%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	closeDB(conn)
	log.Println("Server stopped gracefully")
}

func closeDB(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
