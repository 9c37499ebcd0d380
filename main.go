package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"vulnops/auth"
	"vulnops/challenges"
	"vulnops/config"
	"vulnops/database"
	"vulnops/feed"
	"vulnops/handlers"
	"vulnops/leaderboard"
	"vulnops/store"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	flagSet := pflag.NewFlagSet("vulnops", pflag.ContinueOnError)
	flagSet.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flagSet.StringVar(&cfg.Database.Host, "db", cfg.Database.Host, "PostgreSQL host for solve history (empty keeps it in memory)")
	flagSet.BoolVar(&cfg.DemoSolves, "demo", cfg.DemoSolves, "start with the demo accounts' solved challenges")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	// Çözüm geçmişi
	var solves database.SolveRepository
	if cfg.Database.Enabled() {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("veritabanı bağlantı hatası: %w", err)
		}
		defer db.Close()

		if err := database.InitDB(db); err != nil {
			return fmt.Errorf("tablolar oluşturulamadı: %w", err)
		}
		solves = database.NewPostgresSolveRepository(db)
	} else {
		log.Println("DB_HOST yok, çözüm geçmişi bellekte tutuluyor")
		solves = database.NewMemorySolveRepository(database.SeedSolves()...)
	}

	registry := challenges.NewRegistry()
	if cfg.DemoSolves {
		registry = challenges.NewDemoRegistry()
	}

	app := handlers.App{
		Sessions:  store.NewCookieStore(cfg.SessionSecret, cfg.SessionMaxAge),
		Directory: auth.NewDirectory(),
		Tokens:    auth.NewTokens(cfg.JWTSecret),
		Registry:  registry,
		Board:     leaderboard.NewBoard(),
		Solves:    solves,
		Feed:      feed.NewHub(),
	}

	// Sunucuyu başlat
	srv := &http.Server{
		Handler:      handlers.Handler(app, cfg.AllowedOrigins),
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	log.Printf("Sunucu başlatılıyor: %s", cfg.Addr)
	log.Printf("Admin panel: %s/admin", cfg.Addr)
	return srv.ListenAndServe()
}
