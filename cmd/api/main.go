package main

import (
	"context"
	"fmt"

	"brickshare-backend/internal/app"
	"brickshare-backend/internal/auth"
	"brickshare-backend/internal/catalog"
	"brickshare-backend/internal/config"
	"brickshare-backend/internal/ledger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load: " + err.Error())
	}

	fiberApp, db, rdb, err := app.CreateApp(cfg)
	if err != nil {
		panic("app create: " + err.Error())
	}

	// Verify connections before serving
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			panic("Postgres: get DB: " + err.Error())
		}
		if err := sqlDB.Ping(); err != nil {
			panic("Postgres connection failed: " + err.Error())
		}
		fmt.Println("Postgres connected")
	}
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			panic("Redis connection failed: " + err.Error())
		}
		fmt.Println("Redis connected")
	}

	// Seed the single admin identity and the fixed room catalog.
	if db != nil {
		if err := auth.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			panic("admin seed failed: " + err.Error())
		}
		catalogService := &catalog.Service{DB: db, Ledger: ledger.GormLedger{}}
		if err := catalogService.SeedDefaultRooms(context.Background()); err != nil {
			panic("catalog seed failed: " + err.Error())
		}
	}

	fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
	fmt.Printf("Health check: http://localhost:%s/health/json\n", cfg.Port)
	fmt.Println("---")

	if err := fiberApp.Listen(":" + cfg.Port); err != nil {
		panic(err)
	}
}
