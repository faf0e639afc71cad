package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/onecheckout/checkout-demo/internal/catalog"
	"github.com/onecheckout/checkout-demo/internal/client"
	"github.com/onecheckout/checkout-demo/internal/config"
	"github.com/onecheckout/checkout-demo/internal/handler"
	"github.com/onecheckout/checkout-demo/internal/repository"
	"github.com/onecheckout/checkout-demo/internal/server"
	"github.com/onecheckout/checkout-demo/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	var (
		store repository.OrderStore
		cat   catalog.Catalog
	)
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, running with in-memory store")
		store = repository.NewMemoryStore()
		cat = catalog.NewMemoryCatalog(catalog.DefaultVariants()...)
	} else {
		db := client.InitDatabase(cfg.DatabaseURL)
		store = repository.NewGormStore(db)

		gormCatalog := catalog.NewGormCatalog(db)
		if err := gormCatalog.Seed(context.Background(), catalog.DefaultVariants()); err != nil {
			log.Fatal("seed catalog:", err)
		}
		cat = gormCatalog
	}

	paymentClient := client.NewPaymentClient(&cfg.Payment, cfg.BaseURL)
	orderService := service.NewOrderService(store, cat, paymentClient)
	orderHandler := handler.NewOrderHandler(orderService, cat, &cfg.Payment)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(orderHandler)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	_, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
