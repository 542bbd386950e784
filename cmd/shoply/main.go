package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	cartapp "github.com/fadhlan/shoply/internal/cart/app"
	cartsqlite "github.com/fadhlan/shoply/internal/cart/infra/sqlite"
	catalogapp "github.com/fadhlan/shoply/internal/catalog/app"
	catalogmongo "github.com/fadhlan/shoply/internal/catalog/infra/mongo"
	checkoutapp "github.com/fadhlan/shoply/internal/checkout/app"
	checkoutmongo "github.com/fadhlan/shoply/internal/checkout/infra/mongo"
	checkoutsqlite "github.com/fadhlan/shoply/internal/checkout/infra/sqlite"
	"github.com/fadhlan/shoply/internal/httpapi"
	"github.com/fadhlan/shoply/internal/identity"
	"github.com/fadhlan/shoply/pkg/config"
	"github.com/fadhlan/shoply/pkg/logger"
	"github.com/fadhlan/shoply/pkg/mongodb"
	"github.com/fadhlan/shoply/pkg/shutdown"
	"github.com/fadhlan/shoply/pkg/sqlitedb"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "shoply",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	db, err := sqlitedb.Open(cfg.SQLitePath)
	if err != nil {
		log.Error("sqlite open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := sqlitedb.Migrate(db); err != nil {
		log.Error("sqlite migrations failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("local store ready", slog.String("path", cfg.SQLitePath))

	mongoClient, err := mongodb.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("mongodb connect failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error("mongodb disconnect failed", slog.Any("err", err))
		}
	}()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	mongoDB := mongoClient.Database(cfg.MongoDB)

	cartSvc := cartapp.NewService(cartsqlite.NewLineStore(db), log)
	catalogSvc := catalogapp.NewService(catalogmongo.NewProductRepo(mongoDB.Collection("products")))
	checkoutSvc := checkoutapp.NewService(
		checkoutmongo.NewOrderStore(mongoDB.Collection("orders")),
		checkoutsqlite.NewOrderMirror(db),
		log,
		checkoutapp.WithPriceReader(catalogSvc),
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Cart:     cartSvc,
		Checkout: checkoutSvc,
		Catalog:  catalogSvc,
		View:     checkoutapp.NewViewState(cartSvc),
		Forms:    checkoutapp.NewFormRegistry(),
		Resolver: identity.NewRedisResolver(redisClient),
		Log:      log,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
