package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	"github.com/iliyamo/greeting-service/internal/config"
	"github.com/iliyamo/greeting-service/internal/database"
	"github.com/iliyamo/greeting-service/internal/handler"
	"github.com/iliyamo/greeting-service/internal/middleware"
	"github.com/iliyamo/greeting-service/internal/queue"
	"github.com/iliyamo/greeting-service/internal/repository"
	"github.com/iliyamo/greeting-service/internal/router"
	"github.com/iliyamo/greeting-service/internal/seed"
	"github.com/iliyamo/greeting-service/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open %s database: %v", cfg.DBDriver, err)
	}
	store := database.NewStore(db)
	defer store.Close()

	repo := repository.NewGreetingRepo(store, cfg.DBDriver)
	inserted, err := seed.Run(ctx, repo)
	if err != nil {
		log.Fatalf("seed greetings: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	logger := glog.New("greetings")
	logger.SetLevel(cfg.LogLevel())
	e.Logger = logger
	if inserted > 0 {
		e.Logger.Infof("seeded %d greetings", inserted)
	}

	var events service.EventPublisher
	if cfg.EventsEnabled {
		pub := queue.NewPublisher(cfg.AMQPURL)
		defer pub.Close()
		events = pub
	}
	if cfg.EventsConsumer {
		go func() {
			if err := queue.StartGreetingConsumer(ctx, cfg.AMQPURL, cfg.EventLogDir); err != nil && !errors.Is(err, context.Canceled) {
				e.Logger.Errorf("greeting consumer stopped: %v", err)
			}
		}()
	}

	svc := service.NewGreetingService(repo, events, logger)
	defer svc.Wait()

	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()
	var apiMW []echo.MiddlewareFunc
	if cacheCfg.Enabled || rlCfg.Enabled {
		rdb := config.NewRedisClient(ctx, config.LoadRedisConfig())
		if rdb == nil {
			e.Logger.Warn("redis unavailable; rate limiting and response cache disabled")
		} else {
			defer rdb.Close()
		}
		apiMW = append(apiMW, middleware.NewTokenBucket(rlCfg, rdb), middleware.NewRedisCache(cacheCfg, rdb))
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	router.RegisterRoutes(e, store)
	router.RegisterAPI(e, handler.NewGreetingHandler(svc), apiMW...)

	addr := ":" + cfg.Port
	e.Logger.Infof("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBDriver)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Errorf("shutdown: %v", err)
	}
}
