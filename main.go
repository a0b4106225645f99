package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

// newRouter builds the gin engine with CORS, metrics and all API routes.
func newRouter(cfg Config, h *Handler) *gin.Engine {
	router := gin.Default()
	router.SetTrustedProxies(nil)

	corsConfig := cors.DefaultConfig()
	if slices.Contains(cfg.Server.CORSOrigins, "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET(cfg.Server.MetricsPath, gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	h.registerRoutes(router)
	return router
}

func main() {
	log.SetPrefix("lg/stride-goals-api: ")
	log.SetFlags(0)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := getDBPool(ctx, cfg.Database.URL)
	defer pool.Close()

	store := &pgStore{db: pool}
	h := &Handler{
		db:           pool,
		recs:         newRecommendationService(store, store, newRecommendationMetrics(prometheus.DefaultRegisterer)),
		loginLimiter: newIPRateLimiter(cfg.Auth.LoginRatePerMinute),
		logins:       newLoginMetrics(prometheus.DefaultRegisterer),
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           newRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fmt.Printf("Listening on %s\n", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
	fmt.Println("Server stopped")
}
