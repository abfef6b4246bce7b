package api

import (
	"net/http"

	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/bhataakib02/cybersecurityCasestudy/pkg/strength"
)

const defaultMaxBatch = 1000

// Settings wires the API to its engine and collectors.
type Settings struct {
	Engine    *strength.Engine
	Stats     *Stats
	Metrics   *Metrics
	MaxBatch  int
	CacheSize int64
	// RateLimit is the global number of requests per second, 0 disables it.
	RateLimit float64
	Gatherer  prometheus.Gatherer
}

func (s Settings) withDefaults() Settings {
	if s.Engine == nil {
		s.Engine = strength.Default()
	}
	if s.Stats == nil {
		s.Stats = NewStats()
	}
	if s.MaxBatch <= 0 {
		s.MaxBatch = defaultMaxBatch
	}
	if s.Gatherer == nil {
		s.Gatherer = prometheus.DefaultGatherer
	}
	return s
}

// Router is the HTTP handler of the API.
type Router struct {
	http.Handler
	release func()
}

// Close releases the resources held by the routes. It is safe to call more than once.
func (r *Router) Close() {
	if r.release != nil {
		r.release()
		r.release = nil
	}
}

// NewRouter builds the HTTP handler of the API: middlewares, /health, /metrics and the /v1
// routes, wrapped for CORS.
func NewRouter(settings Settings) (*Router, error) {
	settings = settings.withDefaults()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(logger.SetLogger(logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
		return zerolog.New(gin.DefaultWriter).With().Timestamp().Str("request_id", c.GetString(requestIDHeader)).Logger()
	})))
	router.Use(settings.Metrics.Handler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(settings.Gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.Use(RateLimit(settings.RateLimit, int(settings.RateLimit)))
	release, err := RegisterApi(v1, settings)
	if err != nil {
		return nil, err
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(router)

	return &Router{Handler: handler, release: release}, nil
}
