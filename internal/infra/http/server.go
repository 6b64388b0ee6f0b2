package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Uchiha-Network/Story-Guard/internal/config"
	"github.com/Uchiha-Network/Story-Guard/internal/domain"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/fingerprint"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/jsonstore"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/ratelimit"
	"github.com/Uchiha-Network/Story-Guard/internal/infra/registrar"
	"github.com/Uchiha-Network/Story-Guard/internal/usecase"
)

type Server struct {
	cfg   config.Config
	store *jsonstore.Store
	r     *gin.Engine

	registerUC *usecase.RegisterAsset
	scanUC     *usecase.ScanPipeline
	statsUC    *usecase.StatsAggregator

	rateLimiter         domain.RateLimiter
	rateLimitRequests   int
	rateLimitWindow     time.Duration
	rateLimitFailClosed bool
}

func NewServer(cfg config.Config, store *jsonstore.Store) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r}
	s.initDeps()
	s.routes()
	return s
}

// ServerDeps lets tests swap any collaborator.
type ServerDeps struct {
	Register    *usecase.RegisterAsset
	Scan        *usecase.ScanPipeline
	Stats       *usecase.StatsAggregator
	RateLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, store *jsonstore.Store, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:        cfg,
		store:      store,
		r:          r,
		registerUC: deps.Register,
		scanUC:     deps.Scan,
		statsUC:    deps.Stats,
	}
	s.initRateLimit(deps.RateLimiter)
	s.routes()
	return s
}

func (s *Server) initDeps() {
	gen := fingerprint.NewGenerator()
	matcher := fingerprint.NewMatcher()

	s.registerUC = &usecase.RegisterAsset{
		Assets:    s.store,
		Prints:    gen,
		Registrar: registrar.NewMock(),
	}
	s.scanUC = &usecase.ScanPipeline{
		Assets:      s.store,
		Violations:  s.store,
		Scans:       s.store,
		Match:       matcher,
		Threshold:   s.cfg.MatchThreshold,
		Concurrency: s.cfg.ScanConcurrency,
	}
	s.statsUC = &usecase.StatsAggregator{
		Assets:     s.store,
		Violations: s.store,
		Scans:      s.store,
		Window:     s.cfg.StatsWindow(),
	}

	s.initRateLimit(nil)
}

func (s *Server) initRateLimit(override domain.RateLimiter) {
	if override != nil {
		s.rateLimiter = override
	}
	if s.rateLimiter == nil && s.cfg.RateLimitRequests > 0 {
		if s.cfg.RedisAddr != "" {
			if limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil); err == nil {
				s.rateLimiter = limiter
			}
		}
		if s.rateLimiter == nil {
			s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{
				MaxKeys: s.cfg.RateLimitMaxKeys,
			})
		}
	}
	s.rateLimitRequests = s.cfg.RateLimitRequests
	s.rateLimitWindow = s.cfg.RateLimitWindow()
	s.rateLimitFailClosed = s.cfg.RateLimitFailClosed
}

func (s *Server) routes() {
	s.r.GET("/healthz", s.handleHealth)

	v1 := s.r.Group("/v1")
	{
		v1.POST("/assets", s.handleRegisterAsset)
		v1.GET("/assets", s.handleListAssets)
		v1.DELETE("/assets/:id", s.handleDeleteAsset)

		v1.POST("/scans", s.handleRunScan)
		v1.GET("/scans", s.handleScanHistory)

		v1.GET("/violations", s.handleListViolations)
		v1.PATCH("/violations/:id", s.handleUpdateViolation)

		v1.GET("/stats", s.handleStats)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "ok"
	durability := "ok"
	if s.store != nil {
		if err := s.store.LastPersistError(); err != nil {
			status = "degraded"
			durability = err.Error()
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "durability": durability})
}

func (s *Server) Run() error {
	return s.r.Run(s.cfg.HTTPAddr)
}
