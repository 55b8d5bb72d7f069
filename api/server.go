package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/edumetric/edumetric/api/handlers"
	"github.com/edumetric/edumetric/api/middleware"
	"github.com/edumetric/edumetric/api/websocket"
	_ "github.com/edumetric/edumetric/docs"
	"github.com/edumetric/edumetric/internal/auth"
	"github.com/edumetric/edumetric/internal/engine"
	"github.com/edumetric/edumetric/internal/events"
	"github.com/edumetric/edumetric/pkg/config"
	"github.com/edumetric/edumetric/pkg/database"
	"github.com/edumetric/edumetric/pkg/database/queries"
)

type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	config      config.APIConfig
	db          *database.DB
	authService *auth.Service
	wsHub       *websocket.Hub
	wsBridge    *websocket.EventBridge
	engine      *engine.Engine
	bus         *events.EventBus
}

func NewServer(cfg config.APIConfig, db *database.DB, eng *engine.Engine, bus *events.EventBus) *Server {
	if cfg.JWTSecret == "" || cfg.JWTSecret == "change-me-in-production" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	authService := auth.NewService(cfg.JWTSecret, cfg.JWTDuration)
	wsHub := websocket.NewHub()

	s := &Server{
		router:      router,
		config:      cfg,
		db:          db,
		authService: authService,
		wsHub:       wsHub,
		engine:      eng,
		bus:         bus,
	}

	s.setupMiddleware()
	s.setupRoutes()

	// Start WebSocket hub
	go wsHub.Run()

	// Start event bridge to forward engine events to WebSocket clients
	if eng != nil {
		eventsChan := eng.SubscribeAllEvents()
		s.wsBridge = websocket.NewEventBridge(wsHub, eventsChan)
		s.wsBridge.Start()
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(middleware.CORS(s.corsConfig()))
	s.router.Use(middleware.RequestLogger())
	s.router.Use(middleware.TraceID())

	rateLimiter := middleware.NewRateLimiter(s.config.RateLimit, time.Minute)
	s.router.Use(middleware.RateLimit(rateLimiter))
}

// corsConfig overlays the api.cors config section onto the permissive
// defaults; unset lists keep their default values.
func (s *Server) corsConfig() middleware.CORSConfig {
	out := middleware.DefaultCORSConfig()
	cors := s.config.CORS

	if len(cors.AllowedOrigins) > 0 {
		out.AllowOrigins = cors.AllowedOrigins
		out.AllowCredentials = cors.AllowCredentials
	}
	if len(cors.AllowedMethods) > 0 {
		out.AllowMethods = cors.AllowedMethods
	}
	if len(cors.AllowedHeaders) > 0 {
		out.AllowHeaders = cors.AllowedHeaders
	}
	if len(cors.ExposedHeaders) > 0 {
		out.ExposeHeaders = cors.ExposedHeaders
	}
	return out
}

func (s *Server) setupRoutes() {
	// Repositories
	userRepo := queries.NewUserRepository(s.db.DB)
	studentRepo := queries.NewStudentRepository(s.db.DB)
	chatRepo := queries.NewChatLogRepository(s.db.DB)
	alertRepo := queries.NewAlertRepository(s.db.DB)

	// Handlers
	healthHandler := handlers.NewHealthHandler(s.db)
	authHandler := handlers.NewAuthHandler(userRepo, s.authService)
	studentHandler := handlers.NewStudentHandler(studentRepo, s.engine)
	analyticsHandler := handlers.NewAnalyticsHandler(s.engine, alertRepo)
	chatHandler := handlers.NewChatHandler(s.engine, chatRepo, events.NewPublisher(s.bus))

	// Public routes
	s.router.GET("/health", healthHandler.Health)
	s.router.GET("/health/ready", healthHandler.Ready)
	s.router.GET("/health/live", healthHandler.Live)

	// API documentation
	s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	s.router.POST("/auth/login", middleware.AuthRateLimiter(), authHandler.Login)

	// WebSocket route
	s.router.GET("/ws", websocket.ServeWebSocket(s.wsHub))

	// Protected routes
	protected := s.router.Group("/api")
	protected.Use(middleware.JWTAuth(s.authService))
	{
		// Students
		protected.GET("/students", studentHandler.List)
		protected.POST("/students", studentHandler.Create)
		protected.GET("/students/meta", studentHandler.Meta)
		protected.GET("/students/:rno", studentHandler.Get)
		protected.PUT("/students/:rno", studentHandler.Update)
		protected.DELETE("/students/:rno", studentHandler.Delete)
		protected.GET("/students/:rno/predict", studentHandler.Predict)
		protected.GET("/students/:rno/alerts", analyticsHandler.StudentAlerts)

		// Analytics
		protected.GET("/stats", analyticsHandler.Stats)
		protected.GET("/analytics/group", analyticsHandler.Group)
		protected.GET("/alerts", analyticsHandler.Alerts)

		// Chat runs a full roster analysis per question, so it gets its
		// own limiter and a tight body cap on top of the global limits.
		chatLimiter := middleware.NewEndpointRateLimiter()
		chatLimiter.AddEndpoint("/api/chat", 30, time.Minute)
		protected.POST("/chat", chatLimiter.Middleware(), middleware.RequestSizeLimit(4096), chatHandler.Ask)
		protected.GET("/chat/history", chatHandler.History)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the event bridge first
	if s.wsBridge != nil {
		s.wsBridge.Stop()
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}
