package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/codeforge/problemhub/internal/api/docs"
	"github.com/codeforge/problemhub/internal/api/handler"
	"github.com/codeforge/problemhub/internal/api/middleware"
	"github.com/codeforge/problemhub/internal/core/domain"
	"github.com/codeforge/problemhub/internal/core/ports"
)

const defaultBodyLimit = "12M"

// Services bundles the application services the routes delegate to.
type Services struct {
	Auth     ports.AuthService
	Users    ports.UserService
	Problems ports.ProblemService
	Tags     ports.TagService
	Comments ports.CommentService
	Ratings  ports.RatingService
	Files    ports.FileService
}

// Options tunes the HTTP surface.
type Options struct {
	Log zerolog.Logger
	// Readiness lists the dependency checks behind GET /health/ready.
	Readiness map[string]handler.DependencyCheck
	// BodyLimit caps request bodies, e.g. "12M".
	BodyLimit    string
	AllowOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	bodyLimit := opts.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// HTTP metrics live in a registry owned by this router so that several
	// routers (tests) never register the same collectors twice.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: opts.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(bodyLimit))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "problemhub",
		Subsystem:                 "http",
		Registerer:                reg,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users)
	problemHandler := handler.NewProblemHandler(svc.Problems)
	tagHandler := handler.NewTagHandler(svc.Tags)
	commentHandler := handler.NewCommentHandler(svc.Comments)
	ratingHandler := handler.NewRatingHandler(svc.Ratings)
	fileHandler := handler.NewFileHandler(svc.Files)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Readiness)

	authenticate := middleware.Auth(svc.Auth)
	maybeAuthenticate := middleware.OptionalAuth(svc.Auth)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)
	authors := middleware.RequireRole(domain.RoleAdmin, domain.RoleInterviewer)

	// --- Probes, metrics, docs (no auth required) ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/api/docs/json", serveSwaggerJSON)
	e.GET("/api/docs/*", echoSwagger.WrapHandler)
	e.GET("/uploads/:key", fileHandler.Serve)

	api := e.Group("/api")

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, authenticate)

	// --- Users: self or admin, checked by the service ---
	users := api.Group("/users", authenticate)
	users.GET("", userHandler.List, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Problems ---
	problems := api.Group("/problems")
	problems.GET("", problemHandler.List)
	problems.GET("/stats/overview", problemHandler.Stats)
	problems.GET("/:id", problemHandler.Get)
	problems.POST("", problemHandler.Create, authenticate, authors)
	problems.PUT("/:id", problemHandler.Update, authenticate, authors)
	problems.DELETE("/:id", problemHandler.Delete, authenticate, authors)

	// --- Tags ---
	tags := api.Group("/tags")
	tags.GET("", tagHandler.List)
	tags.GET("/popular", tagHandler.Popular)
	tags.POST("", tagHandler.Create, authenticate, adminOnly)
	tags.PUT("/:id", tagHandler.Update, authenticate, adminOnly)
	tags.DELETE("/:id", tagHandler.Delete, authenticate, adminOnly)

	// --- Comments: ownership checked by the service ---
	comments := api.Group("/comments")
	comments.GET("/problems/:problemId", commentHandler.ListByProblem)
	comments.POST("", commentHandler.Create, authenticate)
	comments.PUT("/:id", commentHandler.Update, authenticate)
	comments.DELETE("/:id", commentHandler.Delete, authenticate)

	// --- Ratings ---
	ratings := api.Group("/ratings")
	ratings.POST("", ratingHandler.Rate, authenticate)
	ratings.GET("/problems/:problemId", ratingHandler.Summary, maybeAuthenticate)
	ratings.GET("/problems/:problemId/my-rating", ratingHandler.Mine, authenticate)

	// --- Files: delete additionally requires uploader or admin ---
	files := api.Group("/files")
	files.POST("/upload", fileHandler.Upload, authenticate, authors)
	files.GET("/problem/:problemId", fileHandler.ListByProblem)
	files.GET("/:id/download", fileHandler.Download)
	files.DELETE("/:id", fileHandler.Delete, authenticate, authors)

	return e
}

// requestLogger feeds Echo's request logger into zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= http.StatusInternalServerError {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

// serveSwaggerJSON handles GET /api/docs/json with the raw OpenAPI document.
func serveSwaggerJSON(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(doc))
}
