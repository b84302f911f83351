package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/coursehub/marketplace-api/internal/api/handler"
	"github.com/coursehub/marketplace-api/internal/api/middleware"
	"github.com/coursehub/marketplace-api/internal/core/ports"
	"github.com/coursehub/marketplace-api/internal/core/service"
	"github.com/coursehub/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/coursehub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/coursehub/marketplace-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	storage ports.MediaStorage,
	mailer ports.Mailer,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	courseRepo := mongodb.NewCourseRepository(db)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL, cfg.ResetTTL)
	limiter := redisdb.NewResetLimiter(rdb, cfg.ResetTTL)

	userService := service.NewUserService(userRepo, courseRepo, tokens, storage, mailer, limiter, cfg.FrontendURL, log)
	courseService := service.NewCourseService(courseRepo, storage, log)

	userHandler := handler.NewUserHandler(userService)
	courseHandler := handler.NewCourseHandler(courseService)

	auth := middleware.Auth(tokens, userRepo)
	admin := middleware.AdminOnly

	// --- API routes ---
	v1 := e.Group("/api/v1")

	v1.POST("/register", userHandler.Register)
	v1.POST("/login", userHandler.Login)
	v1.GET("/logout", userHandler.Logout, auth)
	v1.GET("/me", userHandler.Profile, auth)
	v1.DELETE("/me", userHandler.DeleteProfile, auth)
	v1.PUT("/changepassword", userHandler.ChangePassword, auth)
	v1.PUT("/updateprofile", userHandler.UpdateProfile, auth)
	v1.PUT("/updateprofilepicture", userHandler.UpdateProfilePicture, auth)
	v1.POST("/forgotpassword", userHandler.ForgotPassword)
	v1.PUT("/resetpassword/:token", userHandler.ResetPassword)
	v1.POST("/addtoplaylist", userHandler.AddToPlaylist, auth)
	v1.DELETE("/removefromplaylist", userHandler.RemoveFromPlaylist, auth)

	v1.GET("/admin/users", userHandler.ListUsers, auth, admin)
	v1.PUT("/admin/user/:id", userHandler.UpdateRole, auth, admin)
	v1.DELETE("/admin/user/:id", userHandler.DeleteUser, auth, admin)

	v1.GET("/courses", courseHandler.List)
	v1.POST("/createcourse", courseHandler.Create, auth, admin)
	v1.GET("/course/:id", courseHandler.Get)
	v1.POST("/course/:id", courseHandler.AddLecture, auth, admin)
	v1.DELETE("/course/:id", courseHandler.Delete, auth, admin)
	v1.DELETE("/lecture", courseHandler.DeleteLecture, auth, admin)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
