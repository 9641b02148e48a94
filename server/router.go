package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 3,
	})
	limitRate := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.GET("/health", s.handleHealthCheck())

	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.POST("/password/forgot", limitRate, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())

	apirouter.GET("/posts", s.handleGetFeed())
	apirouter.GET("/posts/:id", s.handleGetPost())
	apirouter.GET("/comments", s.handleListComments())
	apirouter.GET("/categories", s.handleListCategories())
	apirouter.GET("/reactions", s.OptionalAuthorize(), s.handleGetReactions())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/auth/logout", s.handleLogout())
	authorized.POST("/posts", s.handleCreatePost())
	authorized.PATCH("/posts/:id", s.handleUpdatePost())
	authorized.DELETE("/posts/:id", s.handleDeletePost())
	authorized.POST("/comments", s.handleCreateComment())
	authorized.DELETE("/comments/:id", s.handleDeleteComment())
	authorized.POST("/reactions", s.handleToggleReaction())
	authorized.POST("/categories", s.handleCreateCategory())
	authorized.POST("/upload", s.handleUpload())
}
