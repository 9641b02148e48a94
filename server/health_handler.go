package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lostconnect/backend/server/response"
)

func (s *Server) handleHealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "up"
		if s.DB.DB != nil {
			sqlDB, err := s.DB.DB.DB()
			if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				dbStatus = "down"
			}
		} else {
			dbStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "up" {
			status = http.StatusServiceUnavailable
		}

		response.JSON(c, "", status, gin.H{"db": dbStatus}, nil)
	}
}
