package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/server/response"
)

func (s *Server) handleListCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, apiErr := s.CategoryService.ListCategories()
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, gin.H{"categories": categories}, nil)
	}
}

func (s *Server) handleCreateCategory() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateCategoryRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		category, apiErr := s.CategoryService.CreateCategory(&req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "category created", http.StatusCreated, gin.H{"category": category}, nil)
	}
}
