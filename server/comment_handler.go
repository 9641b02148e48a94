package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/server/response"
)

func (s *Server) handleCreateComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.CreateCommentRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		comment, apiErr := s.CommentService.CreateComment(c.Request.Context(), userID, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "comment created", http.StatusCreated, gin.H{"comment": comment}, nil)
	}
}

func (s *Server) handleListComments() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query models.CommentListQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		comments, pagination, apiErr := s.CommentService.ListComments(query)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"comments":   comments,
			"pagination": pagination,
		}, nil)
	}
}

func (s *Server) handleDeleteComment() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		commentID, err := paramID(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.CommentService.DeleteComment(c.Request.Context(), commentID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "comment deleted", http.StatusOK, nil, nil)
	}
}
