package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/server/response"
)

// paramID parses a numeric path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, errs.New("invalid "+name, http.StatusBadRequest)
	}
	return uint(value), nil
}

func (s *Server) handleCreatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.CreatePostRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		post, apiErr := s.PostService.CreatePost(c.Request.Context(), userID, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "post created", http.StatusCreated, gin.H{"post": post}, nil)
	}
}

func (s *Server) handleGetFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		var query models.FeedQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		posts, pagination, apiErr := s.PostService.GetFeed(query)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"posts":      posts,
			"pagination": pagination,
		}, nil)
	}
}

func (s *Server) handleGetPost() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := paramID(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		post, apiErr := s.PostService.GetPost(postID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{"post": post}, nil)
	}
}

func (s *Server) handleUpdatePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		postID, err := paramID(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		var req models.UpdatePostRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		post, apiErr := s.PostService.UpdatePost(postID, userID, &req)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "post updated", http.StatusOK, gin.H{"post": post}, nil)
	}
}

func (s *Server) handleDeletePost() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		postID, err := paramID(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if apiErr := s.PostService.DeletePost(c.Request.Context(), postID, userID); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "post deleted", http.StatusOK, nil, nil)
	}
}
