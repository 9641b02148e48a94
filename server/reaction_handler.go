package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/server/response"
)

func (s *Server) handleToggleReaction() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromCtx(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.ToggleReactionRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		result, state, apiErr := s.ReactionService.ToggleReaction(userID, req.PostID, req.Type)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		payload := gin.H{
			"action":       result.Action,
			"counts":       state.Counts,
			"userReaction": state.UserReaction,
		}
		if result.Type != "" {
			payload["type"] = result.Type
		}
		if result.PreviousType != "" {
			payload["previousType"] = result.PreviousType
		}
		response.JSON(c, "", http.StatusOK, payload, nil)
	}
}

func (s *Server) handleGetReactions() gin.HandlerFunc {
	return func(c *gin.Context) {
		postID, err := strconv.ParseUint(c.Query("postId"), 10, 64)
		if err != nil || postID == 0 {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid postId", http.StatusBadRequest))
			return
		}

		var userID *uint
		if id, ok := userIDFromCtx(c); ok {
			userID = &id
		}

		state, apiErr := s.ReactionService.GetReactionState(uint(postID), userID)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "", http.StatusOK, gin.H{
			"counts":       state.Counts,
			"userReaction": state.UserReaction,
		}, nil)
	}
}
