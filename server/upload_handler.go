package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	errs "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/server/response"
)

const uploadFolder = "lostconnect/uploads"

// handleUpload accepts a base64 data URI and stores the processed image
// plus its thumbnail, returning the hosted URLs.
func (s *Server) handleUpload() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Data   string `json:"data" binding:"required"`
			Folder string `json:"folder"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		if !strings.HasPrefix(req.Data, "data:image/") {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("only image data URIs are accepted", http.StatusBadRequest))
			return
		}

		// Only known prefixes; anything else would let clients scatter
		// objects across the bucket.
		folder := uploadFolder
		switch req.Folder {
		case "":
		case "posts":
			folder = "lostconnect/posts"
		case "comments":
			folder = "lostconnect/comments"
		default:
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("unknown folder", http.StatusBadRequest))
			return
		}

		image, err := s.MediaService.UploadDataURI(c.Request.Context(), req.Data, folder)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("upload failed", http.StatusInternalServerError))
			return
		}

		response.JSON(c, "upload successful", http.StatusCreated, gin.H{"image": image}, nil)
	}
}
