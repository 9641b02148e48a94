package server

import (
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	errs "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/server/response"
	"github.com/lostconnect/backend/services/jwt"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const authCookieName = "auth_token"

// Authorize rejects requests without a valid session token and loads the
// user onto the context.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.currentUser(c)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("unauthorized", http.StatusUnauthorized))
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// OptionalAuthorize loads the user when a valid session token is present
// but lets anonymous requests through.
func (s *Server) OptionalAuthorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := s.currentUser(c); err == nil {
			c.Set("user", user)
			c.Set("userID", user.ID)
		}
		c.Next()
	}
}

func (s *Server) currentUser(c *gin.Context) (*models.User, error) {
	accessToken := getToken(c)
	if accessToken == "" {
		return nil, errors.New("no access token")
	}

	if s.AuthRepository.IsTokenInBlacklist(accessToken) {
		return nil, errors.New("token is blacklisted")
	}

	claims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
	if err != nil {
		return nil, err
	}

	idValue, ok := claims["id"].(float64)
	if !ok {
		return nil, errors.New("invalid userID claim")
	}

	user, err := s.AuthRepository.FindUserByID(uint(idValue))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	c.Set("access_token", accessToken)
	return user, nil
}

// getToken reads the session token from the auth cookie, falling back to
// a bearer Authorization header.
func getToken(c *gin.Context) string {
	if cookie, err := c.Cookie(authCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func userIDFromCtx(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func limitRateForPasswordReset(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        keyFunc,
		BeforeResponse: nil,
	})
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data gin.H, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// decode binds the JSON body, conforms whitespace on tagged fields and
// validates again so length rules apply to the trimmed values.
func decode(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return err
	}
	if err := models.ValidateWhiteSpaces(v); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(v)
}
