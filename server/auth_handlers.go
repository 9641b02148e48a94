package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	errs "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/server/response"
	"github.com/lostconnect/backend/services/jwt"
)

const authCookieMaxAge = int(jwt.AccessTokenValidity / time.Second)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := decode(c, &user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		created, err := s.AuthService.SignupUser(&user)
		if err != nil {
			if e, ok := err.(*errs.Error); ok {
				response.JSON(c, "", e.Status, nil, e)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "signup successful", http.StatusCreated, gin.H{"user": created.Public()}, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}

		s.setAuthCookie(c, userResponse.AccessToken)
		response.JSON(c, "login successful", http.StatusOK, gin.H{"user": userResponse}, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.New("access token not found in context", http.StatusInternalServerError))
			return
		}

		accessToken, ok := token.(string)
		if !ok {
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.New("access token is not a string", http.StatusInternalServerError))
			return
		}

		if err := s.AuthRepository.AddToBlackList(&models.Blacklist{Token: accessToken}); err != nil {
			log.Printf("error adding access token to blacklist: %v", err)
			respondAndAbort(c, "logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		s.clearAuthCookie(c)
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) setAuthCookie(c *gin.Context, token string) {
	secure := s.Config.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, authCookieMaxAge, "/", "", secure, true)
}

func (s *Server) clearAuthCookie(c *gin.Context) {
	secure := s.Config.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", secure, true)
}

func (s *Server) googleOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.Config.GoogleClientID,
		ClientSecret: s.Config.GoogleClientSecret,
		RedirectURL:  s.Config.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}
}

func (s *Server) HandleGoogleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := generateJWTState(s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("failed to generate state", http.StatusInternalServerError))
			return
		}

		authURL := s.googleOauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

func (s *Server) HandleGoogleCallback() gin.HandlerFunc {
	return func(c *gin.Context) {
		state := c.Query("state")
		if !verifyJWTState(state, s.Config.JWTSecret) {
			response.JSON(c, "", http.StatusForbidden, nil, errs.New("invalid or expired state", http.StatusForbidden))
			return
		}

		code := c.Query("code")
		if code == "" {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("missing authorization code", http.StatusBadRequest))
			return
		}

		conf := s.googleOauthConfig()
		token, err := conf.Exchange(c.Request.Context(), code)
		if err != nil {
			log.Printf("token exchange failed: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("token exchange failed", http.StatusInternalServerError))
			return
		}

		svc, err := goauth2.NewService(c.Request.Context(), option.WithTokenSource(conf.TokenSource(c.Request.Context(), token)))
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("failed to create oauth client", http.StatusInternalServerError))
			return
		}

		userInfo, err := svc.Userinfo.Get().Do()
		if err != nil || userInfo.Email == "" {
			log.Printf("failed to fetch user information: %v", err)
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.New("failed to fetch user information", http.StatusInternalServerError))
			return
		}

		loginResponse, apiErr := s.AuthService.SocialLoginUser(&models.CreateSocialUserParams{
			Email:    userInfo.Email,
			Name:     userInfo.Name,
			Image:    userInfo.Picture,
			IsSocial: true,
			Active:   true,
		})
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		s.setAuthCookie(c, loginResponse.AccessToken)
		response.JSON(c, "login successful", http.StatusOK, gin.H{"user": loginResponse}, nil)
	}
}

// generateJWTState signs a short-lived token carried through the
// OAuth redirect so the callback can reject forged requests.
func generateJWTState(secret string) (string, error) {
	claims := jwtlib.MapClaims{
		"state": uuid.New().String(),
		"exp":   time.Now().Add(10 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func verifyJWTState(state, secret string) bool {
	if state == "" {
		return false
	}
	_, err := jwt.ValidateAndGetClaims(state, secret)
	return err == nil
}

func (s *Server) HandleForgotPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ForgotPassword
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}

		user, err := s.AuthRepository.FindUserByEmail(req.Email)
		if err != nil || user == nil {
			// Do not reveal whether the address is registered.
			response.JSON(c, "if the email is registered, a reset link has been sent", http.StatusOK, nil, nil)
			return
		}

		resetToken, err := jwt.GeneratePasswordResetToken(user.ID, s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "failed to generate reset token", http.StatusInternalServerError, nil, err)
			return
		}

		baseURL := s.Config.BaseUrl
		if baseURL == "" {
			baseURL = "http://localhost:3000"
		}
		resetLink := fmt.Sprintf("%s/reset-password/%s", baseURL, resetToken)

		if _, err := s.Mail.SendResetPassword(user.Email, resetLink); err != nil {
			log.Printf("error sending reset email: %v", err)
			response.JSON(c, "connection to mail service interrupted", http.StatusInternalServerError, nil, err)
			return
		}

		response.JSON(c, "if the email is registered, a reset link has been sent", http.StatusOK, nil, nil)
	}
}

func (s *Server) ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ResetPassword
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		if req.Password != req.ConfirmPassword {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("passwords do not match", http.StatusBadRequest))
			return
		}

		claims, err := jwt.ValidateAndGetClaims(c.Param("token"), s.Config.JWTSecret)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid or expired reset token", http.StatusUnauthorized))
			return
		}
		if reset, ok := claims["reset"].(bool); !ok || !reset {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid or expired reset token", http.StatusUnauthorized))
			return
		}
		idValue, ok := claims["id"].(float64)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("invalid or expired reset token", http.StatusUnauthorized))
			return
		}

		if apiErr := s.AuthService.ResetPassword(uint(idValue), req.Password); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}

		response.JSON(c, "password reset successfully", http.StatusOK, nil, nil)
	}
}
