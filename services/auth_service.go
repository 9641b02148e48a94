package services

import (
	"log"
	"net/http"

	"github.com/lostconnect/backend/config"
	"github.com/lostconnect/backend/db"
	apiError "github.com/lostconnect/backend/errors"
	"github.com/lostconnect/backend/models"
	"github.com/lostconnect/backend/services/jwt"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService interface
type AuthService interface {
	SignupUser(user *models.User) (*models.User, error)
	LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error)
	SocialLoginUser(params *models.CreateSocialUserParams) (*models.LoginResponse, *apiError.Error)
	ResetPassword(userID uint, newPassword string) *apiError.Error
}

// authService struct
type authService struct {
	Config   *config.Config
	authRepo db.AuthRepository
}

// NewAuthService instantiate an authService
func NewAuthService(authRepo db.AuthRepository, conf *config.Config) AuthService {
	return &authService{
		Config:   conf,
		authRepo: authRepo,
	}
}

func (a *authService) SignupUser(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}

	if err := a.authRepo.IsEmailExist(user.Email); err != nil {
		log.Printf("SignupUser error: %v", err)
		return nil, apiError.GetUniqueContraintError(err)
	}

	if err := models.ValidatePassword(user.Password); err != nil {
		return nil, apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashedPassword, err := GenerateHashPassword(user.Password)
	if err != nil {
		log.Printf("SignupUser error hashing password: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	user.HashedPassword = hashedPassword
	user.Password = ""

	created, err := a.authRepo.CreateUser(user)
	if err != nil {
		log.Printf("SignupUser error creating user: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return created, nil
}

func GenerateHashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hashedPassword), err
}

func (a *authService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	foundUser, err := a.authRepo.FindUserByEmail(loginRequest.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
		}
		log.Printf("LoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	if foundUser.IsSocial {
		return nil, apiError.New("account uses social sign-in", http.StatusBadRequest)
	}

	if err := foundUser.VerifyPassword(loginRequest.Password); err != nil {
		return nil, apiError.New("invalid email or password", http.StatusUnauthorized)
	}

	return a.buildLoginResponse(foundUser)
}

// SocialLoginUser signs in (creating on first use) a user verified by an
// OAuth provider.
func (a *authService) SocialLoginUser(params *models.CreateSocialUserParams) (*models.LoginResponse, *apiError.Error) {
	user, err := a.authRepo.CreateSocialUser(params)
	if err != nil {
		log.Printf("SocialLoginUser error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return a.buildLoginResponse(user)
}

func (a *authService) buildLoginResponse(user *models.User) (*models.LoginResponse, *apiError.Error) {
	accessToken, err := jwt.GenerateToken(user.ID, user.Email, a.Config.JWTSecret)
	if err != nil {
		log.Printf("error generating access token: %v", err)
		return nil, apiError.ErrInternalServerError
	}

	return &models.LoginResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Image:       user.Image,
		AccessToken: accessToken,
	}, nil
}

func (a *authService) ResetPassword(userID uint, newPassword string) *apiError.Error {
	user, err := a.authRepo.FindUserByID(userID)
	if err != nil {
		return apiError.New("user not found", http.StatusNotFound)
	}

	if err := models.ValidatePassword(newPassword); err != nil {
		return apiError.New(err.Error(), http.StatusBadRequest)
	}

	hashed, err := GenerateHashPassword(newPassword)
	if err != nil {
		return apiError.ErrInternalServerError
	}
	if err := a.authRepo.UpdatePassword(hashed, user.Email); err != nil {
		log.Printf("ResetPassword error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}
