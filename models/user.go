package models

import (
	"errors"
	"fmt"
	"time"

	goval "github.com/go-passwd/validator"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/leebenson/conform"
	"golang.org/x/crypto/bcrypt"
)

// User represents a member of the community
type User struct {
	Model
	Name           string     `json:"name" binding:"required,min=2"`
	Email          string     `json:"email" gorm:"unique;not null" binding:"required,email"`
	Image          string     `json:"image,omitempty"`
	EmailVerified  *time.Time `json:"emailVerified,omitempty"`
	Password       string     `json:"password,omitempty" gorm:"-" validate:"omitempty,min=6"`
	HashedPassword string     `json:"-"`
	IsEmailActive  bool       `json:"-"`
	IsSocial       bool       `json:"-"`
	AccessToken    string     `json:"-" gorm:"-"`
}

// PublicUser is the author shape embedded in post/comment payloads.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
	}
}

// Blacklist holds revoked access tokens until they expire
type Blacklist struct {
	Model
	Email string `json:"email"`
	Token string `json:"token"`
}

// CreateSocialUserParams represents the parameters required to create a new social user.
type CreateSocialUserParams struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image"`
	IsSocial bool   `json:"is_social"`
	Active   bool   `json:"active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Image       string `json:"image,omitempty"`
	AccessToken string `json:"access_token"`
}

type ForgotPassword struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPassword struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type GoogleAuthResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(64, errors.New("password cant be more than 64 characters")))
	return passwordValidator.Validate(password)
}

func ValidateWhiteSpaces(data interface{}) error {
	return conform.Strings(data)
}

func TranslateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans) + "; ")
		errs = append(errs, translatedErr)
	}
	return errs
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
