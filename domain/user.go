package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessRegister     = "user registered successfully"
	MessageSuccessLogin        = "login success"
	MessageSuccessGetProfile   = "success get profile"
	MessageSuccessUpdateUser   = "profile updated successfully"
	MessageSuccessUploadAvatar = "avatar uploaded successfully"

	MessageFailedRegister     = "failed to register user"
	MessageFailedLogin        = "failed to login"
	MessageFailedGetProfile   = "failed to get profile"
	MessageFailedUpdateUser   = "failed to update profile"
	MessageFailedUploadAvatar = "failed to upload avatar"

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrCredentialsInvalid = errors.New("email or password is wrong")
)

type (
	UserRegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
	}

	UserRegisterResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	UserLoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UserLoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserUpdateRequest struct {
		Name        string `json:"name" validate:"omitempty"`
		CompanyName string `json:"company_name" validate:"omitempty"`
		TaxNumber   string `json:"tax_number" validate:"omitempty"`
	}

	UserResponse struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		Name        string `json:"name"`
		Role        string `json:"role"`
		AvatarURL   string `json:"avatar_url,omitempty"`
		CompanyName string `json:"company_name,omitempty"`
		TaxNumber   string `json:"tax_number,omitempty"`
	}

	UploadAvatarRequest struct {
		Avatar *multipart.FileHeader `json:"avatar" form:"avatar" validate:"required"`
	}
)
