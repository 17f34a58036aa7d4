package auth

import (
	"fmt"

	"github.com/teamtracker/teamtracker-api/internal"
)

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterDTO) Validate() *internal.AppError {
	if dto.Email == "" || dto.Password == "" {
		return internal.NewValidationError("Email and password are required", internal.ErrCodeMissingFields)
	}
	if len(dto.Password) < MinPasswordLength {
		return internal.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
			internal.ErrCodePasswordTooShort)
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() *internal.AppError {
	if dto.Email == "" || dto.Password == "" {
		return internal.NewValidationError("Email and password are required", internal.ErrCodeMissingFields)
	}
	return nil
}

type ForgotPasswordDTO struct {
	Email string `json:"email"`
}

func (dto ForgotPasswordDTO) Validate() *internal.AppError {
	if dto.Email == "" {
		return internal.NewValidationError("Email is required", internal.ErrCodeMissingFields)
	}
	return nil
}

type ResetPasswordDTO struct {
	Password    string `json:"password"`
	AccessToken string `json:"access_token"`
}

func (dto ResetPasswordDTO) Validate() *internal.AppError {
	if dto.Password == "" || dto.AccessToken == "" {
		return internal.NewValidationError("Fields 'password' and 'access_token' are required", internal.ErrCodeMissingFields)
	}
	if len(dto.Password) < MinPasswordLength {
		return internal.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
			internal.ErrCodePasswordTooShort)
	}
	return nil
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (dto ChangePasswordDTO) Validate() *internal.AppError {
	if dto.CurrentPassword == "" || dto.NewPassword == "" {
		return internal.NewValidationError("Fields 'currentPassword' and 'newPassword' are required", internal.ErrCodeMissingFields)
	}
	if len(dto.NewPassword) < MinPasswordLength {
		return internal.NewValidationError(
			fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
			internal.ErrCodePasswordTooShort)
	}
	return nil
}
