package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/classtrack-dev/classtrack/backend/internal/domain"
	"github.com/classtrack-dev/classtrack/backend/internal/repository"
	"github.com/classtrack-dev/classtrack/backend/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	expiration := now.Add(time.Duration(h.config.JWT.Expiration) * time.Second)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiration),
	})

	return token.SignedString([]byte(h.config.JWT.Secret))
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=teacher student"`
		Email    string `json:"email" validate:"omitempty,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         domain.Role(req.Role),
		Email:        req.Email,
	}

	if err := h.store.CreateUser(user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			h.errorResponse(w, r, http.StatusBadRequest, "Username already in use")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// courtesy mail: the registration itself already succeeded, so a
	// queueing failure is logged instead of failing the request
	if user.Email != "" {
		msg := domain.MailMessage{
			Type: "welcome",
			To:   user.Email,
			Data: domain.WelcomeMailData{
				Username: user.Username,
				Role:     string(user.Role),
			},
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
		defer cancel()

		if err := h.mailer.Publish(ctx, msg); err != nil {
			slog.Error("failed to queue welcome mail", "username", user.Username, "error", err)
		}
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "User registered successfully",
		"token":   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, "User not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.errorResponse(w, r, http.StatusUnauthorized, "Invalid username or password")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Login successful",
		"token":   token,
	})
}

func resetPasswordOTPKey(username string) string {
	return fmt.Sprintf("otp_%s_reset_password", username)
}

func (h *Handler) RequireResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sent := map[string]string{"message": "A verification code has been sent if the account has an email on file"}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// claim success for unknown usernames so the endpoint cannot
			// be used to probe for accounts
			h.writeJSON(w, r, http.StatusOK, sent)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if user.Email == "" {
		h.writeJSON(w, r, http.StatusOK, sent)
		return
	}

	otp := utils.GenerateRandomOTP()

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.otps.Set(ctx, resetPasswordOTPKey(user.Username), otp, time.Duration(h.config.OTP.Expiration)*time.Second); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	msg := domain.MailMessage{
		Type: "reset_password",
		To:   user.Email,
		Data: domain.ResetPasswordMailData{
			Username:   user.Username,
			OTP:        otp,
			Expiration: h.config.OTP.Expiration / 60, // shown in minutes
		},
	}

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailer.Publish(ctx, msg); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, sent)
}

func (h *Handler) ConfirmResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		OTP      string `json:"otp" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	otp, err := h.otps.Get(ctx, resetPasswordOTPKey(req.Username))
	if err != nil || otp != req.OTP {
		h.errorResponse(w, r, http.StatusBadRequest, "Invalid verification code")
		return
	}

	user, err := h.store.GetUserByUsername(req.Username)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.store.UpdateUserPassword(user.ID, string(hashedPassword)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := h.otps.Del(ctx, resetPasswordOTPKey(req.Username)); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}
