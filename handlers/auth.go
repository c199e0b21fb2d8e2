// handlers/auth.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"goal-tracker/database"
	"goal-tracker/middleware"
	"goal-tracker/models"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const sessionMaxAge = 86400 * 7 // 7 gün

func Register(store Store, tokens *middleware.Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)

		// Validasyonlar
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Şifreyi hashle
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			internalError(w, r, "şifre hashlenemedi", err)
			return
		}

		user := &models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			FullName:     strings.TrimSpace(req.FullName),
		}
		if user.Email == "" {
			user.Email = user.Username
		}
		if user.FullName == "" {
			user.FullName = user.Username
		}

		err = store.CreateUser(r.Context(), user)
		if errors.Is(err, database.ErrDuplicate) {
			writeError(w, http.StatusConflict, "User already exists")
			return
		}
		if err != nil {
			internalError(w, r, "kullanıcı oluşturulamadı", err)
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			internalError(w, r, "token oluşturulamadı", err)
			return
		}

		zap.L().Info("yeni kullanıcı", zap.Int64("user_id", user.ID))
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "User registered successfully",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

func Login(store Store, tokens *middleware.Tokens, sessionStore sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Kullanıcıyı email ya da kullanıcı adıyla ara
		user, err := store.UserByLogin(r.Context(), req.Email)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			internalError(w, r, "kullanıcı okunamadı", err)
			return
		}

		// Şifre kontrolü
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			internalError(w, r, "token oluşturulamadı", err)
			return
		}

		// Session oluştur
		session, _ := sessionStore.Get(r, middleware.SessionName)
		session.Values["authenticated"] = true
		session.Values["user_id"] = user.ID
		session.Options.MaxAge = sessionMaxAge
		if err := session.Save(r, w); err != nil {
			zap.L().Warn("session kaydedilemedi", zap.Int64("user_id", user.ID), zap.Error(err))
		}

		// Son giriş zamanını güncelle
		if err := store.TouchLastLogin(r.Context(), user.ID, now()); err != nil {
			zap.L().Warn("last_login güncellenemedi", zap.Int64("user_id", user.ID), zap.Error(err))
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Login successful",
			"token":   token,
			"user":    user.Public(),
		})
	}
}

func Logout(sessionStore sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessionStore.Get(r, middleware.SessionName)
		session.Values = map[interface{}]interface{}{}
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			zap.L().Warn("session silinemedi", zap.Error(err))
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Logged out",
		})
	}
}

// RefreshToken hâlâ geçerli bir token için yenisini üretir.
func RefreshToken(store Store, tokens *middleware.Tokens) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := decodeJSON(r, &req); err != nil || req.Token == "" {
			writeError(w, http.StatusBadRequest, "token is required")
			return
		}

		claims, err := tokens.Parse(req.Token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := store.UserByID(r.Context(), claims.UserID)
		if errors.Is(err, database.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if err != nil {
			internalError(w, r, "kullanıcı okunamadı", err)
			return
		}

		token, err := tokens.Issue(user.ID, user.Email)
		if err != nil {
			internalError(w, r, "token oluşturulamadı", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": token,
		})
	}
}
