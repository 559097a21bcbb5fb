package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storykeep/internal/delivery/http/middleware"
	"storykeep/internal/model"
	"storykeep/internal/session"
)

func (h *Handler) register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}
	ctx := c.Request.Context()

	if h.users.UsernameExists(ctx, req.Username) {
		handleServiceError(c, model.ErrUserAlreadyExists)
		return
	}
	ok := h.users.Register(ctx, req.Username, req.Email, req.Password)
	if ok {
		registrationsTotal.Inc()
		c.JSON(http.StatusCreated, model.Result{OK: true, Messages: middleware.Messages(c)})
		return
	}
	respondResult(c, false)
}

func (h *Handler) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, model.ErrBadRequest)
		return
	}
	ctx := c.Request.Context()

	sess := session.New()
	if !h.users.Login(ctx, sess, req.Username, req.Password) {
		loginsTotal.WithLabelValues("failure").Inc()
		if msgs := middleware.Messages(c); len(msgs) > 0 {
			handleServiceError(c, model.ErrConnectionUnavailable)
			return
		}
		handleServiceError(c, model.ErrInvalidCredentials)
		return
	}

	user, _ := sess.Current()
	resp, err := h.auth.IssueToken(ctx, user)
	if err != nil {
		loginsTotal.WithLabelValues("failure").Inc()
		handleServiceError(c, err)
		return
	}
	loginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) logout(c *gin.Context) {
	sess := middleware.SessionFrom(c)
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		handleServiceError(c, model.ErrNoActiveSession)
		return
	}
	if err := h.auth.Revoke(c.Request.Context(), claims); err != nil {
		handleServiceError(c, err)
		return
	}
	h.users.Logout(sess)
	respondResult(c, true)
}

func (h *Handler) usernameExists(c *gin.Context) {
	exists := h.users.UsernameExists(c.Request.Context(), c.Param("username"))
	c.JSON(http.StatusOK, gin.H{"exists": exists, "messages": middleware.Messages(c)})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	sess := middleware.SessionFrom(c)

	// accounts can only be deleted by their owner
	if current, err := sess.UserID(); err != nil || current != id {
		handleServiceError(c, model.ErrUnauthorized)
		return
	}

	deleted := h.users.DeleteUser(ctx, sess, id)
	if deleted {
		if err := h.auth.RevokeAll(ctx, id); err != nil {
			h.logger.Warn("Failed to revoke tokens of deleted user", zap.Int64("userID", id), zap.Error(err))
		}
		if h.live != nil {
			h.live.DisconnectUser(id)
		}
	}
	respondResult(c, deleted)
}
