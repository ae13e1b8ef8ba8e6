package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"my-finance-dashboard/logger"
)

type userFinder interface {
	GetUserByID(ctx context.Context, id string) (User, error)
}

type Handler struct {
	users   userFinder
	timeout time.Duration
}

func NewHandler(users userFinder, timeout time.Duration) *Handler {
	return &Handler{
		users:   users,
		timeout: timeout,
	}
}

// HandleGetMe returns the user the request was authenticated as
func (h *Handler) HandleGetMe(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.users.GetUserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		logger.Error("get current user", zap.String("userID", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, user.Response())
}
