package authentication

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"my-finance-dashboard/logger"
	"my-finance-dashboard/users"
)

const defaultRole = "user"

type accounts interface {
	GetUserByEmail(ctx context.Context, email string) (users.User, error)
	CreateUser(ctx context.Context, user users.User) error
	DeleteUser(ctx context.Context, id string) error
}

// dashboardCreator creates the empty dashboard record every new user starts with.
type dashboardCreator interface {
	CreateRecord(ctx context.Context, userID string) error
}

type Handler struct {
	accounts   accounts
	dashboards dashboardCreator
	jwtSecret  []byte
	tokenTTL   time.Duration
	timeout    time.Duration
	now        func() time.Time
}

func NewHandler(accounts accounts, dashboards dashboardCreator, jwtSecret []byte, tokenTTL, timeout time.Duration) *Handler {
	return &Handler{
		accounts:   accounts,
		dashboards: dashboards,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		timeout:    timeout,
		now:        time.Now,
	}
}

// HandleLogin handles the login request
func (h *Handler) HandleLogin(c *gin.Context) {
	var loginReq LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	user, err := h.accounts.GetUserByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		logger.Error("login lookup", zap.String("request_id", logger.RequestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// CreateRecord is an upsert; it restores a dashboard a failed signup could not roll back.
	if err = h.dashboards.CreateRecord(ctx, user.ID); err != nil {
		logger.Error("ensure dashboard record", zap.String("userID", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not prepare dashboard"})
		return
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		logger.Error("sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: tokenString, User: user.Response()})
}

// HandleSignup creates the account and its empty dashboard record
func (h *Handler) HandleSignup(c *gin.Context) {
	var signupReq SignupRequest
	if err := c.ShouldBindJSON(&signupReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	_, err := h.accounts.GetUserByEmail(ctx, signupReq.Email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !errors.Is(err, users.ErrUserNotFound) {
		logger.Error("signup lookup", zap.String("request_id", logger.RequestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(signupReq.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	newUser := users.User{
		ID:           primitive.NewObjectID().Hex(),
		Name:         signupReq.Name,
		Role:         defaultRole,
		Email:        signupReq.Email,
		PasswordHash: string(hashedPassword),
	}

	if err = h.accounts.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, users.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		logger.Error("create user", zap.String("request_id", logger.RequestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create user"})
		return
	}

	if err = h.dashboards.CreateRecord(ctx, newUser.ID); err != nil {
		logger.Error("create dashboard record", zap.String("userID", newUser.ID), zap.Error(err))
		// free the email so the signup can be retried
		if delErr := h.accounts.DeleteUser(ctx, newUser.ID); delErr != nil {
			logger.Error("roll back user", zap.String("userID", newUser.ID), zap.Error(delErr))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create dashboard"})
		return
	}
	logger.Info("user signed up", zap.String("userID", newUser.ID))

	tokenString, err := h.issueToken(newUser)
	if err != nil {
		logger.Error("sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{Token: tokenString, User: newUser.Response()})
}

func (h *Handler) issueToken(user users.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     h.now().Add(h.tokenTTL).Unix(),
	})
	return token.SignedString(h.jwtSecret)
}

// AuthMiddleware creates a gin handler function for authentication
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return h.jwtSecret, nil
		}, jwt.WithTimeFunc(h.now))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set("user_id", userID)
		c.Set("email", claims["email"])
		c.Set("role", claims["role"])
		c.Next()
	}
}
