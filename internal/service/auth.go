package service

import (
	"errors"
	"time"

	"github.com/mal2-project/fake-shop-detection-database/internal/model"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/jwt"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/logger"
	"github.com/mal2-project/fake-shop-detection-database/internal/pkg/redis"
	"github.com/mal2-project/fake-shop-detection-database/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrSignupRateLimited  = errors.New("too many signups from this address")
)

const (
	signupWindowSeconds = 3600
	signupMaxPerWindow  = 5
)

var signupFallbackLimit = NewRateLimiter(time.Duration(signupWindowSeconds)*time.Second, signupMaxPerWindow)

// Login authenticates a user and returns a JWT token. Deactivated accounts
// are rejected the same way as bad credentials.
func Login(username, password string) (*model.TokenResponse, error) {
	user, err := repository.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := repository.UpdateUser(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: &model.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
		},
	}, nil
}

// Register creates a self-service account. New accounts start deactivated,
// an admin activates them from the user administration table.
func Register(req *model.UserRegister, clientIP string) (*model.User, error) {
	if !allowSignup(clientIP) {
		return nil, ErrSignupRateLimited
	}

	exists, err := repository.UserExists(req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: hash,
		Email:    req.Email,
		Role:     model.RoleInvestigator,
		IsActive: false,
	}

	if err := repository.CreateUser(user); err != nil {
		return nil, err
	}

	logger.Info("account registered, awaiting activation",
		zap.String("username", user.Username))

	return user, nil
}

func allowSignup(clientIP string) bool {
	if !redis.Available() {
		return signupFallbackLimit.Check(clientIP)
	}

	allowed, err := redis.AllowRequest("signup:"+clientIP, signupWindowSeconds, signupMaxPerWindow)
	if err != nil {
		logger.Warn("signup rate limit check failed, falling back",
			zap.Error(err))
		return signupFallbackLimit.Check(clientIP)
	}

	return allowed
}

// GetUserByID returns a user by ID
func GetUserByID(userID uint) (*model.User, error) {
	user, err := repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
