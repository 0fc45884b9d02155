package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"syncup/pkg/jwt"
	"syncup/pkg/logger"
	"syncup/services/auth/internal/entity"
	"syncup/services/auth/internal/repo/persistent"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	MaxAvatarSize     = 5 << 20
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AvatarStorage is satisfied by *s3.Client.
type AvatarStorage interface {
	UploadFile(name string, body io.ReadSeeker, contentType string) (string, error)
}

type AuthUseCase interface {
	Signup(ctx context.Context, name, email, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID int64) (*entity.User, error)
	UploadAvatar(ctx context.Context, userID int64, contentType string, size int64, body io.ReadSeeker) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	storage    AvatarStorage
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	storage AvatarStorage,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		storage:    storage,
		logger:     logger,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *authUseCase) Signup(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" {
		return nil, "", &ValidationError{Message: "Name is required"}
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, "", &ValidationError{Message: "A valid email is required"}
	}
	if len(password) < MinPasswordLength {
		return nil, "", &ValidationError{Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)}
	}

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, persistent.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, persistent.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	uc.logger.Info("User %d signed up", user.ID)
	return user, token, nil
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.jwtService.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func (uc *authUseCase) UploadAvatar(ctx context.Context, userID int64, contentType string, size int64, body io.ReadSeeker) (*entity.User, error) {
	if size <= 0 {
		return nil, &ValidationError{Message: "Avatar file is required"}
	}
	if size > MaxAvatarSize {
		return nil, &ValidationError{Message: "Avatar exceeds the 5 MB limit"}
	}
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, &ValidationError{Message: "Invalid image format. Only jpg, png, gif and webp are allowed"}
	}

	key := fmt.Sprintf("avatars/%d/%s%s", userID, uuid.New().String(), ext)
	url, err := uc.storage.UploadFile(key, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := uc.userRepo.UpdateProfilePic(ctx, userID, url); err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile picture: %w", err)
	}

	return uc.GetUser(ctx, userID)
}
