package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/password"
)

type RegisterInput struct {
	Username string `validate:"required,min=3,max=64,alphanum"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=72"`
	FullName string `validate:"max=255"`
}

// UpdateProfileInput nil 字段保持不变；全部为 nil 时直接返回当前资料
type UpdateProfileInput struct {
	Email    *string `validate:"omitempty,email,max=255"`
	FullName *string `validate:"omitempty,max=255"`
	Password *string `validate:"omitempty,min=6,max=72"`
}

// UserService 用户资料。认证与 token 签发不在这里
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error)
	SearchUsers(ctx context.Context, name string, page pagination.Params) (pagination.Page[model.UserSummary], error)
	UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.UserProfile, error)
}

type userService struct {
	userRepo repository.UserRepository
	hasher   password.Hasher
	validate *validator.Validate
}

func NewUserService(userRepo repository.UserRepository, hasher password.Hasher) UserService {
	return &userService{userRepo: userRepo, hasher: hasher, validate: validator.New()}
}

func (s *userService) check(in interface{}) error {
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return validation("invalid " + strings.ToLower(verrs[0].Field()))
		}
		return validation(err.Error())
	}
	return nil
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := s.check(in); err != nil {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internalErr("hash password", err, zap.String("username", in.Username))
	}
	u := &model.User{
		Username:       in.Username,
		Email:          in.Email,
		FullName:       in.FullName,
		PasswordDigest: digest,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, internalErr("create user", err, zap.String("username", in.Username))
	}
	return u, nil
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	if err := checkIDs(userID); err != nil {
		return nil, err
	}
	p, err := s.userRepo.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, internalErr("get profile", err, zap.Int64("user_id", userID))
	}
	return p, nil
}

func (s *userService) SearchUsers(ctx context.Context, name string, page pagination.Params) (pagination.Page[model.UserSummary], error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pagination.Page[model.UserSummary]{}, ErrEmptySearchTerm
	}
	if err := checkPage(page); err != nil {
		return pagination.Page[model.UserSummary]{}, err
	}
	items, err := s.userRepo.Search(ctx, name, page.Offset(), page.Limit)
	if err != nil {
		return pagination.Page[model.UserSummary]{}, internalErr("search users", err, zap.String("name", name))
	}
	return pagination.NewPage(items, page), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (*model.UserProfile, error) {
	if err := checkIDs(userID); err != nil {
		return nil, err
	}
	if in.Email == nil && in.FullName == nil && in.Password == nil {
		return s.GetProfile(ctx, userID)
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	upd := repository.UserUpdate{Email: in.Email, FullName: in.FullName}
	if in.Password != nil {
		digest, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, internalErr("hash password", err, zap.Int64("user_id", userID))
		}
		upd.PasswordDigest = &digest
	}
	if err := s.userRepo.Update(ctx, userID, upd); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrUserExists
		default:
			return nil, internalErr("update profile", err, zap.Int64("user_id", userID))
		}
	}
	return s.GetProfile(ctx, userID)
}
