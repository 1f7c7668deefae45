package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainUser "stocky-backend/internal/domain/user"
	"stocky-backend/internal/logger"
	appErrors "stocky-backend/pkg/errors"
	"stocky-backend/pkg/utils"
)

// Service implements account management use cases.
type Service struct {
	userRepo domainUser.Repository
}

func NewService(userRepo domainUser.Repository) *Service {
	return &Service{userRepo: userRepo}
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, appErrors.ErrUserAlreadyExists
	}
	if existing, _ := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email)); existing != nil {
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.NewAppError("HASH_FAILED", "Failed to hash password", err)
	}

	role := domainUser.Role(req.Role)
	if req.Role == "" {
		role = domainUser.RoleMember
	}

	user := &domainUser.User{
		Username:       utils.SanitizeString(req.Username),
		Email:          utils.SanitizeEmail(req.Email),
		HashedPassword: hashed,
		Role:           role,
		IsActive:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
		zap.String("event", "user_created"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) ListUsers(ctx context.Context, page, pageSize int) (*UserListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	users, total, err := s.userRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = *ToUserResponse(u)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &UserListResponse{
		Users:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateUser patches an account. Callers enforce who may reach it; the only
// rule owned here is that role changes require the actor to be an admin.
func (s *Service) UpdateUser(ctx context.Context, actor *domainUser.User, userID uuid.UUID, req *UpdateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if req.Role != nil && actor.Role != domainUser.RoleAdmin {
		return nil, appErrors.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if existing, _ := s.userRepo.GetByUsername(ctx, *req.Username); existing != nil && existing.ID != userID {
			return nil, appErrors.ErrUserAlreadyExists
		}
		user.Username = utils.SanitizeString(*req.Username)
	}
	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		if existing, _ := s.userRepo.GetByEmail(ctx, email); existing != nil && existing.ID != userID {
			return nil, appErrors.ErrUserAlreadyExists
		}
		user.Email = email
	}
	if req.Password != nil {
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, appErrors.NewAppError("HASH_FAILED", "Failed to hash password", err)
		}
		user.HashedPassword = hashed
	}
	if req.Role != nil {
		user.Role = domainUser.Role(*req.Role)
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User updated",
		zap.String("user_id", userID.String()),
		zap.String("updated_by", actor.ID.String()),
		zap.String("event", "user_updated"),
	)

	return ToUserResponse(user), nil
}

// DeactivateUser disables an account. Admins cannot deactivate themselves.
func (s *Service) DeactivateUser(ctx context.Context, actor *domainUser.User, userID uuid.UUID) error {
	if actor.ID == userID {
		return appErrors.NewAppError("SELF_DELETE", "Cannot delete your own account", nil)
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	logger.Info("User deactivated",
		zap.String("user_id", userID.String()),
		zap.String("deactivated_by", actor.ID.String()),
		zap.String("event", "user_deactivated"),
	)

	return nil
}
