package identity

import (
	"context"
	"errors"

	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/audit"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/identity"
	"github.com/POGsss/Petrozone-Pulse-System-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles staff account administration. Every mutation is gated
// by the role ceiling: an administrator may only manage users whose highest
// role level does not exceed their own.
type UserService struct {
	userRepo   identity.UserRepository
	branchRepo identity.BranchRepository
	events     shared.EventPublisher
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, branchRepo identity.BranchRepository, events shared.EventPublisher) *UserService {
	return &UserService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
		events:     events,
	}
}

// Create registers a new user
func (s *UserService) Create(ctx context.Context, actor identity.Actor, req CreateUserRequest) (*UserResponse, error) {
	if err := s.authorizeManage(actor, identity.MaxLevel(req.Roles)); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}

	user, err := identity.NewUser(req.Username, req.Password, req.Roles...)
	if err != nil {
		return nil, err
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	for _, branchID := range req.BranchIDs {
		if !actor.CanAccessBranch(branchID) {
			return nil, shared.ErrForbidden
		}
		if _, err := s.branchRepo.FindByID(ctx, branchID); err != nil {
			return nil, err
		}
		if err := user.AssignBranch(branchID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	s.publishAudit(ctx, audit.NewAdminActionEvent("User", string(audit.ActionCreate),
		user.GetID(), actor.UserID, user.PrimaryBranchID(), nil, resp))
	return &resp, nil
}

// Get returns a user by ID
func (s *UserService) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsSelf(id) && !actor.CanManageLevel(user.MaxRoleLevel()) {
		return nil, shared.ErrForbidden
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List returns users page by page
func (s *UserService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	if !actor.HasAnyRole(identity.AdministrativeRoles...) {
		return nil, shared.ErrForbidden
	}

	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]UserResponse, len(users))
	for i := range users {
		items[i] = ToUserResponse(&users[i])
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.Limit())
	return &result, nil
}

// Update edits a user's mutable fields
func (s *UserService) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsSelf(id) && !actor.CanManageLevel(user.MaxRoleLevel()) {
		return nil, shared.ErrForbidden
	}
	before := ToUserResponse(user)

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := user.ChangePassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		// users cannot disable themselves
		if actor.IsSelf(id) && !*req.IsActive {
			return nil, shared.NewDomainError("INVALID_INPUT", "Cannot deactivate your own account")
		}
		if *req.IsActive {
			user.Activate()
		} else {
			user.Deactivate()
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	s.publishAudit(ctx, audit.NewAdminActionEvent("User", string(audit.ActionUpdate),
		user.GetID(), actor.UserID, user.PrimaryBranchID(), before, resp))
	return &resp, nil
}

// GrantRole adds a role to a user
func (s *UserService) GrantRole(ctx context.Context, actor identity.Actor, id uuid.UUID, role identity.Role) (*UserResponse, error) {
	return s.mutateRoles(ctx, actor, id, role, func(user *identity.User) error {
		return user.GrantRole(role)
	})
}

// RevokeRole removes a role from a user
func (s *UserService) RevokeRole(ctx context.Context, actor identity.Actor, id uuid.UUID, role identity.Role) (*UserResponse, error) {
	return s.mutateRoles(ctx, actor, id, role, func(user *identity.User) error {
		return user.RevokeRole(role)
	})
}

func (s *UserService) mutateRoles(ctx context.Context, actor identity.Actor, id uuid.UUID, role identity.Role, mutate func(*identity.User) error) (*UserResponse, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role code "+string(role))
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// ceiling applies to both the target user and the role being touched
	if !actor.CanManageLevel(user.MaxRoleLevel()) || !actor.CanManageLevel(role.Level()) {
		return nil, shared.ErrForbidden
	}
	before := ToUserResponse(user)

	if err := mutate(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	s.publishAudit(ctx, audit.NewAdminActionEvent("User", string(audit.ActionUpdate),
		user.GetID(), actor.UserID, user.PrimaryBranchID(), before, resp))
	return &resp, nil
}

// AssignBranch links a user to a branch the actor controls
func (s *UserService) AssignBranch(ctx context.Context, actor identity.Actor, id, branchID uuid.UUID) (*UserResponse, error) {
	return s.mutateAssignments(ctx, actor, id, branchID, func(user *identity.User) error {
		if _, err := s.branchRepo.FindByID(ctx, branchID); err != nil {
			return err
		}
		return user.AssignBranch(branchID)
	})
}

// RevokeBranch unlinks a user from a branch the actor controls
func (s *UserService) RevokeBranch(ctx context.Context, actor identity.Actor, id, branchID uuid.UUID) (*UserResponse, error) {
	return s.mutateAssignments(ctx, actor, id, branchID, func(user *identity.User) error {
		return user.RevokeBranch(branchID)
	})
}

func (s *UserService) mutateAssignments(ctx context.Context, actor identity.Actor, id, branchID uuid.UUID, mutate func(*identity.User) error) (*UserResponse, error) {
	if !actor.CanAccessBranch(branchID) {
		return nil, shared.ErrForbidden
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageLevel(user.MaxRoleLevel()) {
		return nil, shared.ErrForbidden
	}
	before := ToUserResponse(user)

	if err := mutate(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	resp := ToUserResponse(user)
	s.publishAudit(ctx, audit.NewAdminActionEvent("User", string(audit.ActionUpdate),
		user.GetID(), actor.UserID, branchID, before, resp))
	return &resp, nil
}

// Delete removes a user account
func (s *UserService) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if actor.IsSelf(id) {
		return shared.NewDomainError("INVALID_INPUT", "Cannot delete your own account")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManageLevel(user.MaxRoleLevel()) {
		return shared.ErrForbidden
	}
	before := ToUserResponse(user)

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.publishAudit(ctx, audit.NewAdminActionEvent("User", string(audit.ActionDelete),
		id, actor.UserID, user.PrimaryBranchID(), before, nil))
	return nil
}

func (s *UserService) authorizeManage(actor identity.Actor, targetLevel int) error {
	if !actor.CanManageLevel(targetLevel) {
		return shared.ErrForbidden
	}
	return nil
}

func (s *UserService) publishAudit(ctx context.Context, event shared.DomainEvent) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, event)
}
