package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/repository"
)

// GroupUsecase defines the interface for group-related use cases. Every
// operation on an existing group enforces the ownership policy after the
// group is confirmed to exist.
type GroupUsecase interface {
	CreateGroup(ctx context.Context, ownerID string, params CreateGroupParams) (*model.Group, error)
	ListGroups(ctx context.Context, ownerID string) ([]*model.Group, error)
	GetGroup(ctx context.Context, ownerID, id string) (*model.Group, error)
	UpdateGroupName(ctx context.Context, ownerID, id, name string) (*model.Group, error)
	UpdateGroupDescription(ctx context.Context, ownerID, id, description string) (*model.Group, error)
	AddMembers(ctx context.Context, ownerID, id string, members []string) (*model.Group, error)
	RemoveMembers(ctx context.Context, ownerID, id string, members []string) (*model.Group, error)
	DeleteGroup(ctx context.Context, ownerID, id string) error
}

// CreateGroupParams defines the parameters for creating a group.
type CreateGroupParams struct {
	Name        string
	Description string
	Members     []string
}

var ErrGroupNotFound = errors.New("group not found")

type groupUsecase struct {
	groupRepo repository.GroupRepository
}

func NewGroupUsecase(groupRepo repository.GroupRepository) GroupUsecase {
	return &groupUsecase{groupRepo: groupRepo}
}

func (u *groupUsecase) CreateGroup(
	ctx context.Context,
	ownerID string,
	params CreateGroupParams,
) (*model.Group, error) {
	return u.groupRepo.CreateGroup(ctx, &model.Group{
		UserID:      ownerID,
		Name:        params.Name,
		Description: params.Description,
		Members:     dedupeMembers(nil, params.Members),
	})
}

func (u *groupUsecase) ListGroups(ctx context.Context, ownerID string) ([]*model.Group, error) {
	return u.groupRepo.ListGroupsByUser(ctx, ownerID)
}

func (u *groupUsecase) GetGroup(ctx context.Context, ownerID, id string) (*model.Group, error) {
	return u.ownedGroup(ctx, ownerID, id)
}

func (u *groupUsecase) UpdateGroupName(ctx context.Context, ownerID, id, name string) (*model.Group, error) {
	if _, err := u.ownedGroup(ctx, ownerID, id); err != nil {
		return nil, err
	}

	return u.updateGroup(ctx, id, repository.UpdateGroupParams{Name: &name})
}

func (u *groupUsecase) UpdateGroupDescription(
	ctx context.Context,
	ownerID, id, description string,
) (*model.Group, error) {
	if _, err := u.ownedGroup(ctx, ownerID, id); err != nil {
		return nil, err
	}

	return u.updateGroup(ctx, id, repository.UpdateGroupParams{Description: &description})
}

func (u *groupUsecase) AddMembers(
	ctx context.Context,
	ownerID, id string,
	members []string,
) (*model.Group, error) {
	group, err := u.ownedGroup(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// Adding an already present name is a no-op; insertion order is kept.
	merged := dedupeMembers(group.Members, members)

	return u.updateGroup(ctx, id, repository.UpdateGroupParams{Members: &merged})
}

func (u *groupUsecase) RemoveMembers(
	ctx context.Context,
	ownerID, id string,
	members []string,
) (*model.Group, error) {
	group, err := u.ownedGroup(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	remove := make(map[string]struct{}, len(members))
	for _, name := range members {
		remove[name] = struct{}{}
	}

	remaining := make([]string, 0, len(group.Members))
	for _, name := range group.Members {
		if _, ok := remove[name]; !ok {
			remaining = append(remaining, name)
		}
	}

	return u.updateGroup(ctx, id, repository.UpdateGroupParams{Members: &remaining})
}

func (u *groupUsecase) DeleteGroup(ctx context.Context, ownerID, id string) error {
	if _, err := u.ownedGroup(ctx, ownerID, id); err != nil {
		return err
	}

	if _, err := u.groupRepo.DeleteGroup(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrGroupNotFound
		}

		return err
	}

	return nil
}

// ownedGroup fetches the group and enforces the ownership policy. A missing
// group is reported before ownership is evaluated; a dangling owner id never
// matches another user, so deleted owners fail closed.
func (u *groupUsecase) ownedGroup(ctx context.Context, ownerID, id string) (*model.Group, error) {
	group, err := u.groupRepo.GetGroup(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrGroupNotFound
		}

		return nil, err
	}

	if group.UserID != ownerID {
		return nil, ErrNotOwner
	}

	return group, nil
}

func (u *groupUsecase) updateGroup(
	ctx context.Context,
	id string,
	params repository.UpdateGroupParams,
) (*model.Group, error) {
	group, err := u.groupRepo.UpdateGroup(ctx, id, params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Deleted between the ownership check and the write.
			return nil, ErrGroupNotFound
		}

		return nil, err
	}

	return group, nil
}

// dedupeMembers appends the incoming names to existing, skipping names
// already present and preserving first-insertion order.
func dedupeMembers(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))

	for _, name := range existing {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	for _, name := range incoming {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}

	return merged
}
