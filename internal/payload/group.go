package payload

import "github.com/speaktime/speaktime-api/internal/model"

type CreateGroupRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type UpdateGroupNameRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateGroupDescriptionRequest requires the description key to be present;
// an empty string is a valid description.
type UpdateGroupDescriptionRequest struct {
	Description *string `json:"description" validate:"required"`
}

type GroupMembersRequest struct {
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type GroupResponse struct {
	Message string       `json:"message,omitempty"`
	Group   *model.Group `json:"group"`
}

type GroupListResponse struct {
	Groups []*model.Group `json:"groups"`
}

type GroupMembersResponse struct {
	Members   []string `json:"members"`
	GroupName string   `json:"group_name"`
}
