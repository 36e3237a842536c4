package usecase

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/speaktime/speaktime-api/internal/model"
	"github.com/speaktime/speaktime-api/internal/repository"
)

// duplicateKeyErr mimics the server error the driver returns when a unique
// index is violated.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key error"}},
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return nil, duplicateKeyErr()
		}
	}

	created := *user
	created.ID = bson.NewObjectID()
	r.users[created.ID.Hex()] = &created

	out := created
	return &out, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *user
	return &out, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			out := *user
			return &out, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *params.Email {
				return nil, duplicateKeyErr()
			}
		}
		user.Email = *params.Email
	}
	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}

	out := *user
	return &out, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.users, id)

	return user, nil
}

func (r *fakeUserRepo) ListUsers(context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		out = append(out, &copied)
	}

	return out, nil
}

type fakeGroupRepo struct {
	mu     sync.Mutex
	groups map[string]*model.Group
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: make(map[string]*model.Group)}
}

func (r *fakeGroupRepo) CreateGroup(_ context.Context, group *model.Group) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *group
	created.ID = bson.NewObjectID()
	r.groups[created.ID.Hex()] = &created

	out := created
	return &out, nil
}

func (r *fakeGroupRepo) GetGroup(_ context.Context, id string) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *group
	return &out, nil
}

func (r *fakeGroupRepo) ListGroupsByUser(_ context.Context, userID string) ([]*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Group, 0)
	for _, group := range r.groups {
		if group.UserID == userID {
			copied := *group
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeGroupRepo) UpdateGroup(_ context.Context, id string, params repository.UpdateGroupParams) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		group.Name = *params.Name
	}
	if params.Description != nil {
		group.Description = *params.Description
	}
	if params.Members != nil {
		group.Members = *params.Members
	}

	out := *group
	return &out, nil
}

func (r *fakeGroupRepo) DeleteGroup(_ context.Context, id string) (*model.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.groups, id)

	return group, nil
}

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[string]*model.Meeting
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: make(map[string]*model.Meeting)}
}

func (r *fakeMeetingRepo) CreateMeeting(_ context.Context, meeting *model.Meeting) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *meeting
	created.ID = bson.NewObjectID()
	r.meetings[created.ID.Hex()] = &created

	out := created
	return &out, nil
}

func (r *fakeMeetingRepo) GetMeeting(_ context.Context, id string) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	out := *meeting
	return &out, nil
}

func (r *fakeMeetingRepo) ListMeetingsByUser(_ context.Context, userID string) ([]*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Meeting, 0)
	for _, meeting := range r.meetings {
		if meeting.UserID == userID {
			copied := *meeting
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeMeetingRepo) UpdateMeeting(_ context.Context, id string, params repository.UpdateMeetingParams) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Participants != nil {
		meeting.Participants = *params.Participants
	}
	if params.Notes != nil {
		meeting.Notes = *params.Notes
	}

	out := *meeting
	return &out, nil
}

func (r *fakeMeetingRepo) DeleteMeeting(_ context.Context, id string) (*model.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	meeting, ok := r.meetings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.meetings, id)

	return meeting, nil
}
