package services

import (
	"context"
	"errors"
	"testing"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestVolunteerService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	v := &model.Volunteer{ID: 3, Name: "Ravi", Email: "ravi@x.com", Status: model.VolunteerStatusActive}

	t.Run("real change notifies once", func(t *testing.T) {
		repo := new(MockVolunteerRepository)
		notifier := new(MockNotifier)
		repo.On("UpdateStatus", ctx, int64(3), model.VolunteerStatusActive).
			Return(&model.Change[*model.Volunteer]{Entity: v, Old: "pending", New: "active"}, nil)
		notifier.On("OnStatusChanged", ctx, v, "pending", "active").Return().Once()

		got, err := NewVolunteerService(repo, notifier).UpdateStatus(ctx, 3, " Active ")

		require.NoError(t, err)
		assert.Equal(t, v, got)
		notifier.AssertNumberOfCalls(t, "OnStatusChanged", 1)
	})

	t.Run("same status is silent", func(t *testing.T) {
		repo := new(MockVolunteerRepository)
		notifier := new(MockNotifier)
		repo.On("UpdateStatus", ctx, int64(3), model.VolunteerStatusActive).
			Return(&model.Change[*model.Volunteer]{Entity: v, Old: "active", New: "active"}, nil)

		got, err := NewVolunteerService(repo, notifier).UpdateStatus(ctx, 3, "active")

		require.NoError(t, err)
		assert.Equal(t, v, got)
		notifier.AssertNotCalled(t, "OnStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := new(MockVolunteerRepository)
		notifier := new(MockNotifier)

		_, err := NewVolunteerService(repo, notifier).UpdateStatus(ctx, 3, "retired")

		assert.ErrorIs(t, err, model.ErrInvalidState)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing volunteer", func(t *testing.T) {
		repo := new(MockVolunteerRepository)
		notifier := new(MockNotifier)
		repo.On("UpdateStatus", ctx, int64(4), model.VolunteerStatusRejected).Return(nil, repository.ErrNotFound)

		_, err := NewVolunteerService(repo, notifier).UpdateStatus(ctx, 4, "rejected")

		assert.ErrorIs(t, err, model.ErrNotFound)
		notifier.AssertNotCalled(t, "OnStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVolunteerService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(MockVolunteerRepository)
	v := &model.Volunteer{ID: 3, Name: "Ravi"}
	repo.On("GetByID", ctx, int64(3)).Return(v, nil)
	repo.On("GetByID", ctx, int64(4)).Return(nil, repository.ErrNotFound)
	svc := NewVolunteerService(repo, new(MockNotifier))

	got, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	_, err = svc.Get(ctx, 4)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestContactService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	c := &model.ContactSubmission{ID: 5, Name: "Mei", Email: "mei@x.com", Status: model.ContactStatusReplied}

	t.Run("real change notifies once", func(t *testing.T) {
		repo := new(MockContactRepository)
		notifier := new(MockNotifier)
		repo.On("UpdateStatus", ctx, int64(5), model.ContactStatusReplied).
			Return(&model.Change[*model.ContactSubmission]{Entity: c, Old: "read", New: "replied"}, nil)
		notifier.On("OnStatusChanged", ctx, c, "read", "replied").Return().Once()

		got, err := NewContactService(repo, notifier).UpdateStatus(ctx, 5, "replied")

		require.NoError(t, err)
		assert.Equal(t, c, got)
		notifier.AssertNumberOfCalls(t, "OnStatusChanged", 1)
	})

	t.Run("same status is silent", func(t *testing.T) {
		repo := new(MockContactRepository)
		notifier := new(MockNotifier)
		repo.On("UpdateStatus", ctx, int64(5), model.ContactStatusReplied).
			Return(&model.Change[*model.ContactSubmission]{Entity: c, Old: "replied", New: "replied"}, nil)

		_, err := NewContactService(repo, notifier).UpdateStatus(ctx, 5, "replied")

		require.NoError(t, err)
		notifier.AssertNotCalled(t, "OnStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := NewContactService(new(MockContactRepository), new(MockNotifier)).UpdateStatus(ctx, 5, "lost")
		assert.ErrorIs(t, err, model.ErrInvalidState)
	})
}

func TestContactService_Submit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockContactRepository)
	notifier := new(MockNotifier)
	saved := &model.ContactSubmission{ID: 1, Name: "Mei", Email: "mei@x.com", Message: "hi", Status: model.ContactStatusNew}

	repo.On("Create", ctx, mock.MatchedBy(func(c *model.ContactSubmission) bool {
		return c.Email == "mei@x.com" && c.Status == model.ContactStatusNew
	})).Return(saved, nil)
	notifier.On("OnCreated", ctx, saved).Return().Once()

	got, err := NewContactService(repo, notifier).Submit(ctx, model.ContactCreateRequest{Name: " Mei ", Email: "MEI@x.com", Message: "hi"})

	require.NoError(t, err)
	assert.Equal(t, saved, got)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProjectService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("announces the new project", func(t *testing.T) {
		repo := new(MockProjectRepository)
		notifier := new(MockNotifier)
		saved := &model.Project{ID: 2, Title: "Village well", GoalAmount: 250000, Status: model.ProjectStatusActive}
		repo.On("Create", ctx, mock.MatchedBy(func(p *model.Project) bool {
			return p.Title == "Village well" && p.GoalAmount == 250000
		})).Return(saved, nil)
		notifier.On("OnCreated", ctx, saved).Return().Once()

		got, err := NewProjectService(repo, notifier).Create(ctx, model.ProjectCreateRequest{Title: "  Village well ", GoalAmount: 250000})

		require.NoError(t, err)
		assert.Equal(t, saved, got)
		repo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("invalid request never reaches the store", func(t *testing.T) {
		repo := new(MockProjectRepository)
		notifier := new(MockNotifier)

		_, err := NewProjectService(repo, notifier).Create(ctx, model.ProjectCreateRequest{Title: "Well", GoalAmount: 1.005})

		assert.ErrorIs(t, err, model.ErrValidation)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "OnCreated", mock.Anything, mock.Anything)
	})

	t.Run("store failure is transient and silent", func(t *testing.T) {
		repo := new(MockProjectRepository)
		notifier := new(MockNotifier)
		repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("connection reset"))

		_, err := NewProjectService(repo, notifier).Create(ctx, model.ProjectCreateRequest{Title: "Well"})

		assert.ErrorIs(t, err, model.ErrTransient)
		notifier.AssertNotCalled(t, "OnCreated", mock.Anything, mock.Anything)
	})
}
