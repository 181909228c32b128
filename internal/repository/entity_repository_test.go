package repository

import (
	"context"
	"testing"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolunteerRepository(t *testing.T) {
	repo := NewVolunteerRepository(NewTestDB(t))
	ctx := context.Background()

	req := model.VolunteerCreateRequest{Name: "Ravi", Email: "ravi@x.com", Skills: "teaching"}
	v, err := repo.Create(ctx, req.NewVolunteer())
	require.NoError(t, err)
	assert.Equal(t, model.VolunteerStatusPending, v.Status)

	change, err := repo.UpdateStatus(ctx, v.ID, model.VolunteerStatusActive)
	require.NoError(t, err)
	assert.Equal(t, "pending", change.Old)
	assert.Equal(t, model.VolunteerStatusActive, change.Entity.Status)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, model.VolunteerStatusActive, got.Status)

	list, total, err := repo.List(ctx, model.ListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestEventRepository_Registrations(t *testing.T) {
	repo := NewEventRepository(NewTestDB(t))
	ctx := context.Background()

	ev, err := repo.Create(ctx, (&model.EventCreateRequest{
		Title:    "Beach cleanup",
		StartsAt: time.Now().Add(48 * time.Hour),
		Capacity: 10,
	}).NewEvent())
	require.NoError(t, err)

	past, err := repo.Create(ctx, (&model.EventCreateRequest{
		Title:    "Old drive",
		StartsAt: time.Now().Add(-48 * time.Hour),
	}).NewEvent())
	require.NoError(t, err)

	upcoming, err := repo.ListUpcoming(ctx, time.Now(), 0, 0)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, ev.ID, upcoming[0].ID)
	assert.NotEqual(t, past.ID, upcoming[0].ID)

	reg, err := repo.CreateRegistration(ctx, (&model.RegistrationCreateRequest{
		EventID: ev.ID, Name: "Meera", Email: "meera@x.com", Guests: 2,
	}).NewRegistration())
	require.NoError(t, err)
	assert.NotZero(t, reg.ID)

	seats, err := repo.CountSeats(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), seats)

	change, err := repo.UpdateRegistrationStatus(ctx, reg.ID, model.RegistrationStatusConfirmed)
	require.NoError(t, err)
	assert.True(t, change.Changed())
	require.NotNil(t, change.Entity.Event)
	assert.Equal(t, "Beach cleanup", change.Entity.EventTitle())

	_, err = repo.UpdateRegistrationStatus(ctx, reg.ID, model.RegistrationStatusCancelled)
	require.NoError(t, err)
	seats, err = repo.CountSeats(ctx, ev.ID)
	require.NoError(t, err)
	assert.Zero(t, seats)

	got, err := repo.GetRegistration(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationStatusCancelled, got.Status)

	regs, total, err := repo.ListRegistrations(ctx, ev.ID, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, regs, 1)
}

func TestContactRepository(t *testing.T) {
	repo := NewContactRepository(NewTestDB(t))
	ctx := context.Background()

	c, err := repo.Create(ctx, (&model.ContactCreateRequest{
		Name: "Sam", Email: "sam@x.com", Message: "hello",
	}).NewSubmission())
	require.NoError(t, err)

	change, err := repo.UpdateStatus(ctx, c.ID, model.ContactStatusRead)
	require.NoError(t, err)
	assert.Equal(t, "new", change.Old)
	assert.Equal(t, "read", change.New)

	_, err = repo.UpdateStatus(ctx, 42, model.ContactStatusRead)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubscriberRepository(t *testing.T) {
	repo := NewSubscriberRepository(NewTestDB(t))
	ctx := context.Background()

	for _, email := range []string{"one@x.com", "two@x.com", "three@x.com"} {
		_, err := repo.Create(ctx, &model.Subscriber{Email: email, Status: model.SubscriberStatusActive})
		require.NoError(t, err)
	}

	_, err := repo.Create(ctx, &model.Subscriber{Email: "one@x.com", Status: model.SubscriberStatusActive})
	assert.ErrorIs(t, err, ErrDuplicate)

	two, err := repo.GetByEmail(ctx, "two@x.com")
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, two.ID, model.SubscriberStatusUnsubscribed)
	require.NoError(t, err)

	emails, err := repo.ActiveEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one@x.com", "three@x.com"}, emails)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepository(t *testing.T) {
	repo := NewProjectRepository(NewTestDB(t))
	ctx := context.Background()

	p, err := repo.Create(ctx, (&model.ProjectCreateRequest{Title: "Library", GoalAmount: 10000}).NewProject())
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusActive, p.Status)

	list, total, err := repo.List(ctx, model.ListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Library", list[0].Title)
}
