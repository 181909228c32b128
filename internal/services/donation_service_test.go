package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDonationService_Create(t *testing.T) {
	repo := new(MockDonationRepository)
	notifier := new(MockNotifier)
	svc := NewDonationService(repo, notifier)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(d *model.Donation) bool {
		return strings.HasPrefix(d.TransactionID, "TXN_") &&
			d.Status == model.DonationStatusPending &&
			d.DonorEmail == "ada@example.org" &&
			d.TaxID == "ABCDE1234F"
	})).Return(func(d *model.Donation) *model.Donation {
		d.ID = 1
		return d
	}, nil)
	notifier.On("OnCreated", ctx, mock.AnythingOfType("*model.Donation")).Return()

	got, err := svc.Create(ctx, model.DonationCreateRequest{
		Amount:     100,
		DonorName:  " Ada ",
		DonorEmail: "Ada@Example.org",
		TaxID:      "abcde1234f",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Ada", got.DonorName)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestDonationService_Create_Invalid(t *testing.T) {
	repo := new(MockDonationRepository)
	notifier := new(MockNotifier)
	svc := NewDonationService(repo, notifier)

	_, err := svc.Create(context.Background(), model.DonationCreateRequest{Amount: 0.5, DonorName: "Ada", DonorEmail: "ada@example.org"})

	assert.ErrorIs(t, err, model.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "OnCreated", mock.Anything, mock.Anything)
}

func TestDonationService_Create_RepositoryFailure(t *testing.T) {
	repo := new(MockDonationRepository)
	notifier := new(MockNotifier)
	svc := NewDonationService(repo, notifier)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.Create(ctx, model.DonationCreateRequest{Amount: 10, Anonymous: true, DonorEmail: "x@example.org"})

	assert.ErrorIs(t, err, model.ErrTransient)
	notifier.AssertNotCalled(t, "OnCreated", mock.Anything, mock.Anything)
}

func TestDonationService_Transition(t *testing.T) {
	ctx := context.Background()
	refunded := &model.Donation{ID: 3, TransactionID: testTxn, Status: model.DonationStatusRefunded}

	tests := []struct {
		name       string
		status     string
		setup      func(*MockDonationRepository, *MockNotifier)
		wantErr    error
		wantNotify bool
	}{
		{
			name:   "allowed move notifies",
			status: "REFUNDED",
			setup: func(r *MockDonationRepository, n *MockNotifier) {
				r.On("UpdateStatus", ctx, int64(3), model.DonationStatusRefunded).
					Return(&model.Change[*model.Donation]{Entity: refunded, Old: "completed", New: "refunded"}, nil)
				n.On("OnStatusChanged", ctx, refunded, "completed", "refunded").Return()
			},
			wantNotify: true,
		},
		{
			name:   "same status is silent",
			status: "refunded",
			setup: func(r *MockDonationRepository, n *MockNotifier) {
				r.On("UpdateStatus", ctx, int64(3), model.DonationStatusRefunded).
					Return(&model.Change[*model.Donation]{Entity: refunded, Old: "refunded", New: "refunded"}, nil)
			},
		},
		{
			name:    "unknown status",
			status:  "lost",
			setup:   func(*MockDonationRepository, *MockNotifier) {},
			wantErr: model.ErrInvalidState,
		},
		{
			name:   "denied by transition table",
			status: "pending",
			setup: func(r *MockDonationRepository, n *MockNotifier) {
				r.On("UpdateStatus", ctx, int64(3), model.DonationStatusPending).Return(nil, repository.ErrTransitionDenied)
			},
			wantErr: model.ErrInvalidState,
		},
		{
			name:   "missing donation",
			status: "completed",
			setup: func(r *MockDonationRepository, n *MockNotifier) {
				r.On("UpdateStatus", ctx, int64(3), model.DonationStatusCompleted).Return(nil, repository.ErrNotFound)
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDonationRepository)
			notifier := new(MockNotifier)
			tt.setup(repo, notifier)
			svc := NewDonationService(repo, notifier)

			got, err := svc.Transition(ctx, 3, tt.status)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, model.DonationStatusRefunded, got.Status)
			}
			if tt.wantNotify {
				notifier.AssertExpectations(t)
			} else {
				notifier.AssertNotCalled(t, "OnStatusChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestDonationService_List_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockDonationRepository)
	svc := NewDonationService(repo, new(MockNotifier))

	_, _, err := svc.List(context.Background(), model.ListFilter{Status: "bogus"})

	assert.ErrorIs(t, err, model.ErrInvalidState)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestAllowDonationTransition(t *testing.T) {
	assert.True(t, allowDonationTransition("pending", "completed"))
	assert.True(t, allowDonationTransition("failed", "completed"))
	assert.False(t, allowDonationTransition("refunded", "pending"))
	assert.False(t, allowDonationTransition("completed", "pending"))
}
