package services

import (
	"context"
	"time"

	"github.com/nimasrn/donor-hub/internal/locker"
	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/nimasrn/donor-hub/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OnCreated(ctx context.Context, entity model.Notifiable) {
	m.Called(ctx, entity)
}

func (m *MockNotifier) OnStatusChanged(ctx context.Context, entity model.Notifiable, old, new string) {
	m.Called(ctx, entity, old, new)
}

type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) Create(ctx context.Context, d *model.Donation) (*model.Donation, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(*model.Donation) *model.Donation); ok {
		return fn(d), args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id int64) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetByTransactionID(ctx context.Context, txnID string) (*model.Donation, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) GetByOrderID(ctx context.Context, orderID string) (*model.Donation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Donation, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationRepository) UpdateStatus(ctx context.Context, id int64, status model.DonationStatus, allowed repository.AllowFunc) (*model.Change[*model.Donation], error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Change[*model.Donation]), args.Error(1)
}

func (m *MockDonationRepository) ApplyVerification(ctx context.Context, id int64, proof model.PaymentProof, status model.DonationStatus) (*model.Change[*model.Donation], error) {
	args := m.Called(ctx, id, proof, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Change[*model.Donation]), args.Error(1)
}

type MockLocker struct {
	mock.Mock
}

func (m *MockLocker) Acquire(ctx context.Context, name string) (*locker.Lease, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*locker.Lease), args.Error(1)
}

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(ctx context.Context, s *model.Subscriber) (*model.Subscriber, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) GetByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Subscriber, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Subscriber), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriberRepository) UpdateStatus(ctx context.Context, id int64, status model.SubscriberStatus) (*model.Change[*model.Subscriber], error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Change[*model.Subscriber]), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

func (m *MockEventRepository) Create(ctx context.Context, ev *model.Event) (*model.Event, error) {
	args := m.Called(ctx, ev)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) LockByID(ctx context.Context, id int64) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) ListUpcoming(ctx context.Context, from time.Time, limit, offset int) ([]*model.Event, error) {
	args := m.Called(ctx, from, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *MockEventRepository) CountSeats(ctx context.Context, eventID int64) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventRepository) CreateRegistration(ctx context.Context, reg *model.EventRegistration) (*model.EventRegistration, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventRegistration), args.Error(1)
}

func (m *MockEventRepository) ListRegistrations(ctx context.Context, eventID int64, f model.ListFilter) ([]*model.EventRegistration, int64, error) {
	args := m.Called(ctx, eventID, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.EventRegistration), args.Get(1).(int64), args.Error(2)
}

func (m *MockEventRepository) UpdateRegistrationStatus(ctx context.Context, id int64, status model.RegistrationStatus) (*model.Change[*model.EventRegistration], error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Change[*model.EventRegistration]), args.Error(1)
}

type MockVolunteerRepository struct {
	mock.Mock
}

func (m *MockVolunteerRepository) Create(ctx context.Context, v *model.Volunteer) (*model.Volunteer, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) GetByID(ctx context.Context, id int64) (*model.Volunteer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Volunteer), args.Error(1)
}

func (m *MockVolunteerRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Volunteer, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Volunteer), args.Get(1).(int64), args.Error(2)
}

func (m *MockVolunteerRepository) UpdateStatus(ctx context.Context, id int64, status model.VolunteerStatus) (*model.Change[*model.Volunteer], error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Change[*model.Volunteer]), args.Error(1)
}

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *model.ContactSubmission) (*model.ContactSubmission, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactSubmission), args.Error(1)
}

func (m *MockContactRepository) List(ctx context.Context, f model.ListFilter) ([]*model.ContactSubmission, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.ContactSubmission), args.Get(1).(int64), args.Error(2)
}

func (m *MockContactRepository) UpdateStatus(ctx context.Context, id int64, status model.ContactStatus) (*model.Change[*model.ContactSubmission], error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Change[*model.ContactSubmission]), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context, f model.ListFilter) ([]*model.Project, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Project), args.Get(1).(int64), args.Error(2)
}
