package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/nimasrn/donor-hub/internal/lifecycle"
	"github.com/nimasrn/donor-hub/internal/model"
	xhttp "github.com/nimasrn/donor-hub/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) Create(ctx context.Context, req model.DonationCreateRequest) (*model.Donation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationService) Get(ctx context.Context, id int64) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationService) GetByTransactionID(ctx context.Context, txnID string) (*model.Donation, error) {
	args := m.Called(ctx, txnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

func (m *MockDonationService) List(ctx context.Context, f model.ListFilter) ([]*model.Donation, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.Donation), args.Get(1).(int64), args.Error(2)
}

func (m *MockDonationService) Transition(ctx context.Context, id int64, status string) (*model.Donation, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Verify(ctx context.Context, proof model.PaymentProof) (*model.Donation, error) {
	args := m.Called(ctx, proof)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Donation), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubStats struct{ snap lifecycle.StatsSnapshot }

func (s stubStats) Stats() lifecycle.StatsSnapshot { return s.snap }

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupTestContext(method, path string, body []byte) *xhttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(path)
	if body != nil {
		ctx.Request.SetBody(body)
	}
	return ctx
}

func decode(t *testing.T, ctx *xhttp.RequestCtx) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &env))
	return env
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrValidation, 400},
		{model.ErrInvalidState, 400},
		{model.ErrInvalidSignature, 400},
		{model.ErrNotFound, 404},
		{model.ErrConflict, 409},
		{model.ErrTransient, 500},
		{errors.New("boom"), 500},
		{fmt.Errorf("wrapped: %w", model.ErrNotFound), 404},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestDonationHandler_CreateDonation(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		donations := new(MockDonationService)
		h := NewDonationHandler(donations, new(MockPaymentService))

		donations.On("Create", mock.Anything, mock.MatchedBy(func(r model.DonationCreateRequest) bool {
			return r.Amount == 25 && r.DonorEmail == "ada@example.org"
		})).Return(&model.Donation{ID: 1, TransactionID: "TXN_1_AB", Amount: 25, DonorName: "Ada", Status: model.DonationStatusPending}, nil)

		ctx := setupTestContext("POST", "/api/v1/donations", []byte(`{"amount":25,"donor_name":"Ada","donor_email":"ada@example.org"}`))
		h.CreateDonation(ctx)

		assert.Equal(t, 201, ctx.Response.StatusCode())
		env := decode(t, ctx)
		assert.True(t, env.Success)

		var r receipt
		require.NoError(t, json.Unmarshal(env.Data, &r))
		assert.Equal(t, "TXN_1_AB", r.TransactionID)
		assert.Equal(t, model.DonationStatusPending, r.Status)
		donations.AssertExpectations(t)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		h := NewDonationHandler(new(MockDonationService), new(MockPaymentService))

		ctx := setupTestContext("POST", "/api/v1/donations", []byte("{"))
		h.CreateDonation(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		env := decode(t, ctx)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "invalid JSON")
	})

	t.Run("validation error", func(t *testing.T) {
		donations := new(MockDonationService)
		h := NewDonationHandler(donations, new(MockPaymentService))
		donations.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: amount must be at least 1", model.ErrValidation))

		ctx := setupTestContext("POST", "/api/v1/donations", []byte(`{"amount":0}`))
		h.CreateDonation(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		assert.Contains(t, decode(t, ctx).Message, "amount")
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		donations := new(MockDonationService)
		h := NewDonationHandler(donations, new(MockPaymentService))
		donations.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("pq: password authentication failed"))

		ctx := setupTestContext("POST", "/api/v1/donations", []byte(`{"amount":10}`))
		h.CreateDonation(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
		assert.NotContains(t, decode(t, ctx).Message, "password")
	})
}

func TestDonationHandler_GetDonation(t *testing.T) {
	donations := new(MockDonationService)
	h := NewDonationHandler(donations, new(MockPaymentService))
	donations.On("GetByTransactionID", mock.Anything, "TXN_404").Return(nil, model.ErrNotFound)

	ctx := setupTestContext("GET", "/api/v1/donations/TXN_404", nil)
	ctx.SetUserValue("transaction_id", "TXN_404")
	h.GetDonation(ctx)

	assert.Equal(t, 404, ctx.Response.StatusCode())
}

func TestDonationHandler_GetDonation_HidesAnonymousDonor(t *testing.T) {
	donations := new(MockDonationService)
	h := NewDonationHandler(donations, new(MockPaymentService))
	donations.On("GetByTransactionID", mock.Anything, "TXN_1_AB").
		Return(&model.Donation{TransactionID: "TXN_1_AB", DonorName: "Ada", Anonymous: true, GatewayPaymentID: "pay_1"}, nil)

	ctx := setupTestContext("GET", "/api/v1/donations/TXN_1_AB", nil)
	ctx.SetUserValue("transaction_id", "TXN_1_AB")
	h.GetDonation(ctx)

	assert.Equal(t, 200, ctx.Response.StatusCode())
	assert.NotContains(t, string(ctx.Response.Body()), "Ada")
	assert.NotContains(t, string(ctx.Response.Body()), "pay_1")
}

func TestDonationHandler_VerifyPayment(t *testing.T) {
	proof := model.PaymentProof{TransactionID: "TXN_1_AB", OrderID: "o", PaymentID: "p", Signature: "ab"}
	body, _ := json.Marshal(proof)

	t.Run("verified", func(t *testing.T) {
		payments := new(MockPaymentService)
		h := NewDonationHandler(new(MockDonationService), payments)
		payments.On("Verify", mock.Anything, proof).
			Return(&model.Donation{TransactionID: "TXN_1_AB", Status: model.DonationStatusCompleted}, nil)

		ctx := setupTestContext("POST", "/api/v1/donations/verify", body)
		h.VerifyPayment(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		var r receipt
		require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &r))
		assert.Equal(t, model.DonationStatusCompleted, r.Status)
	})

	t.Run("signature mismatch returns the failed record", func(t *testing.T) {
		payments := new(MockPaymentService)
		h := NewDonationHandler(new(MockDonationService), payments)
		payments.On("Verify", mock.Anything, proof).
			Return(&model.Donation{TransactionID: "TXN_1_AB", Status: model.DonationStatusFailed},
				fmt.Errorf("%w: transaction TXN_1_AB", model.ErrInvalidSignature))

		ctx := setupTestContext("POST", "/api/v1/donations/verify", body)
		h.VerifyPayment(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		env := decode(t, ctx)
		assert.False(t, env.Success)
		var r receipt
		require.NoError(t, json.Unmarshal(env.Data, &r))
		assert.Equal(t, model.DonationStatusFailed, r.Status)
	})

	t.Run("conflict", func(t *testing.T) {
		payments := new(MockPaymentService)
		h := NewDonationHandler(new(MockDonationService), payments)
		payments.On("Verify", mock.Anything, proof).Return(nil, model.ErrConflict)

		ctx := setupTestContext("POST", "/api/v1/donations/verify", body)
		h.VerifyPayment(ctx)

		assert.Equal(t, 409, ctx.Response.StatusCode())
	})

	t.Run("transient", func(t *testing.T) {
		payments := new(MockPaymentService)
		h := NewDonationHandler(new(MockDonationService), payments)
		payments.On("Verify", mock.Anything, proof).Return(nil, fmt.Errorf("%w: db down", model.ErrTransient))

		ctx := setupTestContext("POST", "/api/v1/donations/verify", body)
		h.VerifyPayment(ctx)

		assert.Equal(t, 500, ctx.Response.StatusCode())
		assert.Equal(t, model.ErrTransient.Error(), decode(t, ctx).Message)
	})
}

func TestDonationHandler_UpdateDonationStatus(t *testing.T) {
	t.Run("bad id", func(t *testing.T) {
		h := NewDonationHandler(new(MockDonationService), new(MockPaymentService))
		ctx := setupTestContext("PATCH", "/api/v1/admin/donations/x/status", []byte(`{"status":"refunded"}`))
		ctx.SetUserValue("id", "x")
		h.UpdateDonationStatus(ctx)
		assert.Equal(t, 400, ctx.Response.StatusCode())
	})

	t.Run("invalid transition", func(t *testing.T) {
		donations := new(MockDonationService)
		h := NewDonationHandler(donations, new(MockPaymentService))
		donations.On("Transition", mock.Anything, int64(5), "pending").Return(nil, model.ErrInvalidState)

		ctx := setupTestContext("PATCH", "/api/v1/admin/donations/5/status", []byte(`{"status":"pending"}`))
		ctx.SetUserValue("id", "5")
		h.UpdateDonationStatus(ctx)

		assert.Equal(t, 400, ctx.Response.StatusCode())
		donations.AssertExpectations(t)
	})
}

func TestListFilterFromQuery(t *testing.T) {
	ctx := setupTestContext("GET", "/api/v1/admin/donations?status=completed&limit=10&offset=20&order=DESC", nil)
	f := listFilter(ctx)
	assert.Equal(t, model.ListFilter{Status: "completed", Limit: 10, Offset: 20, Desc: true}, f)
}

func TestAdminGroup_RequiresToken(t *testing.T) {
	donations := new(MockDonationService)
	donations.On("List", mock.Anything, mock.Anything).Return([]*model.Donation{}, int64(0), nil)

	r := xhttp.CreateDefaultRouter()
	api := r.Group("/api/v1")
	RegisterDonationRoutes(api, NewAdminGroup(api.Group("/admin"), xhttp.BearerAuth("t0ken")), NewDonationHandler(donations, new(MockPaymentService)))

	ctx := setupTestContext("GET", "/api/v1/admin/donations", nil)
	r.Handler(ctx)
	assert.Equal(t, 401, ctx.Response.StatusCode())

	ctx = setupTestContext("GET", "/api/v1/admin/donations", nil)
	ctx.Request.Header.Set("Authorization", "Bearer t0ken")
	r.Handler(ctx)
	assert.Equal(t, 200, ctx.Response.StatusCode())
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler(stubStats{snap: lifecycle.StatsSnapshot{Sent: 3}}, map[string]Pinger{"postgres": stubPinger{}})
		ctx := setupTestContext("GET", "/api/v1/health", nil)
		h.GetHealth(ctx)

		assert.Equal(t, 200, ctx.Response.StatusCode())
		var resp healthResponse
		require.NoError(t, json.Unmarshal(decode(t, ctx).Data, &resp))
		assert.Equal(t, "ok", resp.Status)
		require.NotNil(t, resp.Notifications)
		assert.Equal(t, int64(3), resp.Notifications.Sent)
	})

	t.Run("degraded", func(t *testing.T) {
		h := NewHealthHandler(nil, map[string]Pinger{"redis": stubPinger{err: errors.New("dial tcp: refused")}})
		ctx := setupTestContext("GET", "/api/v1/health", nil)
		h.GetHealth(ctx)

		assert.Equal(t, 503, ctx.Response.StatusCode())
	})
}
