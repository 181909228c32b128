package notify

import (
	"testing"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("Hope Foundation", "INR")
	require.NoError(t, err)
	return r
}

func testDonation(status model.DonationStatus) *model.Donation {
	return &model.Donation{
		ID:               7,
		TransactionID:    "TXN_1700000000000_ABCDEF12",
		Amount:           500,
		DonorName:        "Asha <b>",
		DonorEmail:       "a@x.com",
		TaxID:            "ABCDE1234F",
		GatewayPaymentID: "pay_1",
		Status:           status,
		UpdatedAt:        time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC),
	}
}

func TestRenderer_DonationCompletedHasReceipt(t *testing.T) {
	r := newTestRenderer(t)
	d := testDonation(model.DonationStatusCompleted)

	msg, err := r.Render(StatusChanged(d, "pending", "completed", AudienceRecipient))
	require.NoError(t, err)

	assert.Equal(t, "Thank you for your donation", msg.Subject)
	assert.Contains(t, msg.Text, "INR 500.00")
	assert.Contains(t, msg.HTML, "Asha &lt;b&gt;")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "receipt-TXN_1700000000000_ABCDEF12.txt", msg.Attachments[0].Filename)
	assert.Contains(t, string(msg.Attachments[0].Content), "ABCDE1234F")
	assert.Contains(t, string(msg.Attachments[0].Content), "pay_1")
}

func TestRenderer_StatusSpecificAndFallback(t *testing.T) {
	r := newTestRenderer(t)

	failed, err := r.Render(StatusChanged(testDonation(model.DonationStatusFailed), "pending", "failed", AudienceRecipient))
	require.NoError(t, err)
	assert.Equal(t, "We could not confirm your payment", failed.Subject)
	assert.Empty(t, failed.Attachments)

	contact := &model.ContactSubmission{ID: 3, Name: "Sam", Email: "sam@x.com", Status: model.ContactStatusReplied}
	generic, err := r.Render(StatusChanged(contact, "read", "replied", AudienceRecipient))
	require.NoError(t, err)
	assert.Equal(t, "Your contact is now replied", generic.Subject)
	assert.Contains(t, generic.Text, "from read to replied")

	reg := &model.EventRegistration{ID: 1, EventID: 2, Name: "Meera", Email: "m@x.com", Status: model.RegistrationStatusAttended}
	attended, err := r.Render(StatusChanged(reg, "confirmed", "attended", AudienceRecipient))
	require.NoError(t, err)
	assert.Equal(t, "Your event registration is now attended", attended.Subject)
}

func TestRenderer_Created(t *testing.T) {
	r := newTestRenderer(t)

	ev := &model.Event{ID: 1, Title: "Beach cleanup", Location: "Juhu", StartsAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	msg, err := r.Render(Created(ev, AudienceSubscriber))
	require.NoError(t, err)
	assert.Equal(t, "Join us: Beach cleanup", msg.Subject)
	assert.Contains(t, msg.Text, "Where: Juhu")

	reg := &model.EventRegistration{ID: 1, EventID: 1, Event: ev, Name: "Meera", Email: "m@x.com"}
	msg, err = r.Render(Created(reg, AudienceRecipient))
	require.NoError(t, err)
	assert.Equal(t, "Registration received: Beach cleanup", msg.Subject)

	v := &model.Volunteer{ID: 4, Name: "Ravi", Email: "ravi@x.com", Skills: "teaching"}
	msg, err = r.Render(Created(v, AudienceAdmin))
	require.NoError(t, err)
	assert.Equal(t, "New volunteer application: Ravi", msg.Subject)
}

func TestRenderer_IsPure(t *testing.T) {
	r := newTestRenderer(t)
	env := StatusChanged(testDonation(model.DonationStatusCompleted), "pending", "completed", AudienceRecipient)

	a, err := r.Render(env)
	require.NoError(t, err)
	b, err := r.Render(env)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderer_NilEntity(t *testing.T) {
	r := newTestRenderer(t)
	_, err := r.Render(Envelope{Kind: model.KindDonation, Action: ActionCreated, Audience: AudienceRecipient})
	assert.Error(t, err)
}
