package fixtures

import (
	"fmt"
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

const (
	GatewaySecret = "test-gateway-secret"
	AdminToken    = "test-admin-token"
	AdminAddress  = "office@example.org"
	MailFrom      = "no-reply@example.org"
	OrgName       = "Test Foundation"
)

func DonationRequest(email string, amount float64) model.DonationCreateRequest {
	return model.DonationCreateRequest{
		Amount:     amount,
		DonorName:  "Ada Lovelace",
		DonorEmail: email,
		TaxID:      "abcde1234f",
		Message:    "Keep up the good work",
	}
}

func AnonymousDonationRequest(email string, amount float64) model.DonationCreateRequest {
	return model.DonationCreateRequest{
		Amount:     amount,
		DonorEmail: email,
		Anonymous:  true,
	}
}

func ProjectRequest(title string) model.ProjectCreateRequest {
	return model.ProjectCreateRequest{
		Title:      title,
		Summary:    "Clean water for the valley",
		GoalAmount: 250000,
	}
}

func EventRequest(title string, capacity int) model.EventCreateRequest {
	return model.EventCreateRequest{
		Title:    title,
		Location: "Community hall",
		StartsAt: time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second),
		Capacity: capacity,
	}
}

func RegistrationRequest(email string, guests int) model.RegistrationCreateRequest {
	return model.RegistrationCreateRequest{
		Name:   "Grace Hopper",
		Email:  email,
		Guests: guests,
	}
}

// Subscribers returns n distinct addresses.
func Subscribers(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("reader%d@example.org", i+1)
	}
	return out
}
