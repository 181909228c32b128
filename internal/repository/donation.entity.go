package repository

import (
	"time"

	"github.com/nimasrn/donor-hub/internal/model"
)

type DonationEntity struct {
	ID               int64     `db:"id"                 gorm:"primaryKey;autoIncrement;column:id"`
	TransactionID    string    `db:"transaction_id"     gorm:"column:transaction_id;not null;uniqueIndex"`
	Amount           float64   `db:"amount"             gorm:"column:amount;type:numeric(12,2);not null"`
	DonorName        string    `db:"donor_name"         gorm:"column:donor_name;not null"`
	DonorEmail       string    `db:"donor_email"        gorm:"column:donor_email;not null;index"`
	DonorPhone       string    `db:"donor_phone"        gorm:"column:donor_phone"`
	TaxID            string    `db:"tax_id"             gorm:"column:tax_id"`
	Message          string    `db:"message"            gorm:"column:message"`
	Anonymous        bool      `db:"anonymous"          gorm:"column:anonymous;not null;default:false"`
	GatewayOrderID   string    `db:"gateway_order_id"   gorm:"column:gateway_order_id;index"`
	GatewayPaymentID string    `db:"gateway_payment_id" gorm:"column:gateway_payment_id"`
	GatewaySignature string    `db:"gateway_signature"  gorm:"column:gateway_signature"`
	Status           string    `db:"status"             gorm:"column:status;not null;default:pending;index"`
	CreatedAt        time.Time `db:"created_at"         gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `db:"updated_at"         gorm:"column:updated_at;autoUpdateTime"`
}

func (DonationEntity) TableName() string {
	return "donations"
}

func (e *DonationEntity) GetStatus() string { return e.Status }

func (e *DonationEntity) SetStatus(status string, at time.Time) {
	e.Status = status
	e.UpdatedAt = at
}

func toDonationEntity(d *model.Donation) *DonationEntity {
	if d == nil {
		return nil
	}
	return &DonationEntity{
		ID:               d.ID,
		TransactionID:    d.TransactionID,
		Amount:           d.Amount,
		DonorName:        d.DonorName,
		DonorEmail:       d.DonorEmail,
		DonorPhone:       d.DonorPhone,
		TaxID:            d.TaxID,
		Message:          d.Message,
		Anonymous:        d.Anonymous,
		GatewayOrderID:   d.GatewayOrderID,
		GatewayPaymentID: d.GatewayPaymentID,
		GatewaySignature: d.GatewaySignature,
		Status:           string(d.Status),
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func toDonationModel(e *DonationEntity) *model.Donation {
	if e == nil {
		return nil
	}
	return &model.Donation{
		ID:               e.ID,
		TransactionID:    e.TransactionID,
		Amount:           e.Amount,
		DonorName:        e.DonorName,
		DonorEmail:       e.DonorEmail,
		DonorPhone:       e.DonorPhone,
		TaxID:            e.TaxID,
		Message:          e.Message,
		Anonymous:        e.Anonymous,
		GatewayOrderID:   e.GatewayOrderID,
		GatewayPaymentID: e.GatewayPaymentID,
		GatewaySignature: e.GatewaySignature,
		Status:           model.DonationStatus(e.Status),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func toDonationModels(entities []*DonationEntity) []*model.Donation {
	if entities == nil {
		return nil
	}
	models := make([]*model.Donation, len(entities))
	for i, e := range entities {
		models[i] = toDonationModel(e)
	}
	return models
}
