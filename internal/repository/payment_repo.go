package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payfast-licensing/internal/domain/billing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) CreatePayment(ctx context.Context, p *billing.Payment) error {
	if err := r.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) CreateLicense(ctx context.Context, l *billing.License) error {
	if err := r.DB.WithContext(ctx).Omit("Payment").Create(l).Error; err != nil {
		return fmt.Errorf("create license: %w", err)
	}
	return nil
}

// PaymentExists reports whether a payment with the gateway transaction id is stored.
func (r *PaymentRepository) PaymentExists(ctx context.Context, transactionID string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&billing.Payment{}).
		Where("transaction_id = ?", transactionID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("count payments: %w", err)
	}
	return n > 0, nil
}

func (r *PaymentRepository) ListPaymentsByUser(ctx context.Context, userID string) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListLicensesByUser(ctx context.Context, userID string) ([]billing.License, error) {
	var licenses []billing.License
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&licenses).Error; err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	return licenses, nil
}

func (r *PaymentRepository) ListPayments(ctx context.Context, limit int) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) ListLicenses(ctx context.Context, limit int) ([]billing.License, error) {
	var licenses []billing.License
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&licenses).Error; err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	return licenses, nil
}

func (r *PaymentRepository) FindLicenseByKey(ctx context.Context, key string) (*billing.License, error) {
	var l billing.License
	err := r.DB.WithContext(ctx).Where("license_key = ?", key).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find license: %w", err)
	}
	return &l, nil
}

type Stats struct {
	TotalPayments   int64            `json:"total_payments"`
	TotalRevenue    decimal.Decimal  `json:"total_revenue"`
	RecentRevenue   decimal.Decimal  `json:"recent_revenue"`
	LicensesPerType map[string]int64 `json:"licenses_per_type"`
}

// Stats aggregates completed payments overall and since the given time.
func (r *PaymentRepository) Stats(ctx context.Context, since time.Time) (*Stats, error) {
	db := r.DB.WithContext(ctx)
	stats := &Stats{LicensesPerType: map[string]int64{}}

	completed := db.Model(&billing.Payment{}).Where("payment_status = ?", billing.PaymentStatusCompleted)
	if err := completed.Session(&gorm.Session{}).Count(&stats.TotalPayments).Error; err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}
	var total, recent struct{ Sum decimal.Decimal }
	if err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0) AS sum").
		Scan(&total).Error; err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if err := completed.Session(&gorm.Session{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(amount), 0) AS sum").
		Scan(&recent).Error; err != nil {
		return nil, fmt.Errorf("sum recent revenue: %w", err)
	}
	stats.TotalRevenue = total.Sum
	stats.RecentRevenue = recent.Sum

	type typeCount struct {
		LicenseType string
		Count       int64
	}
	var counts []typeCount
	if err := db.Model(&billing.License{}).
		Select("license_type, COUNT(id) as count").
		Group("license_type").
		Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("count licenses: %w", err)
	}
	for _, c := range counts {
		stats.LicensesPerType[c.LicenseType] = c.Count
	}
	return stats, nil
}
