package promos

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/speedy-van/speedy-van-sub008/internal/pricing"
	"github.com/speedy-van/speedy-van-sub008/pkg/db"
	apperrors "github.com/speedy-van/speedy-van-sub008/pkg/errors"
)

// promoRecord is the persistence shape of a promo code. Monetary columns are
// stored as decimal strings so no precision is lost crossing the driver.
type promoRecord struct {
	Code           string     `gorm:"primaryKey;size:64"`
	Kind           string     `gorm:"size:16;not null"`
	Value          string     `gorm:"size:32;not null"`
	MaxAmount      string     `gorm:"size:32;not null;default:'0'"`
	MinSubtotal    string     `gorm:"size:32;not null;default:'0'"`
	Active         bool       `gorm:"not null;default:true"`
	ExpiresAt      *time.Time `gorm:""`
	MaxRedemptions int        `gorm:"not null;default:0"`
	Redemptions    int        `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (promoRecord) TableName() string {
	return "promo_codes"
}

// Repo stores promo codes in the shared relational database.
type Repo struct {
	client *db.Client
}

func NewRepo(client *db.Client) *Repo {
	return &Repo{client: client}
}

// Migrate creates or updates the promo_codes table.
func (r *Repo) Migrate(ctx context.Context) error {
	return r.client.DB().WithContext(ctx).AutoMigrate(&promoRecord{})
}

func (r *Repo) Lookup(ctx context.Context, code string) (*pricing.Promo, error) {
	var record promoRecord
	err := r.client.DB().WithContext(ctx).
		Where("code = ?", normalizeCode(code)).
		First(&record).Error
	if stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "querying promo code")
	}

	promo, err := record.toDomain()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeConfiguration, err, "stored promo code is malformed")
	}
	return promo, nil
}

func (r *Repo) Upsert(ctx context.Context, promo pricing.Promo) error {
	record := recordFromDomain(promo)
	err := r.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			UpdateAll: true,
		}).
		Create(&record).Error
	if err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "saving promo code")
	}
	return nil
}

func (r *Repo) List(ctx context.Context) ([]pricing.Promo, error) {
	var records []promoRecord
	err := r.client.DB().WithContext(ctx).
		Order("code asc").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "listing promo codes")
	}

	out := make([]pricing.Promo, 0, len(records))
	for _, record := range records {
		promo, err := record.toDomain()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfiguration, err, "stored promo code is malformed")
		}
		out = append(out, *promo)
	}
	return out, nil
}

func (record promoRecord) toDomain() (*pricing.Promo, error) {
	value, err := decimal.NewFromString(record.Value)
	if err != nil {
		return nil, fmt.Errorf("value %q: %w", record.Value, err)
	}
	maxAmount, err := decimal.NewFromString(record.MaxAmount)
	if err != nil {
		return nil, fmt.Errorf("max amount %q: %w", record.MaxAmount, err)
	}
	minSubtotal, err := decimal.NewFromString(record.MinSubtotal)
	if err != nil {
		return nil, fmt.Errorf("min subtotal %q: %w", record.MinSubtotal, err)
	}

	promo := &pricing.Promo{
		Code:           record.Code,
		Kind:           pricing.PromoKind(record.Kind),
		Value:          value,
		MaxAmount:      maxAmount,
		MinSubtotal:    minSubtotal,
		Active:         record.Active,
		MaxRedemptions: record.MaxRedemptions,
		Redemptions:    record.Redemptions,
	}
	if record.ExpiresAt != nil {
		promo.ExpiresAt = *record.ExpiresAt
	}
	return promo, nil
}

func recordFromDomain(promo pricing.Promo) promoRecord {
	record := promoRecord{
		Code:           normalizeCode(promo.Code),
		Kind:           string(promo.Kind),
		Value:          promo.Value.String(),
		MaxAmount:      promo.MaxAmount.String(),
		MinSubtotal:    promo.MinSubtotal.String(),
		Active:         promo.Active,
		MaxRedemptions: promo.MaxRedemptions,
		Redemptions:    promo.Redemptions,
	}
	if !promo.ExpiresAt.IsZero() {
		expires := promo.ExpiresAt
		record.ExpiresAt = &expires
	}
	return record
}
