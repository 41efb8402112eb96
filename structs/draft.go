package structs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DraftBasic holds the validated step-1 section. Image fields are always
// /uploads URLs by the time they land here; inline data URLs are ingested
// by the media store during step submit.
type DraftBasic struct {
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Subcategory    string          `json:"subcategory,omitempty"`
	Price          decimal.Decimal `json:"price"`
	DiscountType   DiscountType    `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	VoucherType    string          `json:"voucher_type,omitempty"`
	PrimaryImage   string          `json:"primary_image,omitempty"`
	SecondaryImage string          `json:"secondary_image,omitempty"`
}

// DraftDescription holds the step-2 section.
type DraftDescription struct {
	Description    string   `json:"description,omitempty"`
	Materials      string   `json:"materials,omitempty"`
	DetailsFit     string   `json:"details_fit,omitempty"`
	SizeGuides     []string `json:"size_guides,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Subitems       []string `json:"subitems,omitempty"`
}

// DraftVariants holds the step-3 section. TotalStock is always recomputed
// server-side from the cells; client-supplied totals are ignored.
type DraftVariants struct {
	Variants   VariantList `json:"variants"`
	TotalStock int         `json:"total_stock"`
}

// Draft is the transient composition state for one (seller, draft id) pair.
// Sections are permitted to be partial and invalid until commit.
type Draft struct {
	SellerID  uuid.UUID         `json:"seller_id"`
	DraftID   string            `json:"draft_id"`
	Step1     *DraftBasic       `json:"step1,omitempty"`
	Step2     *DraftDescription `json:"step2,omitempty"`
	Step3     *DraftVariants    `json:"step3,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// A step submit replaces its section wholesale; the other sections are
// preserved untouched.

func (d *Draft) SetStep1(s DraftBasic) {
	d.Step1 = &s
	d.UpdatedAt = time.Now().UTC()
}

func (d *Draft) SetStep2(s DraftDescription) {
	d.Step2 = &s
	d.UpdatedAt = time.Now().UTC()
}

func (d *Draft) SetStep3(variants VariantList) {
	d.Step3 = &DraftVariants{
		Variants:   variants,
		TotalStock: variants.TotalStock(),
	}
	d.UpdatedAt = time.Now().UTC()
}

// Ready reports whether all step sections needed for commit are present.
func (d *Draft) Ready() bool {
	return d.Step1 != nil && d.Step3 != nil
}

// Expired reports whether the draft has outlived the given horizon.
func (d *Draft) Expired(ttl time.Duration) bool {
	return !d.UpdatedAt.IsZero() && time.Since(d.UpdatedAt) > ttl
}
