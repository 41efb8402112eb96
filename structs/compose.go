package structs

import "encoding/json"

// Step submission payloads. Numeric form fields arrive as strings from both
// the browser form encoding and the JSON surface, so they are kept as
// strings here and parsed during validation.

type Step1Request struct {
	ProductName    string `json:"productName"`
	Category       string `json:"category"`
	Subcategory    string `json:"subcategory,omitempty"`
	Price          string `json:"price"`
	DiscountType   string `json:"discountType,omitempty"`
	DiscountValue  string `json:"discountValue,omitempty"`
	VoucherType    string `json:"voucherType,omitempty"`
	PrimaryImage   string `json:"primaryImage,omitempty"`
	SecondaryImage string `json:"secondaryImage,omitempty"`
}

type Step2Request struct {
	Description    string   `json:"description,omitempty"`
	Materials      string   `json:"materials,omitempty"`
	DetailsFit     string   `json:"detailsFit,omitempty"`
	SizeGuide      []string `json:"sizeGuide,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	Subitems       []string `json:"subitems,omitempty"`
}

type Step3Request struct {
	// Variants accepts any of the historical shapes; see NormalizeVariants.
	Variants json.RawMessage `json:"variants"`
	// TotalStock is accepted for compatibility and ignored; totals are
	// recomputed from the cells.
	TotalStock json.RawMessage `json:"totalStock,omitempty"`
}

// ComposePayload is the full {step1, step2, step3} body accepted by the
// step-3, commit and edit endpoints. Sections are optional; absent sections
// leave the corresponding draft section untouched.
type ComposePayload struct {
	Step1 *Step1Request `json:"step1,omitempty"`
	Step2 *Step2Request `json:"step2,omitempty"`
	Step3 *Step3Request `json:"step3,omitempty"`
}

// PreviewResult is the read-only projection of a merged draft plus whatever
// would block its commit.
type PreviewResult struct {
	Product *ProductView     `json:"product"`
	Errors  []PreviewBlocker `json:"errors,omitempty"`
	Draft   *Draft           `json:"-"`
	Ready   bool             `json:"ready"`
}

type PreviewBlocker struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
