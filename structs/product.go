package structs

// ProductStatus enum
type ProductStatus string

const (
	StatusDraft    ProductStatus = "draft"
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

func (ps ProductStatus) Valid() bool {
	switch ps {
	case StatusDraft, StatusActive, StatusInactive:
		return true
	}
	return false
}

// DefaultLowStockThreshold applies when the seller does not set one.
const DefaultLowStockThreshold = 5

// Trim limits enforced on committed products.
const (
	MaxNameLength        = 150
	MaxCategoryLength    = 80
	MaxSubcategoryLength = 80
)
