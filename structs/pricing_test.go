package structs_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"tindahan_server/structs"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestComputePricing_Percentage(t *testing.T) {
	p := structs.ComputePricing(dec(t, "100"), structs.DiscountPercentage, dec(t, "10"))

	if !p.SalePrice.Equal(dec(t, "90.00")) {
		t.Fatalf("sale: %s", p.SalePrice)
	}
	if p.CompareAtPrice == nil || !p.CompareAtPrice.Equal(dec(t, "100.00")) {
		t.Fatalf("compare-at: %v", p.CompareAtPrice)
	}
}

func TestComputePricing_Fixed(t *testing.T) {
	p := structs.ComputePricing(dec(t, "899.50"), structs.DiscountFixed, dec(t, "100"))

	if !p.SalePrice.Equal(dec(t, "799.50")) {
		t.Fatalf("sale: %s", p.SalePrice)
	}
	if p.CompareAtPrice == nil || !p.CompareAtPrice.Equal(dec(t, "899.50")) {
		t.Fatalf("compare-at: %v", p.CompareAtPrice)
	}
}

func TestComputePricing_NoDiscount(t *testing.T) {
	p := structs.ComputePricing(dec(t, "49.99"), structs.DiscountNone, decimal.Zero)

	if !p.SalePrice.Equal(dec(t, "49.99")) {
		t.Fatalf("sale: %s", p.SalePrice)
	}
	if p.CompareAtPrice != nil {
		t.Fatalf("compare-at should be absent, got %s", p.CompareAtPrice)
	}
}

func TestComputePricing_OverDiscountClamps(t *testing.T) {
	// Fixed discount larger than the base.
	p := structs.ComputePricing(dec(t, "50"), structs.DiscountFixed, dec(t, "80"))
	if !p.SalePrice.Equal(decimal.Zero) {
		t.Fatalf("fixed over-discount sale: %s", p.SalePrice)
	}
	if p.CompareAtPrice == nil || !p.CompareAtPrice.Equal(dec(t, "50.00")) {
		t.Fatalf("compare-at keeps the base: %v", p.CompareAtPrice)
	}

	// Percentage above 100.
	p = structs.ComputePricing(dec(t, "50"), structs.DiscountPercentage, dec(t, "150"))
	if !p.SalePrice.Equal(decimal.Zero) {
		t.Fatalf("percentage over-discount sale: %s", p.SalePrice)
	}
}

func TestComputePricing_RoundsHalfToEven(t *testing.T) {
	cases := []struct {
		base string
		pct  string
		want string
	}{
		// 0.5 at the third decimal rounds toward the even cent.
		{"10.05", "50", "5.02"},  // 5.025 -> 5.02
		{"10.07", "50", "5.04"},  // 5.035 -> 5.04
		{"100.50", "25", "75.38"}, // 75.375 -> 75.38
		{"100.50", "75", "25.12"}, // 25.125 -> 25.12
	}
	for _, tc := range cases {
		p := structs.ComputePricing(dec(t, tc.base), structs.DiscountPercentage, dec(t, tc.pct))
		if !p.SalePrice.Equal(dec(t, tc.want)) {
			t.Fatalf("%s at %s%%: want %s, got %s", tc.base, tc.pct, tc.want, p.SalePrice)
		}
	}
}

func TestDiscountType_Valid(t *testing.T) {
	for _, dt := range []structs.DiscountType{structs.DiscountNone, structs.DiscountPercentage, structs.DiscountFixed} {
		if !dt.Valid() {
			t.Fatalf("%s should be valid", dt)
		}
	}
	if structs.DiscountType("bogo").Valid() {
		t.Fatal("unknown discount type accepted")
	}
}
