package handling_test

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"tindahan_server/handling"
	"tindahan_server/lib"
	"tindahan_server/structs"
)

func TestParseCatalogListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=2&page_size=12&category=Tops&q=linen", nil)

	opts, err := handling.ParseCatalogListOptions(r)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Page != 2 || opts.PageSize != 12 {
		t.Fatalf("pagination: %+v", opts)
	}
	if opts.Category != "Tops" || opts.NamePrefix != "linen" {
		t.Fatalf("filters: %+v", opts)
	}

	r = httptest.NewRequest("GET", "/api/products?page=two", nil)
	if _, err := handling.ParseCatalogListOptions(r); !lib.IsKind(err, lib.KindValidationFailed) {
		t.Fatalf("want validation_failed, got %v", err)
	}
}

func TestParseSellerListOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/seller/products?status=active&page=1&page_size=5", nil)

	status, page, pageSize, err := handling.ParseSellerListOptions(r)
	if err != nil {
		t.Fatal(err)
	}
	if status != structs.StatusActive || page != 1 || pageSize != 5 {
		t.Fatalf("got %q, %d, %d", status, page, pageSize)
	}

	r = httptest.NewRequest("GET", "/seller/products?status=archived", nil)
	if _, _, _, err := handling.ParseSellerListOptions(r); !lib.IsKind(err, lib.KindValidationFailed) {
		t.Fatalf("want validation_failed, got %v", err)
	}
}

func TestParseStepOneForm(t *testing.T) {
	form := url.Values{}
	form.Set("productName", "  Linen Shirt ")
	form.Set("category", "Tops")
	form.Set("price", "499.00")
	form.Set("discountType", "percentage")
	form.Set("discountValue", "10")

	r := httptest.NewRequest("POST", "/seller/add_product", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := handling.ParseStepOneForm(r)
	if err != nil {
		t.Fatal(err)
	}
	if req.ProductName != "Linen Shirt" || req.Price != "499.00" {
		t.Fatalf("fields: %+v", req)
	}
	if req.DiscountType != "percentage" || req.DiscountValue != "10" {
		t.Fatalf("discount fields: %+v", req)
	}
}

func TestParseStepTwoForm(t *testing.T) {
	form := url.Values{}
	form.Set("description", "Breathable linen.")
	form.Add("sizeGuide", "/uploads/size_guides/a.png")
	form.Add("sizeGuide", " ")
	form.Add("subitems", "Spare buttons")

	r := httptest.NewRequest("POST", "/seller/add_product_description", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := handling.ParseStepTwoForm(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(req.SizeGuide) != 1 {
		t.Fatalf("blank repeats should drop: %v", req.SizeGuide)
	}
	if len(req.Subitems) != 1 || req.Subitems[0] != "Spare buttons" {
		t.Fatalf("subitems: %v", req.Subitems)
	}
}

func TestParseStepThreeForm(t *testing.T) {
	form := url.Values{}
	form.Set("sku_0", "RB-01")
	form.Set("color_0", "Red")
	form.Set("color_picker_0", "#FF0000")
	form.Set("sizeStocks_0", `[{"size":"M","stock":3},{"size":"L","stock":1}]`)
	form.Set("lowStock_0", "2")
	form.Set("color_1", "Blue")
	form.Set("color_picker_1", "#0000ff")
	form.Set("sizeStocks_1", `[{"size":"S","stock":2}]`)

	r := httptest.NewRequest("POST", "/seller/products/step3", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	req, err := handling.ParseStepThreeForm(r)
	if err != nil {
		t.Fatal(err)
	}

	// The assembled rows must flow through the same normalizer as JSON bodies.
	variants, err := structs.NormalizeVariants(req.Variants)
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 2 {
		t.Fatalf("want 2 variants, got %+v", variants)
	}
	if variants[0].SKU != "RB-01" || variants[0].ColorHex != "#ff0000" {
		t.Fatalf("row 0: %+v", variants[0])
	}
	if variants[0].LowStock == nil || *variants[0].LowStock != 2 {
		t.Fatalf("low stock override lost: %+v", variants[0])
	}
	if variants.TotalStock() != 6 {
		t.Fatalf("total: %d", variants.TotalStock())
	}
}

func TestParseStepThreeForm_Rejections(t *testing.T) {
	post := func(form url.Values) error {
		r := httptest.NewRequest("POST", "/seller/products/step3", strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		_, err := handling.ParseStepThreeForm(r)
		return err
	}

	if err := post(url.Values{}); !lib.IsKind(err, lib.KindMalformedVariants) {
		t.Fatalf("empty form: want malformed_variants, got %v", err)
	}

	form := url.Values{}
	form.Set("color_0", "Red")
	if err := post(form); !lib.IsKind(err, lib.KindValidationFailed) {
		t.Fatalf("missing sizeStocks: want validation_failed, got %v", err)
	}

	form.Set("sizeStocks_0", `{not json`)
	if err := post(form); !lib.IsKind(err, lib.KindValidationFailed) {
		t.Fatalf("bad sizeStocks JSON: want validation_failed, got %v", err)
	}

	form.Set("sizeStocks_0", `[{"size":"M","stock":1}]`)
	form.Set("lowStock_0", "many")
	if err := post(form); !lib.IsKind(err, lib.KindValidationFailed) {
		t.Fatalf("bad lowStock: want validation_failed, got %v", err)
	}
}
