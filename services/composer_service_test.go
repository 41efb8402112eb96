package services

import (
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tindahan_server/lib"
	"tindahan_server/structs"
)

// testComposer wires only the pieces the pure assembly/validation paths
// touch; nothing here reaches redis or postgres.
func testComposer(t *testing.T) *ComposerService {
	t.Helper()
	cfg := &structs.Config{
		Media: &structs.MediaConfig{
			UploadRoot:    t.TempDir(),
			PublicPrefix:  "/uploads",
			MaxUploadSize: 1 << 20,
		},
	}
	logger := gecho.NewDefaultLogger()
	return &ComposerService{
		logger:    logger,
		config:    cfg,
		media:     NewMediaService(logger, cfg),
		editLocks: lib.NewKeyedMutex[uuid.UUID](),
	}
}

func fieldNames(err error) map[string]bool {
	names := map[string]bool{}
	if e, ok := lib.AsError(err); ok {
		for _, f := range e.Fields {
			names[f.Field] = true
		}
	}
	return names
}

func TestValidateStep1_ReportsAllFailures(t *testing.T) {
	cs := testComposer(t)

	_, err := cs.validateStep1(structs.Step1Request{
		ProductName: "  ",
		Category:    "",
		Price:       "cheap",
	})
	if !lib.IsKind(err, lib.KindValidationFailed) {
		t.Fatalf("want validation_failed, got %v", err)
	}

	names := fieldNames(err)
	for _, want := range []string{"productName", "category", "price"} {
		if !names[want] {
			t.Fatalf("missing field error for %q in %v", want, names)
		}
	}
}

func TestValidateStep1_FieldRules(t *testing.T) {
	cs := testComposer(t)
	long := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	cases := []struct {
		name  string
		req   structs.Step1Request
		field string
	}{
		{"name too long", structs.Step1Request{ProductName: long(151), Category: "Tops", Price: "10"}, "productName"},
		{"category too long", structs.Step1Request{ProductName: "Shirt", Category: long(81), Price: "10"}, "category"},
		{"subcategory too long", structs.Step1Request{ProductName: "Shirt", Category: "Tops", Subcategory: long(81), Price: "10"}, "subcategory"},
		{"negative price", structs.Step1Request{ProductName: "Shirt", Category: "Tops", Price: "-1"}, "price"},
		{"bad discount type", structs.Step1Request{ProductName: "Shirt", Category: "Tops", Price: "10", DiscountType: "bogo"}, "discountType"},
		{"bad discount value", structs.Step1Request{ProductName: "Shirt", Category: "Tops", Price: "10", DiscountValue: "lots"}, "discountValue"},
		{"negative discount value", structs.Step1Request{ProductName: "Shirt", Category: "Tops", Price: "10", DiscountValue: "-5"}, "discountValue"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cs.validateStep1(tc.req)
			if !fieldNames(err)[tc.field] {
				t.Fatalf("want field error on %q, got %v", tc.field, err)
			}
		})
	}
}

func TestValidateStep1_Defaults(t *testing.T) {
	cs := testComposer(t)

	basic, err := cs.validateStep1(structs.Step1Request{
		ProductName: "  Linen Shirt  ",
		Category:    "Tops",
		Price:       "499.00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if basic.Name != "Linen Shirt" {
		t.Fatalf("name not trimmed: %q", basic.Name)
	}
	if basic.DiscountType != structs.DiscountNone {
		t.Fatalf("discount type should default to none, got %q", basic.DiscountType)
	}
	if !basic.DiscountValue.Equal(decimal.Zero) {
		t.Fatalf("discount value should default to zero, got %s", basic.DiscountValue)
	}
}

func TestCommitBlockers(t *testing.T) {
	cs := testComposer(t)

	draft := &structs.Draft{}
	blockers := cs.commitBlockers(draft)
	if len(blockers) != 2 {
		t.Fatalf("empty draft: want 2 blockers, got %+v", blockers)
	}

	draft.SetStep1(structs.DraftBasic{Name: "Shirt", Category: "Tops"})
	found := false
	for _, b := range cs.commitBlockers(draft) {
		if b.Field == "primaryImage" {
			found = true
		}
	}
	if !found {
		t.Fatal("missing primary image should block commit")
	}

	stored, err := cs.media.Store([]byte{0x89, 'P', 'N', 'G'}, "image/png", BucketProducts)
	if err != nil {
		t.Fatal(err)
	}
	draft.Step1.PrimaryImage = stored
	draft.SetStep3(structs.VariantList{{Color: "Red", ColorHex: "#ff0000", SizeStocks: []structs.SizeStock{{Size: "M", Stock: 1}}}})
	if blockers := cs.commitBlockers(draft); len(blockers) != 0 {
		t.Fatalf("complete draft should have no blockers, got %+v", blockers)
	}
}

func TestCommitBlockers_MissingStoredImages(t *testing.T) {
	cs := testComposer(t)

	draft := &structs.Draft{}
	draft.SetStep1(structs.DraftBasic{
		Name:         "Shirt",
		Category:     "Tops",
		PrimaryImage: "/uploads/products/20260101_gone.png",
	})
	draft.SetStep2(structs.DraftDescription{
		SizeGuides: []string{"/uploads/size_guides/20260101_gone.png"},
	})
	draft.SetStep3(structs.VariantList{
		{Color: "Red", ColorHex: "#ff0000", Photo: "/uploads/variants/20260101_gone.png", SizeStocks: []structs.SizeStock{{Size: "M", Stock: 1}}},
	})

	fields := map[string]bool{}
	for _, b := range cs.commitBlockers(draft) {
		fields[b.Field] = true
	}
	for _, want := range []string{"primaryImage", "sizeGuide", "variants.Red"} {
		if !fields[want] {
			t.Fatalf("want blocker on %q, got %v", want, fields)
		}
	}
}

func TestAssembleProduct(t *testing.T) {
	cs := testComposer(t)

	draft := &structs.Draft{SellerID: uuid.New(), DraftID: "current"}
	draft.SetStep1(structs.DraftBasic{
		Name:          "Linen Shirt",
		Category:      "Tops",
		Subcategory:   "Shirts",
		Price:         decimal.RequireFromString("500"),
		DiscountType:  structs.DiscountPercentage,
		DiscountValue: decimal.RequireFromString("10"),
		PrimaryImage:  "/uploads/products/x.png",
	})
	draft.SetStep2(structs.DraftDescription{
		Description:    "Breathable linen.",
		SizeGuides:     []string{"/uploads/size_guides/a.png"},
		Certifications: []string{"/uploads/certifications/b.png"},
		Subitems:       []string{"Spare buttons"},
	})
	draft.SetStep3(structs.VariantList{
		{Color: "Red", ColorHex: "#ff0000", SizeStocks: []structs.SizeStock{{Size: "M", Stock: 3}, {Size: "L", Stock: 1}}},
	})

	product := cs.assembleProduct(draft)

	if product.SellerID != draft.SellerID {
		t.Fatal("seller id not carried")
	}
	if !product.SalePrice.Equal(decimal.RequireFromString("450.00")) {
		t.Fatalf("sale price: %s", product.SalePrice)
	}
	if product.CompareAtPrice == nil || !product.CompareAtPrice.Equal(decimal.RequireFromString("500.00")) {
		t.Fatalf("compare-at: %v", product.CompareAtPrice)
	}
	if product.TotalStock != 4 {
		t.Fatalf("total stock recomputed: %d", product.TotalStock)
	}
	if product.LowStockThreshold != structs.DefaultLowStockThreshold {
		t.Fatalf("low-stock threshold: %d", product.LowStockThreshold)
	}
	if got := product.Attributes.StringList(structs.AttrSizeGuides); len(got) != 1 {
		t.Fatalf("size guides attribute: %v", got)
	}
	if got := product.Attributes.StringList(structs.AttrSubitems); len(got) != 1 || got[0] != "Spare buttons" {
		t.Fatalf("subitems attribute: %v", got)
	}
}

func TestBuildStep3_NormalizesAndKeepsPhotos(t *testing.T) {
	cs := testComposer(t)

	variants, err := cs.buildStep3(structs.Step3Request{
		Variants: []byte(`{"Red":{"M":3,"L":1}}`),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(variants) != 1 || variants[0].ColorHex != "#000000" {
		t.Fatalf("dict shape not normalized: %+v", variants)
	}

	_, err = cs.buildStep3(structs.Step3Request{
		Variants: []byte(`[{"color":"Red","colorHex":"#ff0000","photo":"https://elsewhere.example/x.png","sizeStocks":[{"size":"M","stock":1}]}]`),
	})
	if !lib.IsKind(err, lib.KindInvalidEncoding) {
		t.Fatalf("foreign photo URL: want invalid_encoding, got %v", err)
	}
}
