package structs_test

import (
	"encoding/json"
	"testing"

	"tindahan_server/lib"
	"tindahan_server/structs"
)

func mustNormalize(t *testing.T, raw string) structs.VariantList {
	t.Helper()
	list, err := structs.NormalizeVariants([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	return list
}

func TestNormalizeVariants_Canonical(t *testing.T) {
	list := mustNormalize(t, `[
		{"sku":"RB-01","color":"Red","colorHex":"#FF0000","sizeStocks":[{"size":"M","stock":3},{"size":"L","stock":1}]},
		{"color":"Blue","colorHex":"#0000ff","sizeStocks":[{"size":"S","stock":2}]}
	]`)

	if len(list) != 2 {
		t.Fatalf("want 2 variants, got %d", len(list))
	}
	if list[0].ColorHex != "#ff0000" {
		t.Fatalf("hex not lowercased: %q", list[0].ColorHex)
	}
	if list.TotalStock() != 6 {
		t.Fatalf("want total 6, got %d", list.TotalStock())
	}
}

func TestNormalizeVariants_FlatRowsFold(t *testing.T) {
	list := mustNormalize(t, `[
		{"sku":"RB-01","color":"Red","colorHex":"#ff0000","size":"M","stock":3},
		{"color":"Red","colorHex":"#ff0000","size":"L","stock":1},
		{"color":"Blue","colorHex":"#0000ff","size":"S","stock":2}
	]`)

	if len(list) != 2 {
		t.Fatalf("flat rows did not fold: %+v", list)
	}
	if list[0].Color != "Red" || len(list[0].SizeStocks) != 2 {
		t.Fatalf("want Red with 2 cells, got %+v", list[0])
	}
	if list[0].SKU != "RB-01" {
		t.Fatalf("sku lost in fold: %q", list[0].SKU)
	}
}

func TestNormalizeVariants_Dict(t *testing.T) {
	list := mustNormalize(t, `{"Red":{"M":3,"L":1},"Blue":{"S":2}}`)

	colors := list.Colors()
	if len(colors) != 2 || colors[0] != "Red" || colors[1] != "Blue" {
		t.Fatalf("document order lost: %v", colors)
	}
	// The dict shape carries no hex; the placeholder fills in.
	if list[0].ColorHex != "#000000" {
		t.Fatalf("want placeholder hex, got %q", list[0].ColorHex)
	}
	if list.TotalStock() != 6 {
		t.Fatalf("want total 6, got %d", list.TotalStock())
	}
}

func TestNormalizeVariants_StringWrapped(t *testing.T) {
	inner := `[{"color":"Red","colorHex":"#ff0000","sizeStocks":[{"size":"M","stock":3}]}]`
	wrapped, _ := json.Marshal(inner)

	list := mustNormalize(t, string(wrapped))
	if len(list) != 1 || list[0].Color != "Red" {
		t.Fatalf("string-wrapped payload not parsed: %+v", list)
	}

	// Double-wrapped strings are rejected, not recursed into.
	doubled, _ := json.Marshal(string(wrapped))
	if _, err := structs.NormalizeVariants(doubled); !lib.IsKind(err, lib.KindMalformedVariants) {
		t.Fatalf("want malformed_variants, got %v", err)
	}
}

func TestNormalizeVariants_Idempotent(t *testing.T) {
	first := mustNormalize(t, `{"Red":{"M":3,"L":1}}`)

	raw, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	second := mustNormalize(t, string(raw))

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("normalization is not stable:\n%s\n%s", a, b)
	}
}

func TestNormalizeVariants_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		kind lib.ErrorKind
	}{
		{"empty payload", ``, lib.KindMalformedVariants},
		{"unrecognized shape", `42`, lib.KindMalformedVariants},
		{"missing color", `[{"colorHex":"#ff0000","sizeStocks":[{"size":"M","stock":1}]}]`, lib.KindMalformedVariants},
		{"empty size label", `[{"color":"Red","colorHex":"#ff0000","sizeStocks":[{"size":"  ","stock":1}]}]`, lib.KindMalformedVariants},
		{"missing hex", `[{"color":"Red","sizeStocks":[{"size":"M","stock":1}]}]`, lib.KindInvalidColorHex},
		{"bad hex", `[{"color":"Red","colorHex":"red","sizeStocks":[{"size":"M","stock":1}]}]`, lib.KindInvalidColorHex},
		{"short hex", `[{"color":"Red","colorHex":"#f00","sizeStocks":[{"size":"M","stock":1}]}]`, lib.KindInvalidColorHex},
		{"negative stock", `[{"color":"Red","colorHex":"#ff0000","sizeStocks":[{"size":"M","stock":-1}]}]`, lib.KindNegativeStock},
		{"negative low stock", `[{"color":"Red","colorHex":"#ff0000","lowStock":-2,"sizeStocks":[{"size":"M","stock":1}]}]`, lib.KindNegativeStock},
		{"duplicate cell one row", `[{"color":"Red","colorHex":"#ff0000","sizeStocks":[{"size":"M","stock":1},{"size":"M","stock":2}]}]`, lib.KindDuplicateVariantCell},
		{"duplicate cell across rows", `[{"color":"Red","colorHex":"#ff0000","size":"M","stock":1},{"color":"Red","colorHex":"#ff0000","size":"M","stock":2}]`, lib.KindDuplicateVariantCell},
		{"non-numeric dict stock", `{"Red":{"M":"lots"}}`, lib.KindMalformedVariants},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := structs.NormalizeVariants([]byte(tc.raw))
			if !lib.IsKind(err, tc.kind) {
				t.Fatalf("want %s, got %v", tc.kind, err)
			}
		})
	}
}

func TestVariantList_Projections(t *testing.T) {
	list := mustNormalize(t, `[
		{"color":"Red","colorHex":"#ff0000","photo":"/uploads/variants/red.png","sizeStocks":[{"size":"L","stock":0},{"size":"M","stock":3}]},
		{"color":"Blue","colorHex":"#0000ff","sizeStocks":[{"size":"S","stock":0}]}
	]`)

	if hex := list.HexFor("Red"); hex != "#ff0000" {
		t.Fatalf("HexFor: %q", hex)
	}
	if hex := list.HexFor("Green"); hex != "" {
		t.Fatalf("unknown color hex: %q", hex)
	}
	if photo := list.PhotoFor("Red"); photo != "/uploads/variants/red.png" {
		t.Fatalf("PhotoFor: %q", photo)
	}
	if photo := list.PhotoFor("Blue"); photo != "" {
		t.Fatalf("PhotoFor without photo: %q", photo)
	}
	if !list.InStock("Red") {
		t.Fatal("Red should be in stock")
	}
	if list.InStock("Blue") {
		t.Fatal("Blue has no stock")
	}

	sizes := list.SizesFor("Red")
	if len(sizes) != 2 || sizes[0].Size != "M" || sizes[1].Size != "L" {
		t.Fatalf("sizes not in display order: %+v", sizes)
	}
	if !sizes[0].InStock || sizes[1].InStock {
		t.Fatalf("in_stock flags wrong: %+v", sizes)
	}
}

func TestLevelForStock(t *testing.T) {
	cases := []struct {
		stock, threshold int
		want             structs.StockLevel
	}{
		{0, 5, structs.StockOut},
		{-1, 5, structs.StockOut},
		{1, 5, structs.StockLow},
		{5, 5, structs.StockLow},
		{6, 5, structs.StockOK},
	}
	for _, tc := range cases {
		if got := structs.LevelForStock(tc.stock, tc.threshold); got != tc.want {
			t.Fatalf("LevelForStock(%d, %d) = %s, want %s", tc.stock, tc.threshold, got, tc.want)
		}
	}
}
