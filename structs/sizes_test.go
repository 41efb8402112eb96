package structs_test

import (
	"testing"

	"tindahan_server/structs"
)

func TestCompareSizeLabels_Ordering(t *testing.T) {
	// Each label must sort strictly before the next one.
	ordered := []string{
		"XS", "S", "M", "L", "XL", "XXL",
		"US 6", "US 6.5", "US 10",
		"EU 38", "EU 40",
		"Ring 5", "Ring 7",
		"Waist 30", "Waist 32",
		"Petite", "Tall",
		"One Size",
	}
	for i := 0; i < len(ordered)-1; i++ {
		a, b := ordered[i], ordered[i+1]
		if structs.CompareSizeLabels(a, b) >= 0 {
			t.Fatalf("%q should sort before %q", a, b)
		}
		if structs.CompareSizeLabels(b, a) <= 0 {
			t.Fatalf("%q should sort after %q", b, a)
		}
	}
}

func TestCompareSizeLabels_CaseAndSpacing(t *testing.T) {
	if structs.CompareSizeLabels("xs", "XS") != 0 {
		t.Fatal("clothing sizes should compare case-insensitively")
	}
	if structs.CompareSizeLabels("us 8", "US 8") != 0 {
		t.Fatal("numeric families should compare case-insensitively")
	}
	if structs.CompareSizeLabels("FREE SIZE", "XXL") <= 0 {
		t.Fatal("free-size labels sort last")
	}
}

func TestSortSizeInfos(t *testing.T) {
	infos := []structs.SizeInfo{
		{Size: "One Size"},
		{Size: "L"},
		{Size: "US 6.5"},
		{Size: "XS"},
		{Size: "US 6"},
	}
	structs.SortSizeInfos(infos)

	want := []string{"XS", "L", "US 6", "US 6.5", "One Size"}
	for i, w := range want {
		if infos[i].Size != w {
			t.Fatalf("position %d: want %q, got %q", i, w, infos[i].Size)
		}
	}
}
