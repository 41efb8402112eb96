package structs_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"tindahan_server/structs"
)

func TestDraft_StepsReplaceWholesale(t *testing.T) {
	d := &structs.Draft{SellerID: uuid.New(), DraftID: "current"}

	d.SetStep1(structs.DraftBasic{Name: "Linen Shirt", Category: "Tops"})
	d.SetStep2(structs.DraftDescription{Description: "Breathable linen.", Materials: "100% linen"})

	// Re-submitting step 1 must not touch step 2.
	d.SetStep1(structs.DraftBasic{Name: "Linen Shirt v2", Category: "Tops"})

	if d.Step1.Name != "Linen Shirt v2" {
		t.Fatalf("step1 not replaced: %q", d.Step1.Name)
	}
	if d.Step2 == nil || d.Step2.Materials != "100% linen" {
		t.Fatalf("step2 disturbed: %+v", d.Step2)
	}

	// And a fresh step 2 drops fields the previous section carried.
	d.SetStep2(structs.DraftDescription{Description: "Shorter copy."})
	if d.Step2.Materials != "" {
		t.Fatalf("old section leaked into replacement: %q", d.Step2.Materials)
	}
}

func TestDraft_SetStep3RecomputesTotal(t *testing.T) {
	d := &structs.Draft{}
	d.SetStep3(structs.VariantList{
		{Color: "Red", ColorHex: "#ff0000", SizeStocks: []structs.SizeStock{{Size: "M", Stock: 3}, {Size: "L", Stock: 1}}},
		{Color: "Blue", ColorHex: "#0000ff", SizeStocks: []structs.SizeStock{{Size: "S", Stock: 2}}},
	})

	if d.Step3.TotalStock != 6 {
		t.Fatalf("want total 6, got %d", d.Step3.TotalStock)
	}
}

func TestDraft_Ready(t *testing.T) {
	d := &structs.Draft{}
	if d.Ready() {
		t.Fatal("empty draft is not ready")
	}

	d.SetStep1(structs.DraftBasic{Name: "Shirt"})
	if d.Ready() {
		t.Fatal("draft without variants is not ready")
	}

	d.SetStep3(structs.VariantList{{Color: "Red", ColorHex: "#ff0000"}})
	if !d.Ready() {
		t.Fatal("draft with step1 and step3 is ready")
	}
}

func TestDraft_Expired(t *testing.T) {
	d := &structs.Draft{}
	if d.Expired(time.Hour) {
		t.Fatal("zero timestamp never expires")
	}

	d.UpdatedAt = time.Now().Add(-2 * time.Hour)
	if !d.Expired(time.Hour) {
		t.Fatal("stale draft should be expired")
	}

	d.UpdatedAt = time.Now()
	if d.Expired(time.Hour) {
		t.Fatal("fresh draft should not be expired")
	}
}

func TestDraft_StepUpdatesTimestamp(t *testing.T) {
	d := &structs.Draft{}
	d.SetStep1(structs.DraftBasic{Name: "Shirt"})
	if d.UpdatedAt.IsZero() {
		t.Fatal("step submit must stamp updated_at")
	}
}
