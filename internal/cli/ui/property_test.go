package ui

import (
	"strings"
	"testing"

	"github.com/investmateai/imctl/internal/cli/types"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{0, "₪0"},
		{950, "₪950"},
		{1850000, "₪1,850,000"},
		{4900, "₪4,900"},
		{123456789, "₪123,456,789"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestRenderPropertyTreeEmpty(t *testing.T) {
	out := RenderPropertyTree(nil)
	if !strings.Contains(out, "No properties found") {
		t.Errorf("empty tree = %q", out)
	}
}

func TestRenderPropertyTreeGroupsByCity(t *testing.T) {
	out := RenderPropertyTree([]types.Property{
		{ID: "p1", Address: "12 Herzl St", City: "Netanya", Price: 1850000, Rooms: 3.5, PropertyType: "apartment"},
		{ID: "p2", Address: "1 Rothschild Blvd", City: "Tel Aviv", Price: 4200000, Rooms: 4, PropertyType: "penthouse"},
		{ID: "p3", Address: "3 HaYarkon St", City: "Netanya", Price: 1200000, Rooms: 2, PropertyType: "apartment"},
	})

	for _, want := range []string{"Netanya", "Tel Aviv", "12 Herzl St", "₪1,850,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q", want)
		}
	}

	// Cities render in sorted order
	if strings.Index(out, "Netanya") > strings.Index(out, "Tel Aviv") {
		t.Error("cities should be sorted alphabetically")
	}
}

func TestRenderAgentList(t *testing.T) {
	out := RenderAgentList([]types.Agent{
		{ID: "a1", FullName: "Dana Levi", AgencyName: "Levi Realty", Email: "dana@levi.co.il", PhoneNumber: "050-1234567"},
		{ID: "a2", FullName: "Yossi Mizrahi", Email: "yossi@agency.co.il"},
	})

	for _, want := range []string{"Dana Levi", "Levi Realty", "050-1234567", "Yossi Mizrahi"} {
		if !strings.Contains(out, want) {
			t.Errorf("agent list missing %q", want)
		}
	}
}

func TestRenderPropertySummary(t *testing.T) {
	if out := RenderPropertySummary(1); !strings.Contains(out, "property") || strings.Contains(out, "properties") {
		t.Errorf("singular summary = %q", out)
	}
	if out := RenderPropertySummary(5); !strings.Contains(out, "properties") {
		t.Errorf("plural summary = %q", out)
	}
}
