package title

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"valid", "Machine Learning Applications in Healthcare", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", MaxTitleSize+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.text, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestNew_ClonesMetadata(t *testing.T) {
	meta := map[string]string{"supervisor": "Dr. Ahmed"}
	ti, err := New("Smart City Development", meta)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	meta["supervisor"] = "changed"
	if ti.Metadata()["supervisor"] != "Dr. Ahmed" {
		t.Error("metadata not cloned on construction")
	}
}

func TestReconstruct_AllowsBlankText(t *testing.T) {
	ti := Reconstruct("", map[string]string{"year": "2023"})
	if ti.Text() != "" {
		t.Errorf("expected blank text, got %q", ti.Text())
	}
	if ti.Metadata()["year"] != "2023" {
		t.Error("metadata not carried through")
	}
}
