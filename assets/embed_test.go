package assets

import "testing"

func TestCleanAssetPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "transition0.png", want: "transition0.png"},
		{in: "assets/transition1.png", want: "transition1.png"},
		{in: "/home/me/seamless/assets/transition2.png", want: "transition2.png"},
		{in: "/tmp/transition2.png", want: "transition2.png"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := cleanAssetPath(tt.in); got != tt.want {
				t.Fatalf("cleanAssetPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMasksDecode(t *testing.T) {
	masks, err := Masks(MaskCount)
	if err != nil {
		t.Fatalf("Masks: %v", err)
	}
	for i, m := range masks {
		b := m.Bounds()
		if b.Dx() != 256 || b.Dy() != 256 {
			t.Fatalf("mask %d has size %dx%d", i, b.Dx(), b.Dy())
		}
	}
	if _, err := Masks(MaskCount + 1); err == nil {
		t.Fatalf("expected error for a mask that does not exist")
	}
}
