package options

import "testing"

func TestLoadFileAppliesSettings(t *testing.T) {
	src := `
mode = schewe-reduced;
cutPoint = true;
CacheMaxState = 12;
w = 0.75;
version = version2;
`
	o, err := LoadFile(src)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if o.Mode != ModeScheweReduced {
		t.Fatalf("expected mode schewe-reduced, got %q", o.Mode)
	}
	if !o.CutPoint {
		t.Fatalf("expected cutPoint true")
	}
	if o.CacheMaxState != 12 {
		t.Fatalf("expected CacheMaxState 12, got %d", o.CacheMaxState)
	}
	if o.Weight != 0.75 {
		t.Fatalf("expected w 0.75, got %v", o.Weight)
	}
	if o.Version != Version2 {
		t.Fatalf("expected version2, got %q", o.Version)
	}
}

func TestLoadFileRejectsUnknownKey(t *testing.T) {
	if _, err := LoadFile("bogus = true;"); err == nil {
		t.Fatalf("expected an error for an unknown options key")
	}
}

func TestMergePrefersOverrideNonZeroFields(t *testing.T) {
	base := Default()
	base.CacheMaxState = 8
	override := Options{CacheMaxState: 20, Eta4: true}
	merged := base.Merge(override)
	if merged.CacheMaxState != 20 {
		t.Fatalf("expected override to win, got %d", merged.CacheMaxState)
	}
	if !merged.Eta4 {
		t.Fatalf("expected eta4 true from override")
	}
	if merged.Mode != base.Mode {
		t.Fatalf("expected unset override field to keep base value, got %q", merged.Mode)
	}
}
