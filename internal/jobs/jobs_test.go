package jobs

import (
	"strings"
	"testing"
)

func TestParsePlatform(t *testing.T) {
	cases := []struct {
		in   string
		want Platform
	}{
		{"linkedin", PlatformLinkedIn},
		{"LinkedIn", PlatformLinkedIn},
		{"indeed", PlatformIndeed},
		{"Indeed DE", PlatformIndeed},
		{"stepstone", PlatformStepStone},
		{"xing", PlatformXing},
		{"jobboerse", PlatformJobboerse},
		{"Jobbörse", PlatformJobboerse},
		{"all", PlatformAll},
		{"", PlatformAll},
	}
	for _, c := range cases {
		got, err := ParsePlatform(c.in)
		if err != nil {
			t.Fatalf("ParsePlatform(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParsePlatform(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	if _, err := ParsePlatform("monster"); err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}

func TestDedupKeyCaseInsensitive(t *testing.T) {
	a := Posting{Title: "Data Scientist", Company: "SAP"}
	b := Posting{Title: "data scientist", Company: "sap"}
	if a.DedupKey() != b.DedupKey() {
		t.Fatalf("keys differ: %q vs %q", a.DedupKey(), b.DedupKey())
	}
}

func TestNewIDShape(t *testing.T) {
	id := NewID("li")
	parts := strings.SplitN(id, "-", 3)
	if len(parts) != 3 || parts[0] != "li" {
		t.Fatalf("unexpected id shape: %q", id)
	}
	if len(parts[2]) != 9 {
		t.Fatalf("expected 9-char suffix, got %q", parts[2])
	}
	if NewID("li") == id && NewID("li") == id {
		t.Fatalf("ids should not repeat")
	}
}
