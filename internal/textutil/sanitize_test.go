package textutil

import "testing"

func TestSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello Dino World", "hello_dino_world"},
		{"The Good, the Bad", "the_good_the_bad"},
		{"", "unknown"},
		{"!!!", "unknown"},
		{"Jurassic-Park_1993", "jurassic-park_1993"},
		{"a  b", "a_b"},
	}
	for _, tc := range cases {
		if got := Slug(tc.in); got != tc.want {
			t.Errorf("Slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugN(t *testing.T) {
	if got := SlugN("a very long movie title indeed", 10); got != "a_very_lon" {
		t.Errorf("SlugN = %q", got)
	}
	if got := SlugN("short", 0); got != "short" {
		t.Errorf("SlugN with n=0 = %q", got)
	}
	// Trailing underscore from the cut point is trimmed.
	if got := SlugN("ab cd", 3); got != "ab" {
		t.Errorf("SlugN cut at separator = %q", got)
	}
}
