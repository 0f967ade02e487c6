package common

import "testing"

func TestHasAny(t *testing.T) {
	cases := []struct {
		s    string
		subs []string
		want bool
	}{
		{"Patchy light drizzle", []string{"drizzle"}, true},
		{"Moderate RAIN", []string{"snow", "rain"}, true},
		{"Sunny", []string{"cloud"}, false},
		{"", []string{"rain"}, false},
		{"Clear", nil, false},
	}
	for _, tc := range cases {
		if got := HasAny(tc.s, tc.subs...); got != tc.want {
			t.Errorf("HasAny(%q, %v) = %v, want %v", tc.s, tc.subs, got, tc.want)
		}
	}
}
