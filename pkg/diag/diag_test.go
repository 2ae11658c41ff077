package diag

import "testing"

func TestFormatLocation(t *testing.T) {
	cases := []struct {
		loc  Location
		want string
	}{
		{Location{Path: "main.lua", Line: 3, Column: 5}, "main.lua:3:5"},
		{Location{Path: "main.lua", Line: 3}, "main.lua:3"},
		{Location{Path: " main.lua "}, "main.lua"},
		{Location{Line: 2, Column: 7}, "row 2 and column 7"},
		{Location{Line: 2}, "row 2"},
		{Location{}, ""},
	}
	for _, tc := range cases {
		if got := FormatLocation(tc.loc); got != tc.want {
			t.Fatalf("FormatLocation(%#v) = %q, want %q", tc.loc, got, tc.want)
		}
		if got := tc.loc.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestLocationHelpers(t *testing.T) {
	if !(Location{}).IsZero() {
		t.Fatalf("zero location not reported as zero")
	}
	loc := Location{Line: 1, Column: 2}.WithPath("a.lua")
	if loc.Path != "a.lua" || loc.Line != 1 || loc.Column != 2 || loc.IsZero() {
		t.Fatalf("WithPath = %#v", loc)
	}
}

func TestArgumentError(t *testing.T) {
	err := Argumentf("store", "invalid identifier argument %q", byte('1'))
	if got := err.Error(); got != `store: invalid identifier argument '1'` {
		t.Fatalf("Error() = %q", got)
	}
	bare := &ArgumentError{Message: "null program argument"}
	if got := bare.Error(); got != "null program argument" {
		t.Fatalf("Error() = %q", got)
	}
}
