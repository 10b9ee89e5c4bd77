package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateName fuzzes TruncateName with arbitrary identifiers and widths.
func FuzzTruncateName(f *testing.F) {
	seeds := []struct {
		name  string
		width int
	}{
		{"S001", 10},
		{"VERYLONGSTUDENTID", 8},
		{"学生一二三四五六", 5},
		{"", 0},
		{"abc", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.name, seed.width)
	}

	f.Fuzz(func(t *testing.T, name string, width int) {
		got := TruncateName(name, width)
		if !utf8.ValidString(got) {
			t.Errorf("TruncateName(%q, %d) produced invalid UTF-8", name, width)
		}
		if utf8.RuneCountInString(got) > utf8.RuneCountInString(name) {
			t.Errorf("TruncateName(%q, %d) grew the input to %q", name, width, got)
		}
		if width > 3 && utf8.RuneCountInString(name) > width && utf8.RuneCountInString(got) != width {
			t.Errorf("TruncateName(%q, %d) = %q, want exactly %d runes", name, width, got, width)
		}
	})
}
