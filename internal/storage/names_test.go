// filepath: internal/storage/names_test.go
package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain Name", "report.pdf", "report.pdf"},
		{"Spaces Replaced", "site survey 2024.pdf", "site_survey_2024.pdf"},
		{"Unix Traversal Stripped", "../../etc/passwd", "passwd"},
		{"Windows Traversal Stripped", "..\\..\\windows\\evil.exe", "evil.exe"},
		{"Leading Dots Stripped", ".hidden.txt", "hidden.txt"},
		{"Only Dots", "....", "file"},
		{"Empty Name", "", "file"},
		{"Slash Only", "/", "_"},
		{"Hostile Runes Replaced", "a<b>|c?.txt", "a_b__c_.txt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeName(tc.input))
		})
	}
}

func TestSanitizeNameLengthBound(t *testing.T) {
	long := strings.Repeat("a", 300) + ".pdf"
	got := SanitizeName(long)

	assert.LessOrEqual(t, len(got), maxNameLength)
	assert.True(t, strings.HasSuffix(got, ".pdf"), "extension should survive truncation")
}

func TestTempName(t *testing.T) {
	a := TempName("scan.pdf")
	b := TempName("scan.pdf")

	assert.True(t, strings.HasPrefix(a, "stage-"))
	assert.True(t, strings.HasSuffix(a, "_scan.pdf"))
	assert.NotEqual(t, a, b, "two temp names for the same original must differ")
}

func TestFinalName(t *testing.T) {
	a := FinalName("scan.pdf")
	b := FinalName("scan.pdf")

	assert.True(t, strings.HasSuffix(a, "_scan.pdf"))
	assert.NotEqual(t, a, b)
	assert.False(t, strings.Contains(a, string(filepath.Separator)))
}

func TestDisambiguateName(t *testing.T) {
	name := "01J0ABCDEF_scan.pdf"
	got := DisambiguateName(name)

	assert.NotEqual(t, name, got)
	assert.Equal(t, ".pdf", filepath.Ext(got))
	assert.True(t, strings.HasPrefix(got, "01J0ABCDEF_scan_"))

	// Two disambiguations of the same name must not collide with each other.
	assert.NotEqual(t, got, DisambiguateName(name))
}
