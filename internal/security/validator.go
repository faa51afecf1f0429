// filepath: internal/security/validator.go
// Package security holds the default security validator consulted by the
// ingestion pipeline. It checks the extension allow-list and sniffs the
// actual content type, cross-checking it against the declared one.
package security

import (
	"fmt"
	"path/filepath"
	"strings"

	"docvault/internal/models"
	"docvault/internal/services"

	"github.com/gabriel-vasile/mimetype"
)

// Ensure Validator implements services.SecurityValidator
var _ services.SecurityValidator = (*Validator)(nil)

// blockedTypes are content types never accepted regardless of extension.
var blockedTypes = []string{
	"application/x-elf",
	"application/x-mach-binary",
	"application/vnd.microsoft.portable-executable",
	"text/x-shellscript",
}

// Validator inspects staged bytes and declared metadata and returns a
// pass/fail report with ordered failure reasons.
type Validator struct {
	// allowedExtensions is keyed by upper-case extension without the dot.
	// Empty means every extension is accepted.
	allowedExtensions map[string]struct{}
}

// NewValidator creates a validator with the given extension allow-list.
func NewValidator(allowedExtensions []string) *Validator {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		ext = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}
	return &Validator{allowedExtensions: allowed}
}

// Validate produces the security report for one staged file. The report is
// produced once and not revised afterward.
func (v *Validator) Validate(path, originalName, declaredMimeType string, size int64) models.SecurityReport {
	var reasons []string

	if size == 0 {
		reasons = append(reasons, "file is empty")
	}

	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if len(v.allowedExtensions) > 0 {
		if _, ok := v.allowedExtensions[ext]; !ok {
			reasons = append(reasons, fmt.Sprintf("file format %q is not allowed", strings.ToLower(ext)))
		}
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		reasons = append(reasons, fmt.Sprintf("could not inspect file content: %v", err))
	} else {
		for _, blocked := range blockedTypes {
			if detected.Is(blocked) {
				reasons = append(reasons, fmt.Sprintf("executable content type %s is not allowed", detected.String()))
				break
			}
		}

		// A generic declared type carries no information worth checking.
		if declaredMimeType != "" && declaredMimeType != "application/octet-stream" {
			if !contentMatchesDeclared(detected, declaredMimeType) {
				reasons = append(reasons, fmt.Sprintf("declared type %s does not match detected type %s", declaredMimeType, detected.String()))
			}
		}
	}

	return models.SecurityReport{
		Valid:   len(reasons) == 0,
		Reasons: reasons,
	}
}

// contentMatchesDeclared accepts the declared type when it matches the
// detected type or any of its ancestors (e.g. text/plain covers CSV).
func contentMatchesDeclared(detected *mimetype.MIME, declared string) bool {
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(declared) {
			return true
		}
	}
	return false
}
