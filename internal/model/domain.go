package model

import (
	"errors"
	"strings"
)

// Domain errors.
var (
	// ErrEmptyDomain is returned when the domain is empty.
	ErrEmptyDomain = errors.New("domain cannot be empty")
	// ErrInvalidDomain is returned when the domain format is invalid.
	ErrInvalidDomain = errors.New("invalid domain format")
)

// outputDirSuffix is appended to the domain to form the per-run directory.
const outputDirSuffix = "-recon"

// Domain is an immutable value object representing the scan target.
// It normalizes user input (case, whitespace, URL scheme, trailing dot)
// and derives the deterministic artifact names for one run.
type Domain struct {
	name string
}

// NewDomain creates a Domain from a string.
// The input is normalized: lowercased, trimmed, and stripped of any
// URL scheme, path, or trailing dot. Returns an error if the result
// is empty or not a plausible hostname.
func NewDomain(name string) (Domain, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return Domain{}, ErrEmptyDomain
	}

	if i := strings.Index(normalized, "://"); i != -1 {
		normalized = normalized[i+3:]
	}
	if i := strings.IndexAny(normalized, "/?#"); i != -1 {
		normalized = normalized[:i]
	}
	normalized = strings.TrimSuffix(normalized, ".")

	if !isValidHostname(normalized) {
		return Domain{}, ErrInvalidDomain
	}

	return Domain{name: normalized}, nil
}

// MustNewDomain creates a Domain or panics if invalid.
// Use only for known-valid domains in tests or initialization.
func MustNewDomain(name string) Domain {
	d, err := NewDomain(name)
	if err != nil {
		panic(err)
	}
	return d
}

// isValidHostname reports whether s looks like a DNS hostname:
// dot-separated non-empty labels of letters, digits, and hyphens,
// with no label starting or ending with a hyphen.
func isValidHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, r := range label {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= '0' && r <= '9':
			case r == '-' || r == '_':
			default:
				return false
			}
		}
	}
	return true
}

// String returns the normalized domain name.
func (d Domain) String() string {
	return d.name
}

// IsEmpty reports whether the domain is the zero value.
func (d Domain) IsEmpty() bool {
	return d.name == ""
}

// MarshalText implements encoding.TextMarshaler so the domain
// serializes as its normalized name.
func (d Domain) MarshalText() ([]byte, error) {
	return []byte(d.name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The input goes
// through the same normalization and validation as NewDomain.
func (d *Domain) UnmarshalText(text []byte) error {
	parsed, err := NewDomain(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// OutputDir returns the per-run artifact directory name, e.g.
// "example.com-recon". The directory is relative to the working
// directory unless the caller joins it elsewhere.
func (d Domain) OutputDir() string {
	return d.name + outputDirSuffix
}

// ReportBase returns the base name shared by the report artifacts,
// e.g. "example.com_reporte". The HTML, PDF, and Markdown reports
// append their extension to this base.
func (d Domain) ReportBase() string {
	return d.name + "_reporte"
}
