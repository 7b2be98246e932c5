package msdata

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	scanIDPrefix = "scan="
	fileIDPrefix = "file="
	fileIDSep    = "::"
)

// NativeID is the parsed form of a spectrum native id. Exactly one of
// the two forms is filled: Scan > 0 for a direct spectrum, or
// SourceLabel/LocalID for a collection-scoped one.
type NativeID struct {
	Scan        int
	SourceLabel string
	LocalID     string
}

// FormatScanID returns the native id of a direct spectrum, "scan=<n>".
func FormatScanID(n int) string {
	return scanIDPrefix + strconv.Itoa(n)
}

// FormatFileID returns the native id of a collection-scoped spectrum,
// "file=<label>::<id>". Neither component may contain the separator.
func FormatFileID(sourceLabel, localID string) (string, error) {
	if strings.Contains(sourceLabel, fileIDSep) || strings.Contains(localID, fileIDSep) {
		return "", fmt.Errorf("msdata: id component contains %q: %w", fileIDSep, ErrInvalidNativeID)
	}
	return fileIDPrefix + sourceLabel + fileIDSep + localID, nil
}

// ParseNativeID parses either native id form.
func ParseNativeID(id string) (NativeID, error) {
	if v, ok := strings.CutPrefix(id, scanIDPrefix); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return NativeID{}, fmt.Errorf("msdata: bad scan number %q: %w", v, ErrInvalidNativeID)
		}
		return NativeID{Scan: n}, nil
	}
	if v, ok := strings.CutPrefix(id, fileIDPrefix); ok {
		label, local, found := strings.Cut(v, fileIDSep)
		if !found || label == "" || local == "" || strings.Contains(local, fileIDSep) {
			return NativeID{}, fmt.Errorf("msdata: bad file id %q: %w", id, ErrInvalidNativeID)
		}
		return NativeID{SourceLabel: label, LocalID: local}, nil
	}
	return NativeID{}, fmt.Errorf("msdata: unrecognized id %q: %w", id, ErrInvalidNativeID)
}
