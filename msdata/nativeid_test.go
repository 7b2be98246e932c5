package msdata

import (
	"errors"
	"testing"
)

func TestFormatScanID(t *testing.T) {
	if id := FormatScanID(1); id != "scan=1" {
		t.Errorf("FormatScanID(1): %s, should be scan=1", id)
	}
	if id := FormatScanID(12345); id != "scan=12345" {
		t.Errorf("FormatScanID(12345): %s, should be scan=12345", id)
	}
}

func TestFormatFileID(t *testing.T) {
	id, err := FormatFileID("run1.d", "42")
	if err != nil {
		t.Fatalf("FormatFileID: error return %v", err)
	}
	if id != "file=run1.d::42" {
		t.Errorf("FormatFileID: %s, should be file=run1.d::42", id)
	}

	// The separator may not appear in either component
	if _, err := FormatFileID("bad::label", "1"); !errors.Is(err, ErrInvalidNativeID) {
		t.Errorf("Expected ErrInvalidNativeID, got: %v", err)
	}
	if _, err := FormatFileID("run1.d", "4::2"); !errors.Is(err, ErrInvalidNativeID) {
		t.Errorf("Expected ErrInvalidNativeID, got: %v", err)
	}
}

func TestParseNativeID(t *testing.T) {
	tests := []struct {
		id      string
		want    NativeID
		wantErr bool
	}{
		{id: "scan=1", want: NativeID{Scan: 1}},
		{id: "scan=987", want: NativeID{Scan: 987}},
		{id: "file=run1.d::42", want: NativeID{SourceLabel: "run1.d", LocalID: "42"}},
		{id: "file=sample 2.mzML::s0007", want: NativeID{SourceLabel: "sample 2.mzML", LocalID: "s0007"}},
		{id: "scan=0", wantErr: true},
		{id: "scan=-3", wantErr: true},
		{id: "scan=abc", wantErr: true},
		{id: "file=norun", wantErr: true},
		{id: "file=::42", wantErr: true},
		{id: "file=run1.d::", wantErr: true},
		{id: "file=run1.d::4::2", wantErr: true},
		{id: "index=3", wantErr: true},
		{id: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseNativeID(tc.id)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidNativeID) {
				t.Errorf("ParseNativeID(%q): expected ErrInvalidNativeID, got: %v", tc.id, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNativeID(%q): error return %v", tc.id, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseNativeID(%q): %+v, should be %+v", tc.id, got, tc.want)
		}
	}
}
