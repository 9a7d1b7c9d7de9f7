// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the lap export fixtures used by the loader,
// orchestrator and command tests.
package testutil

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// LapHeader is the header written by the timing software, including the
// stray whitespace and tab characters its exports carry.
var LapHeader = []string{" ラップ\t", "タイム ", "\t順位", "ベスト"}

// LapRows is a small race: a start marker row, laps out of order and one
// unparsable time.
var LapRows = [][]string{
	{"スタート", "-", "-", ""},
	{"2", "1:21.902", "2", ""},
	{"1", "1:23.456", "3", ""},
	{"3", "abc", "1", ""},
	{"4", "1:20.775", "1", "*"},
}

// BOM is the UTF-8 byte-order mark Excel and the timing software prepend.
const BOM = "\ufeff"

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// EncodeCSV renders header and rows as CSV text.
func EncodeCSV(t *testing.T, header []string, rows [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	AssertNoError(t, w.Write(header))
	AssertNoError(t, w.WriteAll(rows))
	return buf.Bytes()
}

// EncodeShiftJIS converts UTF-8 text to Shift-JIS.
func EncodeShiftJIS(t *testing.T, utf8 []byte) []byte {
	t.Helper()
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), utf8)
	AssertNoError(t, err)
	return out
}

// WriteFile writes data under dir, creating dir if needed, and returns the path.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	AssertNoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	AssertNoError(t, os.WriteFile(path, data, 0644))
	return path
}

// WriteLapCSV writes the standard fixture, BOM included, and returns its path.
func WriteLapCSV(t *testing.T, dir, name string) string {
	t.Helper()
	data := append([]byte(BOM), EncodeCSV(t, LapHeader, LapRows)...)
	return WriteFile(t, dir, name, data)
}
