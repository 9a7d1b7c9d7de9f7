package laps

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"github.com/banshee-data/racegraph/internal/fsutil"
)

// DefaultEncoding is UTF-8; a leading byte-order mark is always tolerated.
const DefaultEncoding = "utf-8"

// LookupEncoding resolves a WHATWG encoding label such as "utf-8" or
// "shift_jis". "utf-8-sig" is accepted as an alias of UTF-8.
func LookupEncoding(label string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(label))
	switch name {
	case "", "utf8", "utf-8-sig", "utf_8_sig":
		name = DefaultEncoding
	case "shift-jis", "shiftjis", "cp932":
		name = "shift_jis"
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, label)
	}
	return enc, nil
}

// ReadCSV reads a delimited export in the given encoding. The first record is
// the header; rows may have differing lengths.
func ReadCSV(r io.Reader, encodingLabel string) (Table, error) {
	enc, err := LookupEncoding(encodingLabel)
	if err != nil {
		return Table{}, err
	}

	decoded := utfbom.SkipOnly(transform.NewReader(r, enc.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrNoHeader
	}
	if err != nil {
		return Table{}, fmt.Errorf("read header: %w", err)
	}

	t := Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read row %d: %w", len(t.Rows)+2, err)
		}
		t.Rows = append(t.Rows, RawRow(rec))
	}
	return t, nil
}

// ReadXLSX reads the first worksheet of a spreadsheet export.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrNoHeader
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, ErrNoHeader
	}

	t := Table{Header: rows[0], Rows: make([]RawRow, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		t.Rows = append(t.Rows, RawRow(row))
	}
	return t, nil
}

// LoadFile reads path from fsys, choosing the reader by file extension.
// The encoding only applies to delimited text files.
func LoadFile(fsys fsutil.FileSystem, path, encodingLabel string) (Table, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f, encodingLabel)
	case ".xlsx":
		return ReadXLSX(f)
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
