package currency

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/fxconv/pkg/money"
)

//go:embed meta.csv
var metaCSV string

const expectedColumns = 7

// LoadDirectoryCSV loads a currency directory from a CSV file or, when path
// is empty, from the embedded fixture.
func LoadDirectoryCSV(path string) (money.Directory, error) {
	var r io.Reader

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close() //nolint:errcheck
		r = f
	} else {
		r = strings.NewReader(metaCSV)
	}

	return parseDirectoryCSV(r)
}

// MustDirectory returns the embedded fixture directory, panicking on error.
func MustDirectory() money.Directory {
	dir, err := LoadDirectoryCSV("")
	if err != nil {
		panic(err)
	}
	return dir
}

func parseDirectoryCSV(r io.Reader) (money.Directory, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}

	dir := make(money.Directory, len(records))
	for i, rec := range records {
		if i == 0 {
			if len(rec) < expectedColumns {
				return nil, fmt.Errorf(
					"invalid CSV format: expected at least %d columns, got %d",
					expectedColumns,
					len(rec),
				)
			}
			continue
		}

		// Skip malformed rows
		if len(rec) < expectedColumns {
			continue
		}

		digits, err := strconv.Atoi(rec[4])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid decimal_digits %q: %w", i+1, rec[4], err)
		}
		rounding, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid rounding %q: %w", i+1, rec[5], err)
		}

		code := money.NormalizeCode(rec[0])
		dir[code] = money.Currency{
			Code:          code,
			Name:          rec[1],
			Symbol:        rec[2],
			SymbolNative:  rec[3],
			DecimalDigits: digits,
			Rounding:      rounding,
			NamePlural:    rec[6],
		}
	}
	return dir, dir.Validate()
}
