package frame

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// missingTokens are the cell contents read as missing values.
var missingTokens = map[string]struct{}{
	"":    {},
	"NA":  {},
	"NaN": {},
}

// ReadCSV reads a frame from CSV data. The first record is the header. A
// column is numeric when every non-missing cell parses as a float.
func ReadCSV(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "unable to read csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv has no header")
	}

	header := records[0]
	rows := records[1:]

	cols := make([]*Series, len(header))
	for c, name := range header {
		raw := make([]string, len(rows))
		for r, record := range rows {
			raw[r] = record[c]
		}
		cols[c] = inferSeries(name, raw)
	}

	return New(cols...)
}

func inferSeries(name string, raw []string) *Series {
	numeric := true
	for _, cell := range raw {
		if _, missing := missingTokens[cell]; missing {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false

			break
		}
	}

	values := make([]Value, len(raw))
	for i, cell := range raw {
		if _, missing := missingTokens[cell]; missing {
			values[i] = Missing()

			continue
		}
		if numeric {
			f, _ := strconv.ParseFloat(cell, 64)
			values[i] = Number(f)
		} else {
			values[i] = String(cell)
		}
	}

	return NewSeries(name, values...)
}

// WriteCSV writes the frame as CSV, header first. Missing cells are written
// as empty fields.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.ColumnNames()); err != nil {
		return errors.Wrap(err, "unable to write csv header")
	}

	record := make([]string, len(f.cols))
	for row := 0; row < f.NumRows(); row++ {
		for c, col := range f.cols {
			record[c] = col.At(row).Format()
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "unable to write csv row %d", row)
		}
	}
	cw.Flush()

	return errors.Wrap(cw.Error(), "unable to flush csv")
}

// ReadCSVFile reads a frame from a CSV file on the given filesystem.
func ReadCSVFile(fsys afero.Fs, path string) (*Frame, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	f, err := ReadCSV(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", path)
	}

	return f, nil
}

// WriteCSVFile writes the frame to a CSV file on the given filesystem.
func (f *Frame) WriteCSVFile(fsys afero.Fs, path string) error {
	file, err := fsys.Create(path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", path)
	}
	defer file.Close()

	if err := f.WriteCSV(file); err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}

	return nil
}
