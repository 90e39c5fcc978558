package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers of the prepared player-season export.
const (
	ColName       = "Name"
	ColPosition   = "Position"
	ColAgeBucket  = "Age Lev"
	ColYear       = "year"
	ColTeam       = "Team"
	ColBaseSalary = "Base Salary"
	ColMinutes    = "Min"
	ColBirthYear  = "Birth Year"
	ColPlayerID   = "Player Id"
)

var ErrMissingColumn = errors.New("missing required column")

var identityColumns = map[string]bool{
	ColName: true, ColPosition: true, ColAgeBucket: true, ColYear: true, ColTeam: true,
	ColBaseSalary: true, ColMinutes: true, ColBirthYear: true, ColPlayerID: true,
}

var requiredColumns = []string{ColName, ColPosition, ColYear, ColBaseSalary, ColMinutes}

// ReadFile reads a .csv or .xlsx export. Spreadsheets are read from their first sheet.
func ReadFile(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return readWorkbook(f)
	case ".csv", "":
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer file.Close()
		return ReadCSV(file)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV parses a CSV stream whose first record is the header.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return ParseRecords(records)
}

// ReadXLSX parses a workbook stream.
func ReadXLSX(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) ([]Row, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return ParseRecords(records)
}

// ParseRecords turns a header row plus data rows into Rows. Columns outside the
// identity set are treated as metrics; blank or non-numeric metric cells are skipped.
func ParseRecords(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, errors.New("no header row")
	}

	index := make(map[string]int)
	for i, h := range records[0] {
		index[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}

	var rows []Row
	for line, rec := range records[1:] {
		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		name := cell(ColName)
		if name == "" {
			continue
		}

		year, err := parseInt(cell(ColYear))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line+2, ColYear, err)
		}
		salary, err := parseNumber(cell(ColBaseSalary))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line+2, ColBaseSalary, err)
		}
		minutes, err := parseNumber(cell(ColMinutes))
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", line+2, ColMinutes, err)
		}
		birth, _ := parseInt(cell(ColBirthYear))

		row := Row{
			Name:       name,
			Position:   cell(ColPosition),
			AgeBucket:  cell(ColAgeBucket),
			Year:       year,
			Team:       cell(ColTeam),
			BaseSalary: salary,
			Minutes:    minutes,
			BirthYear:  birth,
			PlayerID:   cell(ColPlayerID),
			Metrics:    make(map[string]float64),
		}
		if row.AgeBucket == "" && row.BirthYear > 0 && row.Year > 0 {
			row.AgeBucket = BucketForAge(row.Year - row.BirthYear)
		}

		for col, i := range index {
			if identityColumns[col] || col == "" || i >= len(rec) {
				continue
			}
			if v, err := parseNumber(rec[i]); err == nil {
				row.Metrics[col] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a finite number")
	}
	return v, nil
}

// parseInt accepts "2021" as well as the "2021.0" a float-typed export produces.
func parseInt(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
