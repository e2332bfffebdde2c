// Package dataset loads OpenCoesione project exports into typed records.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column names used by the report.
const (
	ColPlannedStart  = "DATA_INIZIO_PREV_STUDIO_FATT"
	ColActualStart   = "OC_DATA_INIZIO_PROGETTO"
	ColActualEnd     = "OC_DATA_FINE_PROGETTO_EFFETTIVA"
	ColRegion        = "DEN_REGIONE"
	ColCUP           = "CUP"
	ColLocalCode     = "COD_LOCALE_PROGETTO"
	ColTitle         = "OC_TITOLO_PROGETTO"
	ColPublicFunding = "FINANZ_TOTALE_PUBBLICO"

	ColForeignFunding = "FINANZ_STATO_ESTERO"
	ColPrivateFunding = "FINANZ_PRIVATO"
)

// RequiredColumns must be present in every input header.
var RequiredColumns = []string{ColPlannedStart, ColActualStart, ColActualEnd, ColRegion}

// Project is one funded project row.
type Project struct {
	Line          int
	Code          string
	Title         string
	Region        string
	PlannedStart  Date
	ActualStart   Date
	ActualEnd     Date
	PublicFunding float64
	HasFunding    bool

	// Optional funding sources, zero when the column is absent or blank.
	ForeignFunding float64
	PrivateFunding float64

	Fields map[string]string
}

// Table is the in-memory dataset.
type Table struct {
	Header   []string
	Projects []Project
}

// Options controls how a dataset is read.
type Options struct {
	// Delimiter for text input. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// Sheet to read from workbook input. Empty means the first sheet.
	Sheet  string
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Load reads the dataset at path. Files ending in .xlsx are read as workbooks,
// anything else as delimited text.
func Load(path string, opts Options) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadWorkbook(path, opts)
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("unable to open dataset: %w", err)
	}
	defer file.Close()

	table, err := Read(file, opts)
	if err != nil {
		return nil, err
	}
	opts.logger().Info("dataset loaded", "path", path, "rows", len(table.Projects))
	return table, nil
}

// Read parses delimited text from r.
func Read(r io.Reader, opts Options) (*Table, error) {
	br := bufio.NewReader(r)
	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}
	if strings.TrimSpace(first) == "" {
		return nil, ErrNoHeader
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(first)
	}
	opts.logger().Debug("reading delimited dataset", "delimiter", string(delim))

	reader := csv.NewReader(io.MultiReader(strings.NewReader(first), br))
	reader.Comma = delim
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header: %w", err)
	}
	b, err := newBuilder(header, false)
	if err != nil {
		return nil, err
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read dataset: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if err := b.add(record, line); err != nil {
			return nil, err
		}
	}
	return b.table, nil
}

func loadWorkbook(path string, opts Options) (*Table, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &FileNotFoundError{Path: path, Err: err}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	b, err := newBuilder(rows[0], true)
	if err != nil {
		return nil, err
	}
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if err := b.add(row, i+2); err != nil {
			return nil, err
		}
	}
	opts.logger().Info("dataset loaded", "path", path, "sheet", sheet, "rows", len(b.table.Projects))
	return b.table, nil
}

type builder struct {
	table        *Table
	index        map[string]int
	excelSerials bool
}

func newBuilder(header []string, excelSerials bool) (*builder, error) {
	clean := make([]string, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		clean[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &MissingColumnError{Column: col}
		}
	}
	return &builder{
		table:        &Table{Header: clean},
		index:        index,
		excelSerials: excelSerials,
	}, nil
}

func (b *builder) cell(record []string, col string) string {
	i, ok := b.index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (b *builder) date(record []string, col string, line int) (Date, error) {
	raw := b.cell(record, col)
	parse := ParseDate
	if b.excelSerials {
		parse = parseSerialDate
	}
	d, err := parse(raw)
	if err != nil {
		return Date{}, &DateParseError{Line: line, Column: col, Value: raw}
	}
	return d, nil
}

// Raw workbook numbers use a plain decimal point, so they are tried first.
func (b *builder) amount(record []string, col string) (float64, bool) {
	raw := b.cell(record, col)
	if b.excelSerials {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, true
		}
	}
	return ParseAmount(raw)
}

func (b *builder) add(record []string, line int) error {
	p := Project{
		Line:   line,
		Region: b.cell(record, ColRegion),
		Title:  b.cell(record, ColTitle),
		Fields: make(map[string]string, len(b.table.Header)),
	}
	for i, name := range b.table.Header {
		if i < len(record) {
			p.Fields[name] = record[i]
		}
	}

	p.Code = b.cell(record, ColCUP)
	if p.Code == "" {
		p.Code = b.cell(record, ColLocalCode)
	}

	var err error
	if p.PlannedStart, err = b.date(record, ColPlannedStart, line); err != nil {
		return err
	}
	if p.ActualStart, err = b.date(record, ColActualStart, line); err != nil {
		return err
	}
	if p.ActualEnd, err = b.date(record, ColActualEnd, line); err != nil {
		return err
	}
	p.PublicFunding, p.HasFunding = b.amount(record, ColPublicFunding)
	p.ForeignFunding, _ = b.amount(record, ColForeignFunding)
	p.PrivateFunding, _ = b.amount(record, ColPrivateFunding)

	b.table.Projects = append(b.table.Projects, p)
	return nil
}

// sniffDelimiter picks the most frequent of ',', ';', '\t' outside quotes.
func sniffDelimiter(line string) rune {
	counts := map[rune]int{}
	inQuotes := false
	for _, r := range line {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ',', ';', '\t':
			if !inQuotes {
				counts[r]++
			}
		}
	}
	best := ','
	for _, r := range []rune{';', '\t'} {
		if counts[r] > counts[best] {
			best = r
		}
	}
	return best
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
