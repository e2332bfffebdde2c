package dataset

import (
	"encoding/csv"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const header = "CUP;OC_TITOLO_PROGETTO;DEN_REGIONE;DATA_INIZIO_PREV_STUDIO_FATT;OC_DATA_INIZIO_PROGETTO;OC_DATA_FINE_PROGETTO_EFFETTIVA;FINANZ_TOTALE_PUBBLICO\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_SemicolonExport(t *testing.T) {
	path := writeFile(t, "progetti.csv", header+
		"J11B;Restauro Duomo;LOMBARDIA;20140310;20140601;20161231;1.250.000,50\n"+
		"J22C;Museo civico;\"TRENTINO-ALTO ADIGE/SÜDTIROL\";2018-01-15;2020-02-01;;300000\n")

	table, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, table.Projects, 2)

	first := table.Projects[0]
	assert.Equal(t, "J11B", first.Code)
	assert.Equal(t, "Restauro Duomo", first.Title)
	assert.Equal(t, "LOMBARDIA", first.Region)
	assert.Equal(t, NewDate(2014, time.March, 10), first.PlannedStart)
	assert.Equal(t, 2014, first.ActualStart.Year())
	assert.True(t, first.HasFunding)
	assert.InDelta(t, 1250000.50, first.PublicFunding, 0.001)
	assert.Equal(t, 2, first.Line)

	second := table.Projects[1]
	assert.Equal(t, "TRENTINO-ALTO ADIGE/SÜDTIROL", second.Region)
	assert.False(t, second.ActualEnd.Valid)
	assert.Equal(t, 2020, second.ActualStart.Year())
	assert.Equal(t, "Museo civico", second.Fields[ColTitle])
}

func TestLoad_FundingSources(t *testing.T) {
	path := writeFile(t, "progetti.csv",
		"DEN_REGIONE;DATA_INIZIO_PREV_STUDIO_FATT;OC_DATA_INIZIO_PROGETTO;OC_DATA_FINE_PROGETTO_EFFETTIVA;FINANZ_TOTALE_PUBBLICO;FINANZ_STATO_ESTERO;FINANZ_PRIVATO\n"+
			"PUGLIA;20170101;20170301;;1.500.000;250.000,25;\n")

	table, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, table.Projects, 1)

	p := table.Projects[0]
	assert.True(t, p.HasFunding)
	assert.InDelta(t, 1500000, p.PublicFunding, 0.001)
	assert.InDelta(t, 250000.25, p.ForeignFunding, 0.001)
	assert.Zero(t, p.PrivateFunding)
}

func TestLoad_CommaWithBOM(t *testing.T) {
	path := writeFile(t, "progetti.csv", "\ufeffDEN_REGIONE,DATA_INIZIO_PREV_STUDIO_FATT,OC_DATA_INIZIO_PROGETTO,OC_DATA_FINE_PROGETTO_EFFETTIVA,COD_LOCALE_PROGETTO\n"+
		"Lazio,2019-05-01,2019-06-01,2021-06-01,1MISE123\n")

	table, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, table.Projects, 1)
	assert.Equal(t, ColRegion, table.Header[0])
	assert.Equal(t, "1MISE123", table.Projects[0].Code)
	assert.False(t, table.Projects[0].HasFunding)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "assente.csv"), Options{})

	var notFound *FileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeFile(t, "progetti.csv", "DEN_REGIONE;OC_DATA_INIZIO_PROGETTO;OC_DATA_FINE_PROGETTO_EFFETTIVA\nLazio;2019-06-01;\n")

	_, err := Load(path, Options{})

	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ColPlannedStart, missing.Column)
}

func TestLoad_DateParseError(t *testing.T) {
	path := writeFile(t, "progetti.csv", header+
		"J11B;Restauro;LOMBARDIA;20140310;20140601;;\n"+
		"J12B;Biblioteca;VENETO;31 febbraio;20150601;;\n")

	_, err := Load(path, Options{})

	var dateErr *DateParseError
	require.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 3, dateErr.Line)
	assert.Equal(t, ColPlannedStart, dateErr.Column)
	assert.Equal(t, "31 febbraio", dateErr.Value)
}

func TestRead_FieldCountMismatch(t *testing.T) {
	_, err := Read(strings.NewReader(header+"J11B;Restauro;LOMBARDIA\n"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, csv.ErrFieldCount)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestRead_ExplicitDelimiter(t *testing.T) {
	in := "DEN_REGIONE|DATA_INIZIO_PREV_STUDIO_FATT|OC_DATA_INIZIO_PROGETTO|OC_DATA_FINE_PROGETTO_EFFETTIVA\nPuglia|2016-01-01|2017-01-01|\n"

	table, err := Read(strings.NewReader(in), Options{Delimiter: '|'})
	require.NoError(t, err)
	require.Len(t, table.Projects, 1)
	assert.Equal(t, "Puglia", table.Projects[0].Region)
}

func TestLoad_Workbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Progetti"
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	rows := [][]interface{}{
		{ColRegion, ColPlannedStart, ColActualStart, ColActualEnd, ColPublicFunding, ColForeignFunding, ColPrivateFunding},
		{"Sicilia", "2015-01-10", 42064, "", 1000.5, 250, ""},
		{"", "", "", "", ""},
		{"Sardegna", "20200101", "2021-03-04", "2023-03-04", ""},
		{"Lazio", 45000.25, 45000.75, "", 2500.125, "", 10},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "progetti.xlsx")
	require.NoError(t, f.SaveAs(path))

	table, err := Load(path, Options{})
	require.NoError(t, err)
	require.Len(t, table.Projects, 3)

	assert.Equal(t, "Sicilia", table.Projects[0].Region)
	assert.Equal(t, "2015-03-01", table.Projects[0].ActualStart.String())
	assert.InDelta(t, 1000.5, table.Projects[0].PublicFunding, 0.001)
	assert.InDelta(t, 250, table.Projects[0].ForeignFunding, 0.001)
	assert.Zero(t, table.Projects[0].PrivateFunding)
	assert.Equal(t, 4, table.Projects[1].Line)
	assert.Equal(t, 2020, table.Projects[1].PlannedStart.Year())

	lazio := table.Projects[2]
	assert.Equal(t, 5, lazio.Line)
	assert.Equal(t, "2023-03-15", lazio.PlannedStart.String())
	assert.Equal(t, "2023-03-15", lazio.ActualStart.String())
	assert.InDelta(t, 2500.125, lazio.PublicFunding, 0.0001)
	assert.InDelta(t, 10, lazio.PrivateFunding, 0.001)
}

func TestParseSerialDate(t *testing.T) {
	d, err := parseSerialDate("20200101")
	require.NoError(t, err)
	assert.Equal(t, "2020-01-01", d.String())

	d, err = parseSerialDate("45000.25")
	require.NoError(t, err)
	assert.Equal(t, "2023-03-15", d.String())

	d, err = parseSerialDate("2021-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2021-03-04", d.String())

	d, err = parseSerialDate("")
	require.NoError(t, err)
	assert.False(t, d.Valid)
}

func TestLoad_WorkbookNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "assente.xlsx"), Options{})

	var notFound *FileNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, ';', sniffDelimiter("a;b;c\n"))
	assert.Equal(t, ',', sniffDelimiter("a,b,\"c;d;e;f\"\n"))
	assert.Equal(t, '\t', sniffDelimiter("a\tb\tc\n"))
	assert.Equal(t, ',', sniffDelimiter("solo\n"))
}
