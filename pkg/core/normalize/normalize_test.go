package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finhealth/pkg/core/config"
	"finhealth/pkg/models"
)

func TestParseAmountCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1234.56", 123456},
		{"$1,234.56", 123456},
		{"(588.74)", -58874},
		{"588.74-", -58874},
		{"-42", -4200},
		{"1.234,56", 123456},   // European decimal comma
		{"₹ 10,00,000", 100000000}, // lakh grouping
		{"1,234", 123400},      // thousands, not decimal
		{"12,34", 1234},        // lone comma with two digits is a decimal
		{"1.234.567", 123456700},
		{"€ 99", 9900},
		{"0.005", 1}, // rounds half away from zero
	}

	for _, tc := range cases {
		got, err := parseAmountCents(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseAmountCentsRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "n/a", "--"} {
		_, err := parseAmountCents(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2024/03/15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"02/01/2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}, // day-first
		{"15.03.2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15 Mar 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 15, 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"03/2024", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)}, // timestamp cell
	}

	for _, tc := range cases {
		got, ok := parseDate(tc.in)
		require.True(t, ok, "input %q", tc.in)
		assert.True(t, tc.want.Equal(got), "input %q: want %v got %v", tc.in, tc.want, got)
	}

	for _, in := range []string{"", "yesterday", "32/13/2024"} {
		_, ok := parseDate(in)
		assert.False(t, ok, "input %q should not parse", in)
	}
}

func TestDetectHeaderSkipsPreamble(t *testing.T) {
	table := [][]string{
		{"Acme Traders Pvt Ltd"},
		{"Statement for FY 2024"},
		{""},
		{"Transaction Date", "Particulars", "Debit"},
		{"2024-01-05", "Office rent", "1200.00"},
	}

	idx, cols, ok := detectHeader(table)
	require.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 0, cols.date)
	assert.Equal(t, 1, cols.desc)
	assert.Equal(t, 2, cols.amount)
}

func TestDetectHeaderDescriptionFallback(t *testing.T) {
	table := [][]string{
		{"Date", "Stuff", "Amount"},
	}

	_, cols, ok := detectHeader(table)
	require.True(t, ok)
	assert.Equal(t, 1, cols.desc, "unlabeled middle column becomes the description")
}

func TestRowsFromTableNoHeader(t *testing.T) {
	_, err := rowsFromTable([][]string{
		{"just", "random", "cells"},
		{"more", "random", "cells"},
	})
	require.Error(t, err)
	assert.Equal(t, models.FaultMalformedInput, models.KindOf(err))
}

func TestNormalizeDelimited(t *testing.T) {
	csvData := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-15,Product sales,\"12,500.00\"",
		"2024-01-20,Office rent,(1,800.00)",
		"2024-02-10,Consulting revenue,9000",
		"not-a-date,Mystery row,50",
	}, "\n")

	n := New(config.DefaultTables())
	st, err := n.Normalize("co-1", "doc-1", []byte(csvData), models.DocTypeDelimited)
	require.NoError(t, err)

	assert.Equal(t, "co-1", st.CompanyID)
	assert.Equal(t, "doc-1", st.DocumentID)
	assert.Equal(t, 4, st.TotalRows)
	assert.Equal(t, 1, st.SkippedRows)
	require.Len(t, st.Items, 3)

	// Every parsed row is accounted for: kept + skipped == total.
	assert.Equal(t, st.TotalRows, len(st.Items)+st.SkippedRows)

	first := st.Items[0]
	assert.Equal(t, int64(1250000), first.AmountCents)
	assert.Equal(t, models.CategoryRevenue, first.Category)
	assert.Equal(t, "doc-1", first.SourceDocumentID)
	assert.False(t, first.LowConfidence)

	rent := st.Items[1]
	assert.Equal(t, int64(-180000), rent.AmountCents)
	assert.Equal(t, models.CategoryOperatingExpense, rent.Category)
}

func TestNormalizeSemicolonDelimited(t *testing.T) {
	data := strings.Join([]string{
		"Date;Description;Amount",
		"2024-01-15;Umsatzerlöse revenue;1.234,56",
	}, "\n")

	n := New(config.DefaultTables())
	st, err := n.Normalize("co-1", "doc-2", []byte(data), models.DocTypeDelimited)
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, int64(123456), st.Items[0].AmountCents)
}

func TestNormalizeWindows1252Payload(t *testing.T) {
	// "Café sales" with an 0xE9 byte, as legacy bank exports produce.
	data := []byte("Date,Description,Amount\n2024-01-15,Caf\xe9 sales,100.00\n")

	n := New(config.DefaultTables())
	st, err := n.Normalize("co-1", "doc-3", []byte(data), models.DocTypeDelimited)
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "Café sales", st.Items[0].Description)
}

func TestNormalizeLowQualityInput(t *testing.T) {
	csvData := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-15,Good row,100",
		"garbage,Bad row,100",
		"garbage,Another bad row,100",
	}, "\n")

	n := New(config.DefaultTables())
	_, err := n.Normalize("co-1", "doc-4", []byte(csvData), models.DocTypeDelimited)
	require.Error(t, err)
	assert.Equal(t, models.FaultLowQualityInput, models.KindOf(err))
}

func TestNormalizeExactlyHalfSkippedIsAccepted(t *testing.T) {
	csvData := strings.Join([]string{
		"Date,Description,Amount",
		"2024-01-15,Good row,100",
		"2024-01-16,Good row,200",
		"garbage,Bad row,100",
		"garbage,Bad row,100",
	}, "\n")

	n := New(config.DefaultTables())
	st, err := n.Normalize("co-1", "doc-5", []byte(csvData), models.DocTypeDelimited)
	require.NoError(t, err)
	assert.Equal(t, 2, st.SkippedRows)
	assert.Len(t, st.Items, 2)
}

func TestNormalizeUnsupportedFormat(t *testing.T) {
	n := New(config.DefaultTables())
	_, err := n.Normalize("co-1", "doc-6", []byte("whatever"), models.DocumentType("spoken-word"))
	require.Error(t, err)
	assert.Equal(t, models.FaultUnsupportedFormat, models.KindOf(err))
}

func TestNormalizeEmptyDocument(t *testing.T) {
	n := New(config.DefaultTables())
	_, err := n.Normalize("co-1", "doc-7", []byte("Date,Description,Amount\n"), models.DocTypeDelimited)
	require.Error(t, err)
	assert.Equal(t, models.FaultMalformedInput, models.KindOf(err))
}

func TestHeuristicExtractor(t *testing.T) {
	text := strings.Join([]string{
		"ACME TRADERS MONTHLY STATEMENT",
		"",
		"2024-01-15  Product sales       $12,500.00",
		"15 Jan 2024  Office rent        (1,800.00)",
		"this line has no structure at all",
		"2024-02-01  Salaries            4,200.00",
	}, "\n")

	rows := NewHeuristicExtractor().Extract(text)
	require.Len(t, rows, 3)
	assert.Equal(t, "2024-01-15", rows[0].Date)
	assert.Equal(t, "Product sales", rows[0].Description)
	assert.Equal(t, "$12,500.00", rows[0].Amount)
	assert.Equal(t, "(1,800.00)", rows[1].Amount)
}

func TestInterpretRowsLowConfidenceFlag(t *testing.T) {
	n := New(config.DefaultTables())
	rows := []RawRow{
		{Date: "2024-01-15", Description: "Product sales", Amount: "1000.00"},
	}

	items, skipped := n.interpretRows(rows, "doc-8", true)
	require.Len(t, items, 1)
	assert.Zero(t, skipped)
	assert.True(t, items[0].LowConfidence)

	items, _ = n.interpretRows(rows, "doc-8", false)
	require.Len(t, items, 1)
	assert.False(t, items[0].LowConfidence)
}

func TestDecodeContentText(t *testing.T) {
	stream := "BT /F1 12 Tf (2024-01-15  Product sales  \\(1,800.00\\)) Tj ET"
	got := decodeContentText(stream)
	assert.Equal(t, "2024-01-15  Product sales  (1,800.00)\n", got)

	plain := "already readable text"
	assert.Equal(t, plain, decodeContentText(plain))
}
