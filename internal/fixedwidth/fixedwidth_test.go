package fixedwidth

import "testing"

var testLayout = Layout{
	{Name: "ID", Start: 0, End: 11, Kind: KindString, Required: true},
	{Name: "LATITUDE", Start: 12, End: 20, Kind: KindFloat},
	{Name: "LONGITUDE", Start: 21, End: 30, Kind: KindFloat},
}

func TestParse(t *testing.T) {
	text := "GME00102380  48.0458    8.4617\n" +
		"GME00120934  47.9631    8.4902\n"

	rows, skipped := testLayout.Parse(text)
	if skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].String("ID") != "GME00102380" {
		t.Errorf("unexpected ID: %q", rows[0].String("ID"))
	}
	if lat := rows[0].Float("LATITUDE"); lat != 48.0458 {
		t.Errorf("unexpected latitude: %f", lat)
	}
	if lon := rows[1].Float("LONGITUDE"); lon != 8.4902 {
		t.Errorf("unexpected longitude: %f", lon)
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	text := "\n   \nGME00102380  48.0458    8.4617\n\n"
	rows, skipped := testLayout.Parse(text)
	if skipped != 0 {
		t.Errorf("blank lines must not count as skipped, got %d", skipped)
	}
	if len(rows) != 1 {
		t.Errorf("expected 1 row, got %d", len(rows))
	}
}

func TestParseDropsMalformedRows(t *testing.T) {
	text := "GME00102380  48.0458    8.4617\n" +
		"GME00120934  not-num    8.4902\n" +
		"GME00121234  47.1234    8.1234\n"

	rows, skipped := testLayout.Parse(text)
	if skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", skipped)
	}
	if len(rows) != 2 {
		t.Fatalf("a bad row must not abort the parse, got %d rows", len(rows))
	}
	if rows[1].String("ID") != "GME00121234" {
		t.Errorf("unexpected surviving row: %q", rows[1].String("ID"))
	}
}

func TestParseDropsRowsMissingRequiredField(t *testing.T) {
	text := "             48.0458    8.4617\n"
	rows, skipped := testLayout.Parse(text)
	if len(rows) != 0 || skipped != 1 {
		t.Errorf("expected the row with a missing ID to be dropped, got %d rows, %d skipped", len(rows), skipped)
	}
}

func TestParseToleratesShortLines(t *testing.T) {
	rows, skipped := testLayout.Parse("GME00102380  48.0458\n")
	if len(rows) != 0 || skipped != 1 {
		t.Errorf("a short line missing a numeric field must be dropped, got %d rows, %d skipped", len(rows), skipped)
	}

	stringOnly := Layout{{Name: "ID", Start: 0, End: 11, Kind: KindString, Required: true}}
	rows, skipped = stringOnly.Parse("GME001\n")
	if len(rows) != 1 || skipped != 0 {
		t.Errorf("a short line satisfying the layout must survive, got %d rows, %d skipped", len(rows), skipped)
	}
}
