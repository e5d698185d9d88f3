package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/storehours/internal/hours"
	"github.com/javiermolinar/storehours/internal/ingest"
)

func TestRenderRecords(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	records := hours.Expand(6, "Store 6", hours.SetOf(hours.Friday), hours.TimeRange{Open: 660, Close: 30})
	out := ansi.Strip(renderRecords(records, 80))

	for _, want := range []string{"STORE", "NAME", "Store 6", "Fri", "Sat", "24:00", "00:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in table:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "\n") + 1; got != 6 {
		t.Errorf("expected 6 table lines (border, header, rule, 2 rows, border), got %d:\n%s", got, out)
	}
}

func TestRenderRecords_TruncatesLongLabels(t *testing.T) {
	label := strings.Repeat("Store with a very long name ", 5)
	records := []hours.Record{{StoreID: 1, Label: label, Weekday: hours.Monday, Open: "09:00", Close: "17:00"}}

	out := ansi.Strip(renderRecords(records, 60))
	if strings.Contains(out, label) {
		t.Error("expected long label to be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Errorf("expected ellipsis in truncated label:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w > 60 {
			t.Errorf("line wider than 60 columns (%d): %q", w, line)
		}
	}
}

func TestLabelWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{width: 80, want: 44},
		{width: 120, want: 84},
		{width: 40, want: 12},
		{width: 0, want: 12},
	}

	for _, tt := range tests {
		if got := labelWidth(tt.width); got != tt.want {
			t.Errorf("labelWidth(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestWriteRecords(t *testing.T) {
	records := []hours.Record{{StoreID: 49, Label: "Store 49", Weekday: hours.Friday, Open: "11:00", Close: "23:00"}}

	var buf bytes.Buffer
	if err := writeRecords(&buf, records, "csv"); err != nil {
		t.Fatalf("writeRecords failed: %v", err)
	}
	if buf.String() != "49,Store 49,4,11:00,23:00\n" {
		t.Errorf("unexpected csv: %q", buf.String())
	}

	if err := writeRecords(&buf, records, "yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPrintSummary(t *testing.T) {
	DisableColor()

	var buf bytes.Buffer
	printSummary(&buf, &ingest.Result{Records: make([]hours.Record, 3), Lines: 2})
	if got := buf.String(); got != "Parsed 3 records from 2 lines\n" {
		t.Errorf("unexpected summary: %q", got)
	}

	buf.Reset()
	printSummary(&buf, &ingest.Result{Lines: 2, Skipped: 1, Errors: []error{hours.ErrFormat}})
	if got := buf.String(); !strings.Contains(got, "(1 skipped, 1 errors)") {
		t.Errorf("expected skip counts, got %q", got)
	}
}
