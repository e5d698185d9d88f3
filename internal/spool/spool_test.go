package spool

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/javiermolinar/storehours/internal/hours"
)

func TestWrite(t *testing.T) {
	records := []hours.Record{
		{StoreID: 26, Label: "Store 26", Weekday: hours.Monday, Open: "11:00", Close: "24:00"},
		{StoreID: 7, Label: `Joe's "Deli", Main St`, Weekday: hours.Sunday, Open: "00:00", Close: "04:00"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "26,Store 26,0,11:00,24:00\n" +
		`7,"Joe's ""Deli"", Main St",6,00:00,04:00` + "\n"
	if buf.String() != want {
		t.Errorf("Write() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteFileAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "temp.txt")
	records := []hours.Record{
		{StoreID: 1, Label: "Store 1", Weekday: hours.Friday, Open: "09:30", Close: "17:00"},
		{StoreID: 1, Label: "Store 1", Weekday: hours.Saturday, Open: "00:00", Close: "01:00"},
	}

	if err := WriteFile(path, records); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening spool: %v", err)
	}
	defer func() { _ = f.Close() }()

	var got []hours.Record
	if err := Read(f, func(r hours.Record) error {
		got = append(got, r)
		return nil
	}); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if !reflect.DeepEqual(got, records) {
		t.Errorf("Read() = %v, want %v", got, records)
	}
}

func TestRead_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "short row", input: "1,Store 1,0,09:00\n"},
		{name: "bad id", input: "x,Store 1,0,09:00,10:00\n"},
		{name: "bad weekday", input: "1,Store 1,7,09:00,10:00\n"},
		{name: "bad clock", input: "1,Store 1,0,9am,10:00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Read(strings.NewReader(tt.input), func(hours.Record) error { return nil })
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}
