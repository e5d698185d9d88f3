// Package spool reads and writes the CSV file used to bulk-load records.
//
// Rows have no header and the columns store_id,name,weekday,open,close.
package spool

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/javiermolinar/storehours/internal/hours"
)

// Columns is the column order of a spool row.
var Columns = []string{"store_id", "name", "weekday", "open", "close"}

// WriteFile writes records to path, creating parent directories as needed.
func WriteFile(path string, records []hours.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating spool directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating spool file: %w", err)
	}

	if err := Write(f, records); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing spool file: %w", err)
	}
	return nil
}

// Write encodes records as spool rows.
func Write(w io.Writer, records []hours.Record) error {
	cw := csv.NewWriter(w)
	row := make([]string, len(Columns))
	for _, r := range records {
		row[0] = strconv.Itoa(r.StoreID)
		row[1] = r.Label
		row[2] = strconv.Itoa(int(r.Weekday))
		row[3] = r.Open
		row[4] = r.Close
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing spool row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing spool: %w", err)
	}
	return nil
}

// Read decodes spool rows, calling fn for each record in file order. It stops
// at the first error returned by fn.
func Read(r io.Reader, fn func(hours.Record) error) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.ReuseRecord = true

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading spool: %w", err)
		}

		rec, err := decode(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return fmt.Errorf("spool line %d: %w", line, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
}

func decode(row []string) (hours.Record, error) {
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return hours.Record{}, fmt.Errorf("store id: %w", err)
	}
	day, err := strconv.Atoi(row[2])
	if err != nil || !hours.Weekday(day).Valid() {
		return hours.Record{}, fmt.Errorf("invalid weekday %q", row[2])
	}
	for _, clock := range row[3:5] {
		if _, err := hours.ParseClock(clock); err != nil {
			return hours.Record{}, err
		}
	}
	return hours.Record{
		StoreID: id,
		Label:   row[1],
		Weekday: hours.Weekday(day),
		Open:    row[3],
		Close:   row[4],
	}, nil
}
