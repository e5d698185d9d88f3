package integration

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/javiermolinar/storehours/internal/config"
	"github.com/javiermolinar/storehours/internal/db"
	"github.com/javiermolinar/storehours/internal/hours"
	"github.com/javiermolinar/storehours/internal/ingest"
)

const storeHours = `"Store 1","Mon-Sun 11:30 am - 10 pm"
"Store 6","Mon-Thu 11 am - 11 pm / Fri-Sat 11 am - 12:30 am"
"Store 26","Mon-Thu, Sun 11:30 am - 10 pm / Fri-Sat 11:30 am - 11 pm"
"Store 49",Fri 11 am - 11 pm
"Store 12","Sat-Tue 5 pm - 1 am"
"Store 99",closed for renovation

"Store 3","Mon-Fri 9 am - 5 pm / Sat 10:30 am - 2 pm"
`

// openStore creates a fresh repository for each test with automatic cleanup.
// MySQL and PostgreSQL run when their DSN is set in the environment.
func openStore(t *testing.T, driver string) *db.Store {
	t.Helper()

	var dsn string
	switch driver {
	case config.DriverSQLite:
		dsn = filepath.Join(t.TempDir(), "test.db")
	case config.DriverMySQL:
		dsn = os.Getenv("STOREHOURS_TEST_MYSQL_DSN")
	case config.DriverPostgres:
		dsn = os.Getenv("STOREHOURS_TEST_POSTGRES_DSN")
	}
	if dsn == "" {
		t.Skipf("no DSN for %s", driver)
	}

	store, err := db.Open(context.Background(), driver, dsn, "store_hours_it")
	if err != nil {
		t.Fatalf("failed to open %s store: %v", driver, err)
	}
	if err := store.Reset(context.Background()); err != nil {
		t.Fatalf("failed to reset %s store: %v", driver, err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func parseSample(t *testing.T, policy string) *ingest.Result {
	t.Helper()
	res, err := ingest.Parse(context.Background(), strings.NewReader(storeHours), ingest.Options{
		Workers: 3,
		OnError: policy,
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return res
}

var drivers = []string{config.DriverSQLite, config.DriverMySQL, config.DriverPostgres}

func TestParseSample(t *testing.T) {
	res := parseSample(t, config.OnErrorSkip)

	// Stores 1, 6, 26, 49, 12 and 3.
	if got := len(res.Records); got != 7+8+7+1+8+6 {
		t.Errorf("expected 37 records, got %d", got)
	}
	if res.Lines != 7 {
		t.Errorf("expected 7 non-blank lines, got %d", res.Lines)
	}
	if res.Skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", res.Skipped)
	}
	if res.Err() == nil {
		t.Error("expected collected error for the store without hours")
	}

	// Store 12 wraps the week; Sunday night spills into Monday.
	var store12 []hours.Record
	for _, r := range res.Records {
		if r.StoreID == 12 {
			store12 = append(store12, r)
		}
	}
	first, last := store12[0], store12[len(store12)-1]
	if first.Weekday != hours.Monday || first.Open != "17:00" || first.Close != "24:00" {
		t.Errorf("unexpected first Store 12 record: %+v", first)
	}
	if last.Weekday != hours.Monday || last.Open != "00:00" || last.Close != "01:00" {
		t.Errorf("unexpected last Store 12 record: %+v", last)
	}
}

func TestParseAbort(t *testing.T) {
	_, err := ingest.Parse(context.Background(), strings.NewReader(storeHours), ingest.Options{
		Workers: 2,
		OnError: config.OnErrorAbort,
		Logger:  zerolog.Nop(),
	})
	if err == nil {
		t.Fatal("expected abort on the store without hours")
	}
	if !strings.Contains(err.Error(), "line 6") {
		t.Errorf("expected line 6 in error, got %v", err)
	}
}

func TestLoadAndQuery(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			store := openStore(t, driver)
			res := parseSample(t, config.OnErrorSkip)

			n, err := ingest.Load(ctx, store, res.Records, ingest.LoadOptions{Logger: zerolog.Nop()})
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if n != int64(len(res.Records)) {
				t.Errorf("expected %d rows loaded, got %d", len(res.Records), n)
			}

			got, err := store.ListByStore(ctx, 6)
			if err != nil {
				t.Fatalf("ListByStore failed: %v", err)
			}
			if len(got) != 8 {
				t.Fatalf("expected 8 records for store 6, got %d", len(got))
			}
			sat := got[5]
			if sat.Weekday != hours.Saturday || sat.Open != "00:00" || sat.Close != "00:30" {
				t.Errorf("expected Saturday overnight tail, got %+v", sat)
			}
			if got[0].Label != "Store 6" {
				t.Errorf("expected unquoted label, got %q", got[0].Label)
			}

			open, err := store.ListOpenAt(ctx, hours.Sunday, "00:15")
			if err != nil {
				t.Fatalf("ListOpenAt failed: %v", err)
			}
			if ids := storeIDs(open); ids != "6,12" {
				t.Errorf("expected stores 6,12 open Sunday 00:15, got %s", ids)
			}

			open, err = store.ListOpenAt(ctx, hours.Saturday, "13:00")
			if err != nil {
				t.Fatalf("ListOpenAt failed: %v", err)
			}
			if ids := storeIDs(open); ids != "1,3,6,26" {
				t.Errorf("expected stores 1,3,6,26 open Saturday 13:00, got %s", ids)
			}
		})
	}
}

func TestLargeFileLoad(t *testing.T) {
	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			store := openStore(t, driver)
			res := parseSample(t, config.OnErrorSkip)

			// Existing rows are dropped by a large-file load.
			if _, err := store.SaveRecords(ctx, res.Records[:3]); err != nil {
				t.Fatalf("SaveRecords failed: %v", err)
			}

			spoolPath := filepath.Join(t.TempDir(), "spool", "records.csv")
			_, err := ingest.Load(ctx, store, res.Records, ingest.LoadOptions{
				LargeFile: true,
				SpoolPath: spoolPath,
				Logger:    zerolog.Nop(),
			})
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			count, err := store.Count(ctx)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if count != int64(len(res.Records)) {
				t.Errorf("expected %d rows, got %d", len(res.Records), count)
			}

			got, err := store.ListByStore(ctx, 49)
			if err != nil {
				t.Fatalf("ListByStore failed: %v", err)
			}
			want := hours.Record{StoreID: 49, Label: "Store 49", Weekday: hours.Friday, Open: "11:00", Close: "23:00"}
			if len(got) != 1 || got[0] != want {
				t.Errorf("expected %+v, got %+v", want, got)
			}
		})
	}
}

func TestReplaceLoad(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, config.DriverSQLite)
	res := parseSample(t, config.OnErrorSkip)

	for range 2 {
		if _, err := ingest.Load(ctx, store, res.Records, ingest.LoadOptions{Replace: true, Logger: zerolog.Nop()}); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != int64(len(res.Records)) {
		t.Errorf("expected replace to keep %d rows, got %d", len(res.Records), count)
	}
}

// storeIDs lists the distinct store IDs of records in order.
func storeIDs(records []hours.Record) string {
	var ids []string
	seen := map[int]bool{}
	for _, r := range records {
		if seen[r.StoreID] {
			continue
		}
		seen[r.StoreID] = true
		ids = append(ids, strconv.Itoa(r.StoreID))
	}
	return strings.Join(ids, ",")
}
