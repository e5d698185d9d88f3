package db

import (
	"fmt"
	"strings"
)

// dialect captures the SQL differences between the supported backends.
type dialect struct {
	driver string // database/sql driver name
}

var dialects = map[string]dialect{
	"sqlite":   {driver: "sqlite"},
	"mysql":    {driver: "mysql"},
	"postgres": {driver: "postgres"},
}

func lookupDialect(name string) (dialect, error) {
	d, ok := dialects[name]
	if !ok {
		return dialect{}, fmt.Errorf("unknown database driver: %s", name)
	}
	return d, nil
}

// quote quotes an identifier. "open" and "close" are keywords in MySQL.
func (d dialect) quote(ident string) string {
	if d.driver == "mysql" {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

// placeholder returns the n-th (1-based) bind parameter.
func (d dialect) placeholder(n int) string {
	if d.driver == "postgres" {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// clockType is the column type of the open/close columns.
func (d dialect) clockType() string {
	if d.driver == "sqlite" {
		return "TEXT"
	}
	return "TIME"
}

// clockText selects a clock column as text ("HH:MM" or "HH:MM:SS").
func (d dialect) clockText(col string) string {
	switch d.driver {
	case "mysql":
		return "CAST(" + d.quote(col) + " AS CHAR)"
	case "postgres":
		return "CAST(" + d.quote(col) + " AS TEXT)"
	default:
		return d.quote(col)
	}
}

func (d dialect) weekdayType() string {
	switch d.driver {
	case "mysql":
		return "TINYINT"
	case "postgres":
		return "SMALLINT"
	default:
		return "INTEGER"
	}
}

// createTable returns the statements that create the records table and its
// indexes if they do not exist.
func (d dialect) createTable(table string) []string {
	t := d.quote(table)
	cols := fmt.Sprintf(`
			store_id INTEGER NOT NULL,
			name     VARCHAR(128) NOT NULL,
			weekday  %s NOT NULL CHECK (weekday BETWEEN 0 AND 6),
			%s   %s NOT NULL,
			%s  %s NOT NULL`,
		d.weekdayType(), d.quote("open"), d.clockType(), d.quote("close"), d.clockType())

	nameIdx := d.quote(table + "_name_idx")
	idIdx := d.quote(table + "_store_id_idx")

	// MySQL has no CREATE INDEX IF NOT EXISTS; declare the indexes inline.
	if d.driver == "mysql" {
		return []string{fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s,
			INDEX %s (name),
			INDEX %s (store_id)
		)`, t, cols, nameIdx, idIdx)}
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (%s
		)`, t, cols),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s(name)`, nameIdx, t),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s(store_id)`, idIdx, t),
	}
}

func (d dialect) dropTable(table string) string {
	return "DROP TABLE IF EXISTS " + d.quote(table)
}

// insertRows returns a multi-row INSERT for n records.
func (d dialect) insertRows(table string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (store_id, name, weekday, %s, %s) VALUES ",
		d.quote(table), d.quote("open"), d.quote("close"))

	p := 1
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := 0; c < 5; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.placeholder(p))
			p++
		}
		b.WriteString(")")
	}
	return b.String()
}

// loadDataInfile returns MySQL's bulk-load statement for a spool file.
func (d dialect) loadDataInfile(table, path string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(path)
	return fmt.Sprintf(`LOAD DATA LOCAL INFILE '%s'
		INTO TABLE %s
		FIELDS TERMINATED BY ',' OPTIONALLY ENCLOSED BY '"' ESCAPED BY ''
		LINES TERMINATED BY '\n'
		(store_id, name, weekday, %s, %s)`,
		escaped, d.quote(table), d.quote("open"), d.quote("close"))
}
