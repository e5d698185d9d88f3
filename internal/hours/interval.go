package hours

// Record is one canonical opening interval of a store on a weekday.
type Record struct {
	StoreID int
	Label   string
	Weekday Weekday
	Open    string // "HH:MM"
	Close   string // "HH:MM", or EndOfDay
}

// Expand turns a set of days and a time range into canonical records, in
// ascending day order. An overnight range yields two records per day: one
// ending at "24:00" and one on the next day starting at "00:00".
func Expand(storeID int, label string, days WeekdaySet, r TimeRange) []Record {
	open, closing := r.Open.Clock(), r.Close.Clock()

	if !r.Overnight() {
		records := make([]Record, 0, days.Len())
		for _, d := range days.Days() {
			records = append(records, Record{StoreID: storeID, Label: label, Weekday: d, Open: open, Close: closing})
		}
		return records
	}

	records := make([]Record, 0, 2*days.Len())
	for _, d := range days.Days() {
		records = append(records,
			Record{StoreID: storeID, Label: label, Weekday: d, Open: open, Close: EndOfDay},
			Record{StoreID: storeID, Label: label, Weekday: d.Next(), Open: StartOfDay, Close: closing},
		)
	}
	return records
}
