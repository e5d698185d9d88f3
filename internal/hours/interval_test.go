package hours

import (
	"reflect"
	"testing"
)

func TestExpand_Overnight(t *testing.T) {
	got := Expand(26, "Store 26", AllWeek, TimeRange{Open: 660, Close: 240})

	want := []Record{
		{26, "Store 26", Monday, "11:00", "24:00"},
		{26, "Store 26", Tuesday, "00:00", "04:00"},
		{26, "Store 26", Tuesday, "11:00", "24:00"},
		{26, "Store 26", Wednesday, "00:00", "04:00"},
		{26, "Store 26", Wednesday, "11:00", "24:00"},
		{26, "Store 26", Thursday, "00:00", "04:00"},
		{26, "Store 26", Thursday, "11:00", "24:00"},
		{26, "Store 26", Friday, "00:00", "04:00"},
		{26, "Store 26", Friday, "11:00", "24:00"},
		{26, "Store 26", Saturday, "00:00", "04:00"},
		{26, "Store 26", Saturday, "11:00", "24:00"},
		{26, "Store 26", Sunday, "00:00", "04:00"},
		{26, "Store 26", Sunday, "11:00", "24:00"},
		{26, "Store 26", Monday, "00:00", "04:00"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() =\n%v\nwant\n%v", got, want)
	}
}

func TestExpand_SameDay(t *testing.T) {
	got := Expand(49, "Store 49", SetOf(Friday), TimeRange{Open: 660, Close: 1380})
	want := []Record{{49, "Store 49", Friday, "11:00", "23:00"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpand_EqualTimesStaySameDay(t *testing.T) {
	got := Expand(1, "Store 1", SetOf(Monday), TimeRange{Open: 540, Close: 540})
	want := []Record{{1, "Store 1", Monday, "09:00", "09:00"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expand() = %v, want %v", got, want)
	}
}

func TestExpand_Counts(t *testing.T) {
	ranges := []TimeRange{
		{Open: 540, Close: 1020},
		{Open: 1410, Close: 60},
		{Open: 0, Close: 1439},
		{Open: 720, Close: 0},
	}

	for set := WeekdaySet(0); set <= AllWeek; set++ {
		for _, r := range ranges {
			got := Expand(7, "Store 7", set, r)

			want := set.Len()
			if r.Overnight() {
				want *= 2
			}
			if len(got) != want {
				t.Fatalf("Expand(%v, %+v) produced %d records, want %d", set, r, len(got), want)
			}
			if !r.Overnight() {
				continue
			}
			for i := 0; i < len(got); i += 2 {
				first, second := got[i], got[i+1]
				if first.Close != EndOfDay {
					t.Errorf("first half %+v does not end at 24:00", first)
				}
				if second.Weekday != first.Weekday.Next() || second.Open != StartOfDay || second.Close != r.Close.Clock() {
					t.Errorf("second half %+v does not follow %+v", second, first)
				}
			}
		}
	}
}

func TestExpand_EmptySet(t *testing.T) {
	if got := Expand(1, "Store 1", 0, TimeRange{Open: 600, Close: 60}); len(got) != 0 {
		t.Errorf("expected no records, got %v", got)
	}
}
