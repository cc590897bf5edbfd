package domain

import (
	"encoding/json"
	"time"
)

// TimeRecord is a single time-in/time-out pair. TimeOut is nil while the
// record is still open.
type TimeRecord struct {
	TimeIn  time.Time  `json:"time_in"`
	TimeOut *time.Time `json:"time_out,omitempty"`
}

// Closed reports whether the record has been timed out.
func (r TimeRecord) Closed() bool {
	return r.TimeOut != nil
}

// Hours returns the duration of a closed record in fractional hours.
// Open records contribute 0 until closed.
func (r TimeRecord) Hours() float64 {
	if r.TimeOut == nil {
		return 0
	}
	return r.TimeOut.Sub(r.TimeIn).Hours()
}

// TimeLedger holds the ordered time records for one registration entry.
// Invariant: at most one record is open at any time.
type TimeLedger struct {
	Records []TimeRecord
}

// MarshalJSON serializes the ledger as the bare record array, so an entry
// carries its records as a top-level "time_records" list.
func (l TimeLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Records)
}

func (l *TimeLedger) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &l.Records)
}

func (l *TimeLedger) openIndex() int {
	for i := range l.Records {
		if l.Records[i].TimeOut == nil {
			return i
		}
	}
	return -1
}

// OpenRecord appends a new record starting at the given time.
func (l *TimeLedger) OpenRecord(at time.Time) error {
	if l.openIndex() >= 0 {
		return ErrAlreadyOpen
	}
	l.Records = append(l.Records, TimeRecord{TimeIn: at})
	return nil
}

// CloseRecord stamps the open record with the given time-out.
func (l *TimeLedger) CloseRecord(at time.Time) error {
	i := l.openIndex()
	if i < 0 {
		return ErrNoOpenRecord
	}
	if at.Before(l.Records[i].TimeIn) {
		return ErrInvalidOrder
	}
	out := at
	l.Records[i].TimeOut = &out
	return nil
}

// HasOpenRecord reports whether a time-in is awaiting its time-out.
func (l *TimeLedger) HasOpenRecord() bool {
	return l.openIndex() >= 0
}

// HasClosedRecord reports whether at least one completed pair exists.
func (l *TimeLedger) HasClosedRecord() bool {
	for i := range l.Records {
		if l.Records[i].Closed() {
			return true
		}
	}
	return false
}

// TotalHours sums the durations of all closed records.
func (l *TimeLedger) TotalHours() float64 {
	var total float64
	for i := range l.Records {
		total += l.Records[i].Hours()
	}
	return total
}
