// Package history records conversions in a SQLite database and keeps the
// most recent ones.
package history

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded conversion.
type Entry struct {
	ID        string
	CreatedAt time.Time
	Quantity  string
	Value     float64
	From      string
	To        string
	Result    float64
}

// NewEntry creates an entry stamped with a fresh ID and the current UTC time.
func NewEntry(quantity string, value float64, from, to string, result float64) Entry {
	return Entry{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Quantity:  quantity,
		Value:     value,
		From:      from,
		To:        to,
		Result:    result,
	}
}

// Text renders the entry as "<value> <from> = <result> <to>".
func (e Entry) Text() string {
	return FormatConversion(e.Value, e.From, e.To, e.Result)
}

// FormatConversion renders a conversion with the result kept to six
// significant digits, e.g. "1 mile = 1609.34 m".
func FormatConversion(value float64, from, to string, result float64) string {
	return fmt.Sprintf("%s %s = %.6g %s", strconv.FormatFloat(value, 'g', -1, 64), from, result, to)
}
