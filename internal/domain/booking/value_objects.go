package booking

import (
	"fmt"
	"strings"
	"time"
)

// StayPeriod is a half-open date interval [checkIn, checkOut).
// Both dates are truncated to midnight UTC.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	in := toDate(checkIn)
	out := toDate(checkOut)
	if !out.After(in) {
		return StayPeriod{}, ErrInvalidDateRange
	}
	return StayPeriod{checkIn: in, checkOut: out}, nil
}

func toDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s StayPeriod) CheckIn() time.Time  { return s.checkIn }
func (s StayPeriod) CheckOut() time.Time { return s.checkOut }

// Nights is the number of nights charged, never less than one.
func (s StayPeriod) Nights() int {
	nights := int(s.checkOut.Sub(s.checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Overlaps reports whether two stays conflict under the half-open rule.
// Touching boundaries (one check-out equal to the other check-in) do not
// conflict.
func (s StayPeriod) Overlaps(other StayPeriod) bool {
	return s.checkIn.Before(other.checkOut) && s.checkOut.After(other.checkIn)
}

func (s StayPeriod) String() string {
	return fmt.Sprintf("[%s,%s)", s.checkIn.Format("2006-01-02"), s.checkOut.Format("2006-01-02"))
}

// Money is an amount in the smallest currency unit. Integer arithmetic
// keeps the fee and tax percentages exact.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }
func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub floors at zero; a discount can never push a total negative.
func (m Money) Sub(other Money) Money {
	remaining := m.cents - other.cents
	if remaining < 0 {
		remaining = 0
	}
	return Money{cents: remaining}
}

func (m Money) MulNights(nights int) Money {
	return Money{cents: m.cents * int64(nights)}
}

// Percent computes n% of the amount using integer division.
func (m Money) Percent(n int64) Money {
	return Money{cents: m.cents * n / 100}
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string { return n.value }
func (n Note) IsEmpty() bool  { return n.value == "" }
