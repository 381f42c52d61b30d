package broker

import (
	"fmt"
	"time"
)

// Frequency is how often a policy's premium is paid.
type Frequency string

// Payment frequencies.
const (
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	SemiAnnual Frequency = "semi-annual"
	Annual     Frequency = "annual"
)

// SoldFrequencies are the frequencies new policies are written with.
var SoldFrequencies = []Frequency{Monthly, Quarterly, Annual}

// ParseFrequency validates a stored frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case Monthly, Quarterly, SemiAnnual, Annual:
		return f, nil
	default:
		return "", fmt.Errorf("unknown payment frequency %q", s)
	}
}

// PerYear returns the number of payments per year.
func (f Frequency) PerYear() int {
	switch f {
	case Monthly:
		return 12
	case Quarterly:
		return 4
	case SemiAnnual:
		return 2
	default:
		return 1
	}
}

// IntervalDays returns the days between consecutive payments.
func (f Frequency) IntervalDays() int {
	switch f {
	case Monthly:
		return 30
	case Quarterly:
		return 90
	case SemiAnnual:
		return 180
	default:
		return 365
	}
}

// Installments returns how many payments cover the period from start to end.
func (f Frequency) Installments(start, end time.Time) int {
	months := monthsBetween(start, end)
	if months <= 0 {
		return 1
	}
	return (months*f.PerYear() + 11) / 12
}

// Schedule returns the due dates of every instalment of the period, dropping
// dates after now.
func (f Frequency) Schedule(start, end, now time.Time) []time.Time {
	n := f.Installments(start, end)
	dates := make([]time.Time, 0, n)
	for i := range n {
		d := start.AddDate(0, 0, f.IntervalDays()*i)
		if d.After(now) {
			continue
		}
		dates = append(dates, d)
	}
	return dates
}

func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	return months
}
