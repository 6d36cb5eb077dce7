// Package temporal implements the five Cypher temporal value kinds plus
// Duration: component fields, canonical ISO-8601 String() form, and
// regex-based component parsing, across the full Date/LocalTime/Time/
// LocalDateTime/DateTime family.
package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which of the five temporal value kinds a Value holds.
type Kind int

const (
	KindDate Kind = iota
	KindLocalTime
	KindTime
	KindLocalDateTime
	KindDateTime
	KindDuration
)

// Value is an immutable tagged temporal scalar. Only the fields relevant to
// Kind are meaningful; zero fields elsewhere are harmless.
type Value struct {
	Kind Kind

	Year, Month, Day int

	Hour, Minute, Second, Nanosecond int

	// OffsetMinutes and Zone apply to Time and DateTime.
	OffsetMinutes int
	Zone string // IANA zone name, optional

	// Duration components (normalized: DurNanos in [0, 1e9)).
	DurMonths, DurDays int64
	DurSeconds, DurNanos int64
}

var stockholm *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		loc = time.UTC
	}
	stockholm = loc
}

// NewDate constructs a Date value.
func NewDate(y, m, d int) Value { return Value{Kind: KindDate, Year: y, Month: m, Day: d} }

// NewLocalTime constructs a LocalTime value.
func NewLocalTime(h, mi, s, ns int) Value {
	return Value{Kind: KindLocalTime, Hour: h, Minute: mi, Second: s, Nanosecond: ns}
}

// NewTime constructs a Time value (LocalTime + offset, optional zone).
func NewTime(h, mi, s, ns, offsetMin int, zone string) Value {
	return Value{Kind: KindTime, Hour: h, Minute: mi, Second: s, Nanosecond: ns, OffsetMinutes: offsetMin, Zone: zone}
}

// NewLocalDateTime constructs a LocalDateTime value.
func NewLocalDateTime(y, mo, d, h, mi, s, ns int) Value {
	return Value{Kind: KindLocalDateTime, Year: y, Month: mo, Day: d, Hour: h, Minute: mi, Second: s, Nanosecond: ns}
}

// NewDateTime constructs a DateTime value.
func NewDateTime(y, mo, d, h, mi, s, ns, offsetMin int, zone string) Value {
	return Value{Kind: KindDateTime, Year: y, Month: mo, Day: d, Hour: h, Minute: mi, Second: s, Nanosecond: ns, OffsetMinutes: offsetMin, Zone: zone}
}

// NewDuration constructs a normalized Duration so Nanos is in [0, 1e9).
func NewDuration(months, days, seconds, nanos int64) Value {
	for nanos < 0 {
		nanos += 1_000_000_000
		seconds--
	}
	for nanos >= 1_000_000_000 {
		nanos -= 1_000_000_000
		seconds++
	}
	return Value{Kind: KindDuration, DurMonths: months, DurDays: days, DurSeconds: seconds, DurNanos: nanos}
}

// goTime renders the value as a time.Time in its own zone/offset (UTC for
// Date/LocalTime/LocalDateTime, which carry no offset).
func (v Value) goTime() time.Time {
	loc := time.UTC
	switch v.Kind {
	case KindDate:
		return time.Date(v.Year, time.Month(v.Month), v.Day, 0, 0, 0, 0, loc)
	case KindLocalTime:
		return time.Date(1970, 1, 1, v.Hour, v.Minute, v.Second, v.Nanosecond, loc)
	case KindTime:
		l := v.resolveLocation()
		return time.Date(1970, 1, 1, v.Hour, v.Minute, v.Second, v.Nanosecond, l)
	case KindLocalDateTime:
		return time.Date(v.Year, time.Month(v.Month), v.Day, v.Hour, v.Minute, v.Second, v.Nanosecond, loc)
	case KindDateTime:
		l := v.resolveLocation()
		return time.Date(v.Year, time.Month(v.Month), v.Day, v.Hour, v.Minute, v.Second, v.Nanosecond, l)
	}
	return time.Time{}
}

func (v Value) resolveLocation() *time.Location {
	if v.Zone == "Europe/Stockholm" {
		return stockholm
	}
	return time.FixedZone(v.Zone, v.OffsetMinutes*60)
}

// UTC normalizes a zoned Time/DateTime value into UTC-comparable form
// (comparisons go through a UTC normalization for zoned kinds).
func (v Value) UTC() time.Time {
	return v.goTime().UTC()
}

// Compare orders two temporal values of the same Kind. Cross-kind comparison
// falls back to string-form comparison (handled by the caller, value.Compare).
func Compare(a, b Value) int {
	if a.Kind == KindDuration && b.Kind == KindDuration {
		af := a.approxSeconds()
		bf := b.approxSeconds()
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	at, bt := a.UTC(), b.UTC()
	switch {
	case at.Before(bt):
		return -1
	case at.After(bt):
		return 1
	default:
		return 0
	}
}

func (v Value) approxSeconds() float64 {
	return float64(v.DurMonths)*30.4375*86400 + float64(v.DurDays)*86400 + float64(v.DurSeconds) + float64(v.DurNanos)/1e9
}

// String renders the canonical ISO-8601 form, which also round-trips through
// Parse for the matching Kind.
func (v Value) String() string {
	switch v.Kind {
	case KindDate:
		return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
	case KindLocalTime:
		return formatClock(v.Hour, v.Minute, v.Second, v.Nanosecond)
	case KindTime:
		return formatClock(v.Hour, v.Minute, v.Second, v.Nanosecond) + formatOffset(v.OffsetMinutes)
	case KindLocalDateTime:
		return fmt.Sprintf("%04d-%02d-%02dT%s", v.Year, v.Month, v.Day, formatClock(v.Hour, v.Minute, v.Second, v.Nanosecond))
	case KindDateTime:
		s := fmt.Sprintf("%04d-%02d-%02dT%s%s", v.Year, v.Month, v.Day, formatClock(v.Hour, v.Minute, v.Second, v.Nanosecond), formatOffset(v.OffsetMinutes))
		if v.Zone != "" {
			s += "[" + v.Zone + "]"
		}
		return s
	case KindDuration:
		return v.durationString()
	}
	return ""
}

func formatClock(h, m, s, ns int) string {
	if ns > 0 {
		frac := fmt.Sprintf("%09d", ns)
		frac = strings.TrimRight(frac, "0")
		return fmt.Sprintf("%02d:%02d:%02d.%s", h, m, s, frac)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatOffset(min int) string {
	if min == 0 {
		return "Z"
	}
	sign := "+"
	if min < 0 {
		sign = "-"
		min = -min
	}
	return fmt.Sprintf("%s%02d:%02d", sign, min/60, min%60)
}

func (v Value) durationString() string {
	var b strings.Builder
	b.WriteString("P")
	years := v.DurMonths / 12
	months := v.DurMonths % 12
	if years != 0 {
		fmt.Fprintf(&b, "%dY", years)
	}
	if months != 0 {
		fmt.Fprintf(&b, "%dM", months)
	}
	if v.DurDays != 0 {
		fmt.Fprintf(&b, "%dD", v.DurDays)
	}
	hasTime := v.DurSeconds != 0 || v.DurNanos != 0
	if hasTime {
		b.WriteString("T")
		secs := v.DurSeconds
		hours := secs / 3600
		secs %= 3600
		mins := secs / 60
		secs %= 60
		if hours != 0 {
			fmt.Fprintf(&b, "%dH", hours)
		}
		if mins != 0 {
			fmt.Fprintf(&b, "%dM", mins)
		}
		if secs != 0 || v.DurNanos != 0 {
			if v.DurNanos != 0 {
				frac := strings.TrimRight(fmt.Sprintf("%09d", v.DurNanos), "0")
				fmt.Fprintf(&b, "%d.%sS", secs, frac)
			} else {
				fmt.Fprintf(&b, "%dS", secs)
			}
		}
	}
	if b.Len() == 1 {
		return "PT0S"
	}
	return b.String()
}

var (
	dateRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timeRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?(Z|[+-]\d{2}:?\d{2})?$`)
	dateTimeRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?(Z|[+-]\d{2}:?\d{2})?(?:\[([\w/]+)\])?$`)
	durDateRe = regexp.MustCompile(`(\d+)([YMD])`)
	durTimeRe = regexp.MustCompile(`(\d+(?:\.\d+)?)([HMS])`)
)

// ParseDate parses the canonical "YYYY-MM-DD" form.
func ParseDate(s string) (Value, bool) {
	m := dateRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Value{}, false
	}
	y, _ := strconv.Atoi(m[1])
	mo, _ := strconv.Atoi(m[2])
	d, _ := strconv.Atoi(m[3])
	return NewDate(y, mo, d), true
}

// ParseLocalTime parses "HH:MM:SS[.fraction]" with no offset.
func ParseLocalTime(s string) (Value, bool) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[5] != "" {
		return Value{}, false
	}
	h, mi, sec, ns := parseClockMatch(m)
	return NewLocalTime(h, mi, sec, ns), true
}

// ParseTime parses "HH:MM:SS[.fraction](Z|+HH:MM)".
func ParseTime(s string) (Value, bool) {
	m := timeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[5] == "" {
		return Value{}, false
	}
	h, mi, sec, ns := parseClockMatch(m)
	off := parseOffset(m[5])
	return NewTime(h, mi, sec, ns, off, ""), true
}

// ParseLocalDateTime parses "YYYY-MM-DDTHH:MM:SS[.fraction]" with no offset.
func ParseLocalDateTime(s string) (Value, bool) {
	m := dateTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil || m[8] != "" {
		return Value{}, false
	}
	y, mo, d, h, mi, sec, ns := parseDateTimeMatch(m)
	return NewLocalDateTime(y, mo, d, h, mi, sec, ns), true
}

// ParseDateTime parses the full zoned form, optionally with a trailing
// "[Zone/Name]".
func ParseDateTime(s string) (Value, bool) {
	m := dateTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Value{}, false
	}
	y, mo, d, h, mi, sec, ns := parseDateTimeMatch(m)
	off := 0
	if m[8] != "" {
		off = parseOffset(m[8])
	}
	return NewDateTime(y, mo, d, h, mi, sec, ns, off, m[9]), true
}

func parseClockMatch(m []string) (h, mi, sec, ns int) {
	h, _ = strconv.Atoi(m[1])
	mi, _ = strconv.Atoi(m[2])
	sec, _ = strconv.Atoi(m[3])
	if m[4] != "" {
		frac := m[4]
		for len(frac) < 9 {
			frac += "0"
		}
		ns, _ = strconv.Atoi(frac[:9])
	}
	return
}

func parseDateTimeMatch(m []string) (y, mo, d, h, mi, sec, ns int) {
	y, _ = strconv.Atoi(m[1])
	mo, _ = strconv.Atoi(m[2])
	d, _ = strconv.Atoi(m[3])
	h, _ = strconv.Atoi(m[4])
	mi, _ = strconv.Atoi(m[5])
	sec, _ = strconv.Atoi(m[6])
	if m[7] != "" {
		frac := m[7]
		for len(frac) < 9 {
			frac += "0"
		}
		ns, _ = strconv.Atoi(frac[:9])
	}
	return
}

func parseOffset(s string) int {
	if s == "Z" {
		return 0
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	s = strings.TrimLeft(s, "+-")
	s = strings.ReplaceAll(s, ":", "")
	h, _ := strconv.Atoi(s[0:2])
	mi := 0
	if len(s) >= 4 {
		mi, _ = strconv.Atoi(s[2:4])
	}
	return sign * (h*60 + mi)
}

// ParseDuration parses an ISO-8601 duration string "P[n]Y[n]M[n]DT[n]H[n]M[n]S".
func ParseDuration(s string) (Value, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != 'P' && s[0] != 'p') {
		return Value{}, false
	}
	body := strings.ToUpper(s[1:])
	datePart, timePart := body, ""
	if idx := strings.Index(body, "T"); idx >= 0 {
		datePart, timePart = body[:idx], body[idx+1:]
	}

	var years, months, days int64
	for _, m := range durDateRe.FindAllStringSubmatch(datePart, -1) {
		n, _ := strconv.ParseInt(m[1], 10, 64)
		switch m[2] {
		case "Y":
			years = n
		case "M":
			months = n
		case "D":
			days = n
		}
	}

	var seconds, nanos int64
	var hours, minutes int64
	for _, m := range durTimeRe.FindAllStringSubmatch(timePart, -1) {
		switch m[2] {
		case "H":
			hours, _ = strconv.ParseInt(m[1], 10, 64)
		case "M":
			minutes, _ = strconv.ParseInt(m[1], 10, 64)
		case "S":
			if dot := strings.Index(m[1], "."); dot >= 0 {
				seconds, _ = strconv.ParseInt(m[1][:dot], 10, 64)
				frac := m[1][dot+1:]
				for len(frac) < 9 {
					frac += "0"
				}
				nanos, _ = strconv.ParseInt(frac[:9], 10, 64)
			} else {
				seconds, _ = strconv.ParseInt(m[1], 10, 64)
			}
		}
	}
	seconds += hours*3600 + minutes*60
	return NewDuration(years*12+months, days, seconds, nanos), true
}

// Between returns the normalized (months, days, seconds, nanos) duration,
// computed by first aligning months, then days, then the sub-day difference.
func Between(a, b Value) Value {
	at, bt := a.goTime(), b.goTime()
	if a.Kind == KindDate {
		at = time.Date(a.Year, time.Month(a.Month), a.Day, 0, 0, 0, 0, time.UTC)
	}
	if b.Kind == KindDate {
		bt = time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	}

	months := monthsBetween(at, bt)
	aligned := at.AddDate(0, int(months), 0)

	days := int64(bt.Sub(aligned).Hours() / 24)
	aligned = aligned.AddDate(0, 0, int(days))

	rem := bt.Sub(aligned)
	secs := int64(rem.Seconds())
	nanos := rem.Nanoseconds() - secs*1_000_000_000

	return NewDuration(months, days, secs, nanos)
}

func monthsBetween(a, b time.Time) int64 {
	neg := false
	if b.Before(a) {
		a, b = b, a
		neg = true
	}
	months := int64((b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month()))
	if b.Day() < a.Day() {
		months--
	}
	if neg {
		months = -months
	}
	return months
}

// InMonths, InDays, InSeconds implement duration.inMonths/inDays/inSeconds.
func (v Value) InMonths() int64 { return v.DurMonths }
func (v Value) InDays() int64 { return v.DurMonths*30 + v.DurDays }
func (v Value) InSeconds() int64 { return v.InDays()*86400 + v.DurSeconds }

// Component returns a named derived field (quarter, ordinalDay, weekDay,...)
// from the per-kind derived field table.
func (v Value) Component(name string) (any, bool) {
	switch v.Kind {
	case KindDate, KindLocalDateTime, KindDateTime:
		return v.dateComponent(name)
	case KindLocalTime, KindTime:
		return v.timeComponent(name)
	case KindDuration:
		return v.durationComponent(name)
	}
	return nil, false
}

func (v Value) dateComponent(name string) (any, bool) {
	switch name {
	case "year":
		return int64(v.Year), true
	case "month":
		return int64(v.Month), true
	case "day":
		return int64(v.Day), true
	case "quarter":
		return int64((v.Month-1)/3 + 1), true
	case "dayOfQuarter":
		t := v.goTime()
		qStartMonth := ((v.Month-1)/3)*3 + 1
		qStart := time.Date(v.Year, time.Month(qStartMonth), 1, 0, 0, 0, 0, time.UTC)
		return int64(t.Sub(qStart).Hours()/24) + 1, true
	case "ordinalDay":
		return int64(v.goTime().YearDay()), true
	case "weekDay":
		wd := int(v.goTime().Weekday())
		if wd == 0 {
			wd = 7
		}
		return int64(wd), true
	case "week":
		_, wk := v.goTime().ISOWeek()
		return int64(wk), true
	case "weekYear":
		wy, _ := v.goTime().ISOWeek()
		return int64(wy), true
	}
	if v.Kind != KindDate {
		return v.timeComponent(name)
	}
	return nil, false
}

func (v Value) timeComponent(name string) (any, bool) {
	switch name {
	case "hour":
		return int64(v.Hour), true
	case "minute":
		return int64(v.Minute), true
	case "second":
		return int64(v.Second), true
	case "nanosecond":
		return int64(v.Nanosecond), true
	case "millisecond":
		return int64(v.Nanosecond / 1_000_000), true
	case "microsecond":
		return int64(v.Nanosecond / 1_000), true
	case "offsetMinutes":
		if v.Kind == KindTime || v.Kind == KindDateTime {
			return int64(v.OffsetMinutes), true
		}
	case "epochSeconds":
		if v.Kind == KindDateTime {
			return v.UTC().Unix(), true
		}
	case "epochMillis":
		if v.Kind == KindDateTime {
			return v.UTC().UnixMilli(), true
		}
	}
	return nil, false
}

func (v Value) durationComponent(name string) (any, bool) {
	switch name {
	case "months":
		return v.DurMonths, true
	case "days":
		return v.DurDays, true
	case "seconds":
		return v.DurSeconds, true
	case "nanoseconds":
		return v.DurNanos, true
	case "years":
		return v.DurMonths / 12, true
	case "monthsOfYear":
		return v.DurMonths % 12, true
	case "quarters":
		return v.DurMonths / 3, true
	case "weeks":
		return v.DurDays / 7, true
	case "daysOfWeek":
		return v.DurDays % 7, true
	case "hours":
		return v.DurSeconds / 3600, true
	case "minutes":
		return v.DurSeconds / 60, true
	case "minutesOfHour":
		return (v.DurSeconds / 60) % 60, true
	case "secondsOfMinute":
		return v.DurSeconds % 60, true
	}
	return nil, false
}

// FromEpoch builds a DateTime from (seconds, nanos) since the Unix epoch.
func FromEpoch(sec, nanos int64) Value {
	t := time.Unix(sec, nanos).UTC()
	return NewDateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), 0, "")
}

// FromEpochMillis builds a DateTime from milliseconds since the Unix epoch.
func FromEpochMillis(ms int64) Value {
	return FromEpoch(ms/1000, (ms%1000)*1_000_000)
}

// Now returns the current DateTime in UTC, used by temporal functions called
// with no arguments.
func Now() Value {
	t := time.Now().UTC()
	return NewDateTime(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), 0, "")
}
