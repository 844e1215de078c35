package format

import "time"

const (
	localDateLayout     = "02-01-2006"
	localDateTimeLayout = "02-01-2006 15:04"
	inputDateLayout     = "2006-01-02"
)

// FormatLocalDate renders t as DD-MM-YYYY, or "-" for the zero time
func FormatLocalDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(localDateLayout)
}

// FormatLocalDatePtr is FormatLocalDate for optional dates
func FormatLocalDatePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return FormatLocalDate(*t)
}

// FormatLocalDateTime renders t as DD-MM-YYYY HH:mm, or "-" for the zero time
func FormatLocalDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(localDateTimeLayout)
}

// FormatInputDate renders t as YYYY-MM-DD, or "" for the zero time
func FormatInputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(inputDateLayout)
}

// ParseInputDate parses a YYYY-MM-DD string in loc
func ParseInputDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(inputDateLayout, s, loc)
}
