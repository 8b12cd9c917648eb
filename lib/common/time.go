package common

import "time"

const (
	TIMEFORMAT_ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"
)

func FormatISO8601(t time.Time) string {
	return t.Format(TIMEFORMAT_ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

// ParseISO8601 also accepts RFC3339 without the fractional seconds, like
// `2019-02-01T00:00:00Z`.
func ParseISO8601(s string) (t time.Time, err error) {
	if t, err = time.Parse(TIMEFORMAT_ISO8601, s); err == nil {
		return
	}
	return time.Parse(time.RFC3339, s)
}

// UnixToISO8601 formats a ledger timestamp, seconds since the unix epoch.
func UnixToISO8601(sec int64) string {
	return FormatISO8601(time.Unix(sec, 0).UTC())
}
