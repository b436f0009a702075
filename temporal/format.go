package temporal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultFormat is the pattern Format uses when none is given.
const DefaultFormat = "YYYY-MM-DDTHH:mm:ssZ"

const isoLayout = "2006-01-02T15:04:05.000Z"

// FormatISO renders t in UTC with millisecond precision, e.g.
// 2024-01-01T00:00:00.000Z. Years outside 0000-9999 use the signed six
// digit form, e.g. +010000-01-01T00:00:00.000Z.
func FormatISO(t time.Time) string {
	t = Truncate(t).UTC()
	y := t.Year()
	if y >= 0 && y <= 9999 {
		return t.Format(isoLayout)
	}
	sign := "+"
	if y < 0 {
		sign = "-"
		y = -y
	}
	return fmt.Sprintf("%s%06d%s", sign, y, t.Format(isoLayout[4:]))
}

var formatTokens = regexp.MustCompile(`\[([^\]]+)]|Y{1,4}|M{1,4}|D{1,2}|d{1,4}|H{1,2}|h{1,2}|a|A|m{1,2}|s{1,2}|Z{1,2}|SSS|X|x`)

// Format renders t with a token pattern such as "YYYY-MM-DD HH:mm".
// Text in square brackets is copied verbatim. An empty pattern means
// DefaultFormat. The point is rendered in its own location.
func Format(t time.Time, pattern string) string {
	if pattern == "" {
		pattern = DefaultFormat
	}
	return formatTokens.ReplaceAllStringFunc(pattern, func(tok string) string {
		if strings.HasPrefix(tok, "[") {
			return tok[1 : len(tok)-1]
		}
		if s, ok := formatToken(t, tok); ok {
			return s
		}
		return tok
	})
}

func formatToken(t time.Time, tok string) (string, bool) {
	switch tok {
	case "YY":
		return pad(t.Year()%100, 2), true
	case "YYYY":
		return pad(t.Year(), 4), true
	case "M":
		return strconv.Itoa(int(t.Month())), true
	case "MM":
		return pad(int(t.Month()), 2), true
	case "MMM":
		return t.Month().String()[:3], true
	case "MMMM":
		return t.Month().String(), true
	case "D":
		return strconv.Itoa(t.Day()), true
	case "DD":
		return pad(t.Day(), 2), true
	case "d":
		return strconv.Itoa(int(t.Weekday())), true
	case "dd":
		return t.Weekday().String()[:2], true
	case "ddd":
		return t.Weekday().String()[:3], true
	case "dddd":
		return t.Weekday().String(), true
	case "H":
		return strconv.Itoa(t.Hour()), true
	case "HH":
		return pad(t.Hour(), 2), true
	case "h":
		return strconv.Itoa(hour12(t)), true
	case "hh":
		return pad(hour12(t), 2), true
	case "a":
		if t.Hour() < 12 {
			return "am", true
		}
		return "pm", true
	case "A":
		if t.Hour() < 12 {
			return "AM", true
		}
		return "PM", true
	case "m":
		return strconv.Itoa(t.Minute()), true
	case "mm":
		return pad(t.Minute(), 2), true
	case "s":
		return strconv.Itoa(t.Second()), true
	case "ss":
		return pad(t.Second(), 2), true
	case "SSS":
		return pad(t.Nanosecond()/int(time.Millisecond), 3), true
	case "Z":
		return t.Format("-07:00"), true
	case "ZZ":
		return t.Format("-0700"), true
	case "X":
		return strconv.FormatInt(t.Unix(), 10), true
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10), true
	}
	return "", false
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		return 12
	}
	return h
}

func pad(n, width int) string {
	if n < 0 {
		return "-" + pad(-n, width)
	}
	s := strconv.Itoa(n)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
