package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	negative := balance < 0
	if negative {
		balance = -balance
	}
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	var result strings.Builder
	if negative {
		result.WriteByte('-')
	}
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatMoney renders an amount as "$1,234"
func FormatMoney(amount int64) string {
	if amount < 0 {
		return "-$" + FormatBalance(-amount)
	}
	return "$" + FormatBalance(amount)
}

// FormatBalanceCompact formats a balance amount in compact form (e.g. 100k, 1.5M)
func FormatBalanceCompact(balance int64) string {
	units := []struct {
		size   float64
		suffix string
	}{
		{1e9, "B"},
		{1e6, "M"},
		{1e3, "k"},
	}
	for _, u := range units {
		if float64(balance) >= u.size {
			v := float64(balance) / u.size
			if v == float64(int64(v)) {
				return fmt.Sprintf("%.0f%s", v, u.suffix)
			}
			return fmt.Sprintf("%.1f%s", v, u.suffix)
		}
	}
	return fmt.Sprintf("%d", balance)
}

// FormatCooldown renders a wait as hours, minutes and seconds, e.g. "1h 2m 5s"
func FormatCooldown(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Second {
		return "0s"
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// ProgressBar renders percent (0-100) as a bar of size cells
func ProgressBar(percent float64, size int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(size))
	return strings.Repeat("█", filled) + strings.Repeat("░", size-filled)
}

// Truncate shortens s to max runes, marking the cut with an ellipsis
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
