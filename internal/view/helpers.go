package view

import "time"

const timestampLayout = "2006-01-02 15:04 MST"

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(timestampLayout)
}
