package model

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	hunchStatusNames = map[HunchStatus]string{
		StatusConfirmed:    "Confirmed",
		StatusDenied:       "Denied",
		StatusUndetermined: "Undetermined",
	}
	privacyLevelNames = map[PrivacyLevel]string{
		PrivacyHidden: "Hidden",
		PrivacyClosed: "Closed",
		PrivacyOpen:   "Open",
	}
)

// Choice is a value and label pair for select inputs.
type Choice struct {
	Value int
	Label string
}

func (s HunchStatus) String() string {
	if name, ok := hunchStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("HunchStatus(%d)", int(s))
}

// Valid reports whether s is a known status.
func (s HunchStatus) Valid() bool {
	_, ok := hunchStatusNames[s]
	return ok
}

func (p PrivacyLevel) String() string {
	if name, ok := privacyLevelNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PrivacyLevel(%d)", int(p))
}

// Valid reports whether p is a known privacy level.
func (p PrivacyLevel) Valid() bool {
	_, ok := privacyLevelNames[p]
	return ok
}

// ParseHunchStatus accepts either the numeric value or the name, case-insensitive.
func ParseHunchStatus(s string) (HunchStatus, error) {
	value, err := parseChoice(s, len(hunchStatusNames), func(i int) string { return HunchStatus(i).String() })
	return HunchStatus(value), err
}

// ParsePrivacyLevel accepts either the numeric value or the name, case-insensitive.
func ParsePrivacyLevel(s string) (PrivacyLevel, error) {
	value, err := parseChoice(s, len(privacyLevelNames), func(i int) string { return PrivacyLevel(i).String() })
	return PrivacyLevel(value), err
}

// HunchStatusChoices lists every status in order.
func HunchStatusChoices() []Choice {
	choices := make([]Choice, 0, len(hunchStatusNames))
	for i := 0; i < len(hunchStatusNames); i++ {
		choices = append(choices, Choice{Value: i, Label: HunchStatus(i).String()})
	}
	return choices
}

// PrivacyLevelChoices lists every privacy level in order.
func PrivacyLevelChoices() []Choice {
	choices := make([]Choice, 0, len(privacyLevelNames))
	for i := 0; i < len(privacyLevelNames); i++ {
		choices = append(choices, Choice{Value: i, Label: PrivacyLevel(i).String()})
	}
	return choices
}

func parseChoice(s string, count int, name func(int) string) (int, error) {
	s = strings.TrimSpace(s)

	if value, err := strconv.Atoi(s); err == nil {
		if value < 0 || value >= count {
			return 0, fmt.Errorf("value %d out of range", value)
		}
		return value, nil
	}

	for i := 0; i < count; i++ {
		if strings.EqualFold(name(i), s) {
			return i, nil
		}
	}

	return 0, fmt.Errorf("unknown value %q", s)
}
