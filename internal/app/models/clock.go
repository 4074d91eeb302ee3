package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock holds a local wall time (hour and minute).
type Clock struct {
	H int `json:"hour" bson:"hour"`
	M int `json:"minute" bson:"minute"`
}

// ParseClock accepts "HH:MM" and the lenient "HH.MM" variant seen in older
// client payloads.
func ParseClock(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", ":")
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return Clock{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, false
	}
	return Clock{H: h, M: m}, true
}

// Minutes returns the clock as minutes since midnight.
func (c Clock) Minutes() int {
	return c.H*60 + c.M
}

func (c Clock) Before(o Clock) bool {
	return c.Minutes() < o.Minutes()
}

// AddMinutes returns the clock shifted forward. The result may pass midnight;
// callers that care clamp against 24*60 themselves.
func (c Clock) AddMinutes(m int) Clock {
	total := c.Minutes() + m
	return Clock{H: total / 60, M: total % 60}
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.H, c.M)
}
