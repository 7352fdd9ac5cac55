package models

import "strings"

// Side is the option type of a column group.
type Side string

const (
	SideCE Side = "ce"
	SidePE Side = "pe"
)

// Sides lists chart sides in page order.
var Sides = []Side{SideCE, SidePE}

// Prefix is the column-name prefix of the side.
func (s Side) Prefix() string {
	return strings.ToUpper(string(s)) + "_"
}

// Label is the chart title prefix of the side.
func (s Side) Label() string {
	switch s {
	case SidePE:
		return "Put (PE)"
	default:
		return "Call (CE)"
	}
}

// ParseSide converts raw input (ce, CE, pe, PE) to a Side.
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideCE:
		return SideCE, true
	case SidePE:
		return SidePE, true
	default:
		return "", false
	}
}
