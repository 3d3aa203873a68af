package models

import "fmt"

// Tier is a privilege level from "1" (highest) to "5" (lowest).
// Lower numeric value outranks higher: a tier "2" user can view
// anything gated at tier "2" through "5".
type Tier string

const (
	Tier1 Tier = "1"
	Tier2 Tier = "2"
	Tier3 Tier = "3"
	Tier4 Tier = "4"
	Tier5 Tier = "5"
)

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid tier %q", s)
	}
	return t, nil
}

func (t Tier) Valid() bool {
	switch t {
	case Tier1, Tier2, Tier3, Tier4, Tier5:
		return true
	}
	return false
}

// Rank returns the numeric rank 1..5, or 0 for an invalid tier.
func (t Tier) Rank() int {
	if !t.Valid() {
		return 0
	}
	return int(t[0] - '0')
}

// CanView reports whether a viewer at tier t may see an entity gated
// at required. A nil required tier means visible to everyone.
func (t Tier) CanView(required *Tier) bool {
	if required == nil {
		return true
	}
	return t.Rank() <= required.Rank()
}
