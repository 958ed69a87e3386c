package game

import (
	"strconv"
	"strings"
)

// Class is a character class the player can pick at creation time.
type Class string

const (
	Warrior Class = "WARRIOR"
	Mage    Class = "MAGE"
	Rogue   Class = "ROGUE"
)

// Classes lists the selectable classes in menu order.
var Classes = []Class{Warrior, Mage, Rogue}

var classLabels = map[Class]string{
	Warrior: "戰士",
	Mage:    "法師",
	Rogue:   "盜賊",
}

var classDescriptions = map[Class]string{
	Warrior: "精通各種武器，是戰場上的勇者。",
	Mage:    "操控強大法術，用智慧扭轉戰局。",
	Rogue:   "潛行於陰影之中，擅長偵察與奇襲。",
}

// Label returns the display name used in prompts and on screen.
func (c Class) Label() string {
	if l, ok := classLabels[c]; ok {
		return l
	}
	return string(c)
}

// Description returns a one-line flavour text for the creation menu.
func (c Class) Description() string {
	return classDescriptions[c]
}

// Valid reports whether c is one of the known classes.
func (c Class) Valid() bool {
	_, ok := classLabels[c]
	return ok
}

// ParseClass accepts the English name (any case), the display label or a
// 1-based menu index.
func ParseClass(s string) (Class, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= len(Classes) {
			return Classes[n-1], true
		}
		return "", false
	}
	upper := Class(strings.ToUpper(s))
	if upper.Valid() {
		return upper, true
	}
	for c, label := range classLabels {
		if label == s {
			return c, true
		}
	}
	return "", false
}

// Character is the player's avatar. It is fixed once the adventure starts.
type Character struct {
	Name  string `json:"name"`
	Class Class  `json:"class"`
}
