package game

import "strings"

// Outcome is the story service's verdict for a turn.
type Outcome string

const (
	OutcomeContinue Outcome = "continue"
	OutcomeVictory  Outcome = "victory"
	OutcomeGameOver Outcome = "game_over"
)

// Outcomes lists the values the story service is asked to use.
var Outcomes = []Outcome{OutcomeContinue, OutcomeVictory, OutcomeGameOver}

// ParseOutcome matches s against the known outcomes, ignoring case and
// surrounding whitespace.
func ParseOutcome(s string) (Outcome, bool) {
	o := Outcome(strings.ToLower(strings.TrimSpace(s)))
	switch o {
	case OutcomeContinue, OutcomeVictory, OutcomeGameOver:
		return o, true
	}
	return "", false
}

// VictoryType is the flavour of a winning ending. The zero value means none.
type VictoryType string

const (
	VictoryNone         VictoryType = ""
	VictoryBossBattle   VictoryType = "BOSS_BATTLE"
	VictoryTreasureHunt VictoryType = "TREASURE_HUNT"
	VictoryEpicJourney  VictoryType = "EPIC_JOURNEY"
)

// VictoryTypes lists the known archetypes.
var VictoryTypes = []VictoryType{VictoryBossBattle, VictoryTreasureHunt, VictoryEpicJourney}

var victoryLabels = map[VictoryType]string{
	VictoryBossBattle:   "擊敗魔王",
	VictoryTreasureHunt: "尋得傳說寶藏",
	VictoryEpicJourney:  "完成史詩旅程",
}

// ParseVictoryType matches s against the known archetypes. Unknown or empty
// input yields VictoryNone and false.
func ParseVictoryType(s string) (VictoryType, bool) {
	v := VictoryType(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := victoryLabels[v]; ok {
		return v, true
	}
	return VictoryNone, false
}

// Label returns the on-screen name of the archetype.
func (v VictoryType) Label() string {
	return victoryLabels[v]
}

// Segment is one unit of the transcript: narrative from the story service or
// an echo of the player's choice.
type Segment struct {
	Text        string      `json:"text"`
	Choices     []string    `json:"choices,omitempty"`
	Outcome     Outcome     `json:"outcome"`
	VictoryType VictoryType `json:"victory_type,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	PlayerEcho  bool        `json:"player_echo,omitempty"`
}

// Echo builds the transcript entry for a choice the player made.
func Echo(choice string) Segment {
	return Segment{Text: choice, Outcome: OutcomeContinue, PlayerEcho: true}
}

// Illustratable reports whether the segment is narrative that should get a
// picture: story content that still has choices or continues the game.
func (s Segment) Illustratable() bool {
	if s.PlayerEcho {
		return false
	}
	return len(s.Choices) > 0 || s.Outcome == OutcomeContinue
}

// Line renders the segment as one entry of the plain-text context.
func (s Segment) Line() string {
	if s.PlayerEcho {
		return "> " + s.Text
	}
	return s.Text
}

// Clone returns a copy that shares no slices with s.
func (s Segment) Clone() Segment {
	if s.Choices != nil {
		s.Choices = append([]string(nil), s.Choices...)
	}
	return s
}
