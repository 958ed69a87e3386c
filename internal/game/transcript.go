package game

// Transcript is the ordered log of segments. It is both what the player reads
// and the context sent back to the story service.
type Transcript []Segment

// Append returns a new transcript with seg added; t is not modified.
func (t Transcript) Append(seg Segment) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	for i, s := range t {
		out[i] = s.Clone()
	}
	return append(out, seg.Clone())
}

// Lines renders every segment as plain text, echoes prefixed with "> ".
func (t Transcript) Lines() []string {
	lines := make([]string, 0, len(t))
	for _, seg := range t {
		lines = append(lines, seg.Line())
	}
	return lines
}

// Last returns the final segment and whether there is one.
func (t Transcript) Last() (Segment, bool) {
	if len(t) == 0 {
		return Segment{}, false
	}
	return t[len(t)-1], true
}

// Turns counts player echoes, i.e. the decisions made so far.
func (t Transcript) Turns() int {
	n := 0
	for _, seg := range t {
		if seg.PlayerEcho {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	for i, seg := range t {
		out[i] = seg.Clone()
	}
	return out
}
