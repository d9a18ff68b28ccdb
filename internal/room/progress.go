package room

// Escalation is the consequence of a wrong answer.
type Escalation int

const (
	EscalationNone Escalation = iota
	EscalationTrap
	EscalationExtraction
)

// String returns the escalation name.
func (e Escalation) String() string {
	switch e {
	case EscalationTrap:
		return "trap"
	case EscalationExtraction:
		return "extraction"
	default:
		return "none"
	}
}

// Thresholds are the wrong-answer counts that escalate a puzzle.
type Thresholds struct {
	TrapAt    int
	ExtractAt int
}

// DefaultThresholds trap on the first wrong answer and end the game on the
// second.
func DefaultThresholds() Thresholds {
	return Thresholds{TrapAt: 1, ExtractAt: 2}
}

// Progress tracks where the player is and how their puzzles are going.
// Wrong answers are counted per puzzle key and survive room changes.
type Progress struct {
	room        string
	roomNumber  int
	wrong       map[string]int
	wordGuessed bool
	thresholds  Thresholds
}

// NewProgress creates progress before the first room.
func NewProgress(th Thresholds) *Progress {
	if th.TrapAt < 1 {
		th.TrapAt = 1
	}
	if th.ExtractAt <= th.TrapAt {
		th.ExtractAt = th.TrapAt + 1
	}
	return &Progress{
		wrong:      make(map[string]int),
		thresholds: th,
	}
}

// Enter moves to room. Per-room state is reset; wrong answers are kept.
func (p *Progress) Enter(room string) {
	p.room = room
	p.roomNumber++
	p.wordGuessed = false
}

// Room returns the current room id.
func (p *Progress) Room() string {
	return p.room
}

// RoomNumber counts the rooms entered so far, starting at 1.
func (p *Progress) RoomNumber() int {
	return p.roomNumber
}

// Thresholds returns the escalation thresholds.
func (p *Progress) Thresholds() Thresholds {
	return p.thresholds
}

// RecordWrongAnswer counts a wrong answer for key and returns what it
// escalates to. Each escalation is returned exactly once per key.
func (p *Progress) RecordWrongAnswer(key string) Escalation {
	p.wrong[key]++
	switch p.wrong[key] {
	case p.thresholds.TrapAt:
		return EscalationTrap
	case p.thresholds.ExtractAt:
		return EscalationExtraction
	default:
		return EscalationNone
	}
}

// WrongAnswers returns the wrong answers given for key.
func (p *Progress) WrongAnswers(key string) int {
	return p.wrong[key]
}

// TotalWrongAnswers returns the wrong answers given for all puzzles.
func (p *Progress) TotalWrongAnswers() int {
	total := 0
	for _, n := range p.wrong {
		total += n
	}
	return total
}

// SetWordGuessed marks the room's riddle as answered.
func (p *Progress) SetWordGuessed() {
	p.wordGuessed = true
}

// WordGuessed reports whether the room's riddle was answered.
func (p *Progress) WordGuessed() bool {
	return p.wordGuessed
}
