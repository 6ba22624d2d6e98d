package core

// Step is one entry of a scripted movement sequence: move (or idle) for Count ticks.
type Step struct {
	Movement Movement
	Count    int
}

type motionVariant uint8

const (
	motionStop motionVariant = iota
	motionMove
	motionTeam
)

// sequence is the immutable script shared by every clone of a Motion.
type sequence struct {
	loop  bool
	steps []Step
}

// Motion produces the movement intent of a cube, one tick at a time.
// It is one of three variants: stopped, a scripted sequence with a cursor,
// or a team of motions that vote each tick (the result of merging cubes).
// The zero value is a stopped motion.
type Motion struct {
	variant motionVariant
	script  *sequence
	index   int // current step
	count   int // ticks spent in the current step
	team    []Motion
}

// Still returns a motion that never yields a movement.
func Still() Motion {
	return Motion{}
}

// Script returns a motion that plays steps in order, starting over when loop is set.
// Steps with a non-positive count are dropped.
func Script(loop bool, steps []Step) Motion {
	kept := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s.Count > 0 {
			kept = append(kept, s)
		}
	}
	return Motion{
		variant: motionMove,
		script:  &sequence{loop: loop, steps: kept},
	}
}

// Team combines several motions into one. Stopped members are discarded;
// a team of zero or one member collapses to Still or to that member.
func Team(members ...Motion) Motion {
	kept := make([]Motion, 0, len(members))
	for _, m := range members {
		if m.variant != motionStop {
			kept = append(kept, m.Clone())
		}
	}
	return Motion{variant: motionTeam, team: kept}.slim()
}

// IsStill reports whether the motion is the stopped variant.
// A scripted motion that has run out is still reported as not stopped
// until Next observes the end.
func (m Motion) IsStill() bool {
	return m.slim().variant == motionStop
}

// Clone returns an independent copy sharing only the immutable scripts.
func (m Motion) Clone() Motion {
	if m.variant != motionTeam {
		return m
	}
	team := make([]Motion, len(m.team))
	for i, member := range m.team {
		team[i] = member.Clone()
	}
	m.team = team
	return m
}

func (m Motion) slim() Motion {
	if m.variant != motionTeam {
		return m
	}
	switch len(m.team) {
	case 0:
		return Motion{}
	case 1:
		return m.team[0]
	default:
		return m
	}
}

// Next advances the motion by one tick. It returns the movement for this tick
// (Idle for a scripted pause or a team disagreement) and false once the
// motion is exhausted.
func (m *Motion) Next() (Movement, bool) {
	*m = m.slim()
	switch m.variant {
	case motionMove:
		return m.nextMove()
	case motionTeam:
		return m.nextTeam()
	default:
		return Idle, false
	}
}

func (m *Motion) nextMove() (Movement, bool) {
	steps := m.script.steps
	if m.index == len(steps) {
		return Idle, false
	}
	step := steps[m.index]
	m.count++
	if m.count == step.Count {
		m.count = 0
		m.index++
		if m.index == len(steps) && m.script.loop {
			m.index = 0
		}
	}
	return step.Movement, true
}

func (m *Motion) nextTeam() (Movement, bool) {
	var vote Agreement
	kept := m.team[:0]
	for i := range m.team {
		member := m.team[i]
		choice, ok := member.Next()
		if !ok {
			continue
		}
		vote.Submit(choice)
		kept = append(kept, member)
	}
	m.team = kept
	if len(m.team) == 0 {
		return Idle, false
	}
	choice, _ := vote.Result()
	return choice, true
}

type agreementState uint8

const (
	agreementEmpty agreementState = iota
	agreementAgreed
	agreementFailed
)

// Agreement is a unanimous vote over movements. Idle is a real vote.
// The zero value is an empty agreement.
type Agreement struct {
	state  agreementState
	choice Movement
}

// Submit casts one vote. Any vote differing from an earlier one fails the agreement.
func (a *Agreement) Submit(choice Movement) {
	switch a.state {
	case agreementEmpty:
		a.state = agreementAgreed
		a.choice = choice
	case agreementAgreed:
		if a.choice != choice {
			a.state = agreementFailed
		}
	}
}

// Failed reports whether two votes disagreed.
func (a Agreement) Failed() bool {
	return a.state == agreementFailed
}

// Result returns the agreed movement. It returns false when nobody voted
// or the votes disagreed.
func (a Agreement) Result() (Movement, bool) {
	if a.state != agreementAgreed {
		return Idle, false
	}
	return a.choice, true
}

// Vote submits every choice and returns the result.
func Vote(choices ...Movement) (Movement, bool) {
	var a Agreement
	for _, c := range choices {
		a.Submit(c)
		if a.Failed() {
			break
		}
	}
	return a.Result()
}
