package sim

// Period is one 20-minute segment of play, regulation or sudden-death
// overtime, pinned to absolute game-clock times once started.
type Period struct {
	Number   int
	Duration float64
	Overtime bool
	Start    float64
	End      float64
}

func NewPeriod(number int, duration float64, overtime bool) *Period {
	return &Period{Number: number, Duration: duration, Overtime: overtime}
}

func (p *Period) StartAt(t float64) {
	p.Start = t
	p.End = t + p.Duration
}

func (p *Period) Finished(t float64) bool {
	return t >= p.End
}
