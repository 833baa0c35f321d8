package drill

// Control describes the single start/stop button.
type Control struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// Snapshot is a read-only view of a session for the presentation layer.
// Seq increases with every state change so clients can drop stale pushes.
type Snapshot struct {
	Seq            uint64   `json:"seq"`
	Mode           Mode     `json:"mode"`
	Running        bool     `json:"running"`
	Square         string   `json:"square,omitempty"`
	Correct        int      `json:"correct"`
	Wrong          int      `json:"wrong"`
	Answered       int      `json:"answered"`
	Accuracy       int      `json:"accuracy"`
	TotalQuestions Limit    `json:"totalQuestions"`
	QuestionsLeft  Limit    `json:"questionsLeft"`
	SecondsLeft    *int     `json:"secondsLeft"`
	Progress       *float64 `json:"progress,omitempty"`
	Control        Control  `json:"control"`
	Summary        *Summary `json:"summary,omitempty"`
}

func (c *Controller) snapshot() Snapshot {
	s := Snapshot{
		Seq:            c.seq,
		Mode:           c.mode,
		Running:        c.running,
		Correct:        c.correct,
		Wrong:          c.wrong,
		Answered:       c.correct + c.wrong,
		Accuracy:       Accuracy(c.correct, c.wrong),
		TotalQuestions: c.total,
		QuestionsLeft:  c.left,
		Control:        c.control(),
		Summary:        c.summary,
	}
	if c.hasCurrent {
		s.Square = c.current.String()
	}
	if c.mode == Timed {
		secs := c.secondsLeft
		s.SecondsLeft = &secs
		p := c.progress()
		s.Progress = &p
	}
	return s
}

// progress is the answered fraction of a Timed session, clamped to [0, 1].
func (c *Controller) progress() float64 {
	total, ok := c.total.Value()
	left, _ := c.left.Value()
	if !ok || total <= 0 {
		return 0
	}
	p := float64(total-left) / float64(total)
	return min(max(p, 0), 1)
}

func (c *Controller) control() Control {
	switch {
	case !c.running:
		return Control{Label: "Start", Enabled: true}
	case c.mode == Free:
		return Control{Label: "Stop", Enabled: true}
	default:
		return Control{Label: "Running...", Enabled: false}
	}
}
