// Package drill implements the square color training session: mode
// selection, rounds, scoring and the timed countdown.
//
// Every operation is a silent no-op when the session is in a state that
// does not accept it. Nothing here returns an error to the caller.
package drill

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/playperu/squaredrill/internal/board"
)

const (
	DefaultQuestions = 64
	DefaultSeconds   = 60

	tickInterval = time.Second
)

// Settings configures a Timed session. Non-positive values fall back to
// DefaultQuestions and DefaultSeconds.
type Settings struct {
	Questions int
	Seconds   int
}

func (s Settings) normalize() Settings {
	if s.Questions <= 0 {
		s.Questions = DefaultQuestions
	}
	if s.Seconds <= 0 {
		s.Seconds = DefaultSeconds
	}
	return s
}

type Outcome string

const (
	OutcomeTimeout   Outcome = "timeout"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeStopped   Outcome = "stopped"
)

// Summary reports the result of a finished session.
type Summary struct {
	Outcome  Outcome `json:"outcome"`
	Correct  int     `json:"correct"`
	Wrong    int     `json:"wrong"`
	Accuracy int     `json:"accuracy"`
	Message  string  `json:"message"`
}

func newSummary(o Outcome, correct, wrong int) *Summary {
	acc := Accuracy(correct, wrong)
	prefix := "Time's up!"
	if o == OutcomeStopped {
		prefix = "Stopped."
	}
	return &Summary{
		Outcome:  o,
		Correct:  correct,
		Wrong:    wrong,
		Accuracy: acc,
		Message:  fmt.Sprintf("%s Correct: %d, Wrong: %d. Accuracy: %d%%", prefix, correct, wrong, acc),
	}
}

// Accuracy returns the rounded percentage of correct answers, or 0 when
// nothing has been answered.
func Accuracy(correct, wrong int) int {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

func WithRand(r *rand.Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithListener registers fn to receive a snapshot after every state change,
// ticks included. fn is called without the controller lock held.
func WithListener(fn func(Snapshot)) Option {
	return func(c *Controller) { c.listener = fn }
}

// WithMode sets the initial mode. The default is Timed.
func WithMode(m Mode) Option {
	return func(c *Controller) { c.mode = m }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

type Controller struct {
	mu sync.Mutex

	settings Settings
	sched    Scheduler
	rng      *rand.Rand
	listener func(Snapshot)
	now      func() time.Time

	mode        Mode
	running     bool
	correct     int
	wrong       int
	total       Limit
	left        Limit
	secondsLeft int
	current     board.Square
	hasCurrent  bool
	summary     *Summary

	// cancelTick is non-nil while a countdown is scheduled. tickGen
	// identifies the live countdown so late ticks from a cancelled one
	// are dropped.
	cancelTick func()
	tickGen    uint64

	seq        uint64
	lastActive time.Time
}

// NewController returns an idle controller, in Timed mode unless
// WithMode says otherwise.
func NewController(settings Settings, opts ...Option) *Controller {
	c := &Controller{
		settings: settings.normalize(),
		sched:    TickerScheduler{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c.lastActive = c.now()
	c.selectMode(c.mode)
	return c
}

func (c *Controller) Settings() Settings { return c.settings }

// SelectMode switches to m from any state. Any countdown is cancelled and
// the counters are reset.
func (c *Controller) SelectMode(m Mode) {
	c.apply(func() bool {
		c.selectMode(m)
		return true
	})
}

// Start begins a session. Ignored while one is already running.
func (c *Controller) Start() {
	c.apply(c.start)
}

// Stop ends a running Free session. Ignored otherwise; Timed sessions end
// only on timeout or when the questions run out.
func (c *Controller) Stop() {
	c.apply(c.stop)
}

// StartOrStop is the single start/stop control. In Timed mode it only
// starts; in Free mode it toggles.
func (c *Controller) StartOrStop() {
	c.apply(func() bool {
		if !c.running {
			return c.start()
		}
		if c.mode == Free {
			return c.stop()
		}
		return false
	})
}

// SubmitAnswer scores answer against the current square and advances to
// the next round. Ignored unless running.
func (c *Controller) SubmitAnswer(answer board.Color) {
	c.apply(func() bool {
		if !c.running {
			return false
		}
		if answer == board.Classify(c.current) {
			c.correct++
		} else {
			c.wrong++
		}
		if n, ok := c.left.Value(); ok {
			c.left = Bounded(n - 1)
		}
		c.advance()
		return true
	})
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// LastActive reports when the last external command was applied.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

// Close cancels any live countdown. The controller stays usable.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelCountdown()
}

// apply runs op under the lock and publishes a snapshot if op changed state.
func (c *Controller) apply(op func() bool) {
	c.mu.Lock()
	c.lastActive = c.now()
	changed := op()
	var snap Snapshot
	if changed {
		c.seq++
		snap = c.snapshot()
	}
	c.mu.Unlock()

	if changed && c.listener != nil {
		c.listener(snap)
	}
}

func (c *Controller) selectMode(m Mode) {
	c.cancelCountdown()
	c.running = false
	c.mode = m
	c.resetCounts()
	c.configure()
	c.hasCurrent = false
	c.summary = nil
}

func (c *Controller) configure() {
	if c.mode == Timed {
		c.total = Bounded(c.settings.Questions)
		c.left = c.total
		c.secondsLeft = c.settings.Seconds
		return
	}
	c.total = Unbounded()
	c.left = Unbounded()
	c.secondsLeft = 0
}

func (c *Controller) resetCounts() {
	c.correct = 0
	c.wrong = 0
}

func (c *Controller) start() bool {
	if c.running {
		return false
	}
	c.resetCounts()
	c.summary = nil
	c.configure()
	c.running = true
	c.advance()

	if c.mode == Timed && c.running {
		c.cancelCountdown()
		c.tickGen++
		gen := c.tickGen
		c.cancelTick = c.sched.Every(tickInterval, func() { c.tick(gen) })
	}
	return true
}

func (c *Controller) stop() bool {
	if !c.running || c.mode != Free {
		return false
	}
	c.running = false
	c.summary = newSummary(OutcomeStopped, c.correct, c.wrong)
	return true
}

// advance either ends an exhausted Timed session or draws the next square.
func (c *Controller) advance() {
	if n, ok := c.left.Value(); ok && n <= 0 {
		c.end(OutcomeExhausted)
		return
	}
	c.current = board.RandomSquare(c.rng)
	c.hasCurrent = true
}

func (c *Controller) tick(gen uint64) {
	c.mu.Lock()
	if gen != c.tickGen || c.cancelTick == nil || !c.running {
		c.mu.Unlock()
		return
	}
	c.secondsLeft--
	if c.secondsLeft <= 0 {
		c.secondsLeft = 0
		c.end(OutcomeTimeout)
	}
	c.seq++
	snap := c.snapshot()
	c.mu.Unlock()

	if c.listener != nil {
		c.listener(snap)
	}
}

func (c *Controller) end(o Outcome) {
	c.cancelCountdown()
	c.running = false
	c.summary = newSummary(o, c.correct, c.wrong)
}

func (c *Controller) cancelCountdown() {
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
	c.tickGen++
}
