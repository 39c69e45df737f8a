// Package wizard implements the step-state controller behind multi-step flows
// such as log source onboarding. It carries shared data between steps, tracks
// per-step validity and notifies subscribed panels after every change.
package wizard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/secconsole/internal/logger"
)

// Data is the shared state carried across steps.
type Data map[string]any

// Clone returns a shallow copy of d. A nil Data clones to an empty map.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Snapshot is an immutable view of the controller state handed to subscribers.
type Snapshot struct {
	Index    int      `json:"index"`
	Step     Step     `json:"step"`
	Data     Data     `json:"data"`
	Statuses []Status `json:"statuses"`
	Complete bool     `json:"complete"`
}

// Handle is what step panels get to drive the wizard.
type Handle interface {
	CurrentIndex() int
	SharedData() Data
	GoNext() error
	GoPrev() bool
	JumpTo(index int) error
	SetSharedData(partial Data)
	SetStepStatus(index int, status Status)
}

// Option configures a Controller.
type Option func(*Controller)

// WithStrictBounds makes JumpTo panic on out-of-range targets instead of
// returning an error. Meant for development builds and tests.
func WithStrictBounds() Option {
	return func(c *Controller) {
		c.strict = true
	}
}

// WithData seeds the shared data before the first render.
func WithData(data Data) Option {
	return func(c *Controller) {
		for k, v := range data {
			c.data[k] = v
		}
	}
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Controller owns the step sequence, the active index, the shared data and
// the per-step statuses. It never blocks and never fails loudly: guard
// failures come back as ErrStepNotReady, ErrOutOfRange or a false result.
type Controller struct {
	mu       sync.Mutex
	steps    []Step
	index    int
	data     Data
	statuses []Status
	strict   bool

	subs   []subscriber
	nextID int
}

// New creates a controller over steps. At least one step is required.
func New(steps []Step, opts ...Option) (*Controller, error) {
	if len(steps) == 0 {
		return nil, errors.New("wizard needs at least one step")
	}
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("step %d has no id", i)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate step id %q", s.ID)
		}
		seen[s.ID] = true
	}

	c := &Controller{
		steps:    append([]Step(nil), steps...),
		data:     make(Data),
		statuses: make([]Status, len(steps)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Steps returns a copy of the step descriptors.
func (c *Controller) Steps() []Step {
	return append([]Step(nil), c.steps...)
}

// Len returns the number of steps.
func (c *Controller) Len() int {
	return len(c.steps)
}

// CurrentIndex returns the active step index.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// CurrentStep returns the active step descriptor.
func (c *Controller) CurrentStep() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.index]
}

// SharedData returns a copy of the shared data.
func (c *Controller) SharedData() Data {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data.Clone()
}

// StepStatus returns the status of the step at index, or StatusPending when
// the index is out of range.
func (c *Controller) StepStatus(index int) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.statuses) {
		return StatusPending
	}
	return c.statuses[index]
}

// CanGoNext reports whether GoNext would move forward.
func (c *Controller) CanGoNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index < len(c.steps)-1 && c.statuses[c.index] == StatusValid
}

// Complete reports whether the last step is active and valid.
func (c *Controller) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completeLocked()
}

func (c *Controller) completeLocked() bool {
	last := len(c.steps) - 1
	return c.index == last && c.statuses[last] == StatusValid
}

// GoNext advances one step. At the last step it does nothing and returns nil.
// It returns ErrStepNotReady when the active step is not valid.
func (c *Controller) GoNext() error {
	c.mu.Lock()
	if c.index == len(c.steps)-1 {
		c.mu.Unlock()
		return nil
	}
	if c.statuses[c.index] != StatusValid {
		idx := c.index
		c.mu.Unlock()
		logger.Debug("wizard: next refused, step %d is %s", idx, c.StepStatus(idx))
		return ErrStepNotReady
	}
	c.index++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// GoPrev moves back one step and reports whether it moved. Data and statuses
// of every step are kept.
func (c *Controller) GoPrev() bool {
	c.mu.Lock()
	if c.index == 0 {
		c.mu.Unlock()
		return false
	}
	c.index--
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return true
}

// JumpTo activates the step at index. Backward jumps always succeed; forward
// jumps need every earlier step to be valid.
func (c *Controller) JumpTo(index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.steps) {
		err := &OutOfRangeError{Index: index, Len: len(c.steps)}
		c.mu.Unlock()
		if c.strict {
			panic(err)
		}
		logger.Warn("wizard: %v", err)
		return err
	}
	if index > c.index {
		for i := 0; i < index; i++ {
			if c.statuses[i] != StatusValid {
				c.mu.Unlock()
				return ErrStepNotReady
			}
		}
	}
	if index == c.index {
		c.mu.Unlock()
		return nil
	}
	c.index = index
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// SetSharedData shallow-merges partial into the shared data. Existing keys not
// named in partial are kept.
func (c *Controller) SetSharedData(partial Data) {
	c.mu.Lock()
	for k, v := range partial {
		c.data[k] = v
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Hydrate merges restored data without notifying subscribers. It is meant to
// run before the first render, when nothing has subscribed yet.
func (c *Controller) Hydrate(data Data) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range data {
		c.data[k] = v
	}
}

// SetStepStatus records the status of one step. Out-of-range indices are
// ignored.
func (c *Controller) SetStepStatus(index int, status Status) {
	c.mu.Lock()
	if index < 0 || index >= len(c.statuses) {
		n := len(c.statuses)
		c.mu.Unlock()
		logger.Warn("wizard: status for step %d ignored, wizard has %d steps", index, n)
		return
	}
	if c.statuses[index] == status {
		c.mu.Unlock()
		return
	}
	c.statuses[index] = status
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Reset returns to the first step, clears shared data and marks every step
// pending.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.index = 0
	c.data = make(Data)
	for i := range c.statuses {
		c.statuses[i] = StatusPending
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Index:    c.index,
		Step:     c.steps[c.index],
		Data:     c.data.Clone(),
		Statuses: append([]Status(nil), c.statuses...),
		Complete: c.completeLocked(),
	}
}

// Subscribe registers fn to receive a snapshot after every state change. The
// returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// notify runs outside the lock so subscribers may call back in.
func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	subs := append([]subscriber(nil), c.subs...)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(snap)
	}
}

var _ Handle = (*Controller)(nil)
