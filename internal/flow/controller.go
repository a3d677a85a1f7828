package flow

import (
	"context"
	"sync"
	"time"

	"go-interview-portal/internal/domain"
	"go-interview-portal/pkg/apperror"
	"go-interview-portal/pkg/logger"
)

// DefaultDebounceWindow is the quiet period after the last edit before a
// field's value is persisted.
const DefaultDebounceWindow = 1500 * time.Millisecond

// persistTimeout bounds debounced writes, which fire outside any request
// context.
const persistTimeout = 10 * time.Second

// NoticeFunc receives non-fatal save failures. The in-memory value is
// retained so nothing is visibly lost, but the write is not retried.
type NoticeFunc func(section domain.Section, questionKey string, err error)

// Controller is the stateful interview wizard for a single identifier. It
// holds the ordered steps and the current position, keeps an in-memory answer
// map that is authoritative for display, and delegates persistence to the
// answer and progress usecases through the debounce policy.
type Controller struct {
	id       domain.Identifier
	answers  domain.AnswerUsecase
	progress domain.ProgressUsecase
	deb      *Debouncer
	notice   NoticeFunc

	mu     sync.Mutex
	step   int
	local  domain.AnswerSet
	status domain.SubmissionStatus
}

// Option customizes a Controller.
type Option func(*Controller)

// WithDebounceWindow overrides the default quiet period.
func WithDebounceWindow(window time.Duration) Option {
	return func(c *Controller) {
		c.deb = NewDebouncer(window, c.persistField)
	}
}

// WithNotice installs a callback for non-fatal save failures.
func WithNotice(fn NoticeFunc) Option {
	return func(c *Controller) {
		c.notice = fn
	}
}

// NewController loads the identifier's saved answers and progress and
// positions the wizard: the persisted current step when a progress record
// exists, step 1 otherwise.
func NewController(ctx context.Context, id domain.Identifier, answers domain.AnswerUsecase, progress domain.ProgressUsecase, opts ...Option) (*Controller, error) {
	if id.IsZero() {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	c := &Controller{
		id:       id,
		answers:  answers,
		progress: progress,
		step:     domain.FirstStep,
		status:   domain.StatusNotStarted,
		notice: func(section domain.Section, questionKey string, err error) {
			logger.Log.Warn("answer save failed", "section", section, "question_key", questionKey, "error", err)
		},
	}
	c.deb = NewDebouncer(DefaultDebounceWindow, c.persistField)

	for _, opt := range opts {
		opt(c)
	}

	saved, err := answers.LoadAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	c.local = saved
	if c.local == nil {
		c.local = make(domain.AnswerSet)
	}

	p, err := progress.LoadProgress(ctx, id)
	if err != nil {
		return nil, err
	}
	if p != nil {
		c.step = p.CurrentStep
		c.status = p.SubmissionStatus
	}

	return c, nil
}

// Identifier returns the identity this controller is bound to.
func (c *Controller) Identifier() domain.Identifier {
	return c.id
}

// Step returns the current wizard step.
func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Status returns the last known submission status.
func (c *Controller) Status() domain.SubmissionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Answers returns a copy of the in-memory answer set, which is authoritative
// for display regardless of what has persisted.
func (c *Controller) Answers() domain.AnswerSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() domain.AnswerSet {
	out := make(domain.AnswerSet, len(c.local))
	for section, byKey := range c.local {
		inner := make(map[string]domain.AnswerValue, len(byKey))
		for k, v := range byKey {
			inner[k] = v
		}
		out[section] = inner
	}
	return out
}

// Next advances one step; at the final step it is a no-op.
func (c *Controller) Next(ctx context.Context) (int, error) {
	return c.move(ctx, +1)
}

// Previous goes back one step; at the first step it is a no-op.
func (c *Controller) Previous(ctx context.Context) (int, error) {
	return c.move(ctx, -1)
}

func (c *Controller) move(ctx context.Context, delta int) (int, error) {
	c.mu.Lock()
	target := c.step + delta
	if target < domain.FirstStep || target > domain.FinalStep {
		step := c.step
		c.mu.Unlock()
		return step, nil
	}
	c.step = target
	c.mu.Unlock()

	return c.persistStep(ctx, target)
}

// JumpTo navigates directly to any step (sidebar click). There is no linear
// gating: intervening steps need not be complete.
func (c *Controller) JumpTo(ctx context.Context, step int) (int, error) {
	if step < domain.FirstStep || step > domain.FinalStep {
		return c.Step(), apperror.BadRequest("Step out of range")
	}

	c.mu.Lock()
	c.step = step
	c.mu.Unlock()

	return c.persistStep(ctx, step)
}

func (c *Controller) persistStep(ctx context.Context, step int) (int, error) {
	p, err := c.progress.UpdateProgress(ctx, c.id, step, nil)
	if err != nil {
		return step, err
	}

	c.mu.Lock()
	// A completed interview stays completed; otherwise track the derivation.
	if c.status != domain.StatusCompleted {
		c.status = p.SubmissionStatus
	}
	c.mu.Unlock()
	return step, nil
}

// FieldEdit records one field edit: the in-memory value updates immediately
// and a debounced persist is scheduled. The current step does not change.
// Whitespace-only plain edits are dropped before they reach the store.
func (c *Controller) FieldEdit(section domain.Section, questionKey string, value domain.AnswerValue) error {
	if !section.IsValid() {
		return apperror.BadRequest("Unknown section: " + string(section))
	}
	if questionKey == "" {
		return apperror.BadRequest("Question key is required")
	}
	if value.Kind == domain.AnswerPlain && value.IsEmpty() {
		return apperror.BadRequest("Answer value must not be empty")
	}

	c.mu.Lock()
	c.local.Put(section, questionKey, value)
	c.mu.Unlock()

	c.deb.Schedule(section, questionKey, value)
	return nil
}

// persistField is the debouncer's sink. It runs after the quiet period, off
// any request context. Failures surface through the notice callback only; the
// in-memory value stays live and no retry is attempted.
func (c *Controller) persistField(section domain.Section, questionKey string, value domain.AnswerValue) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := c.answers.SaveAnswer(ctx, c.id, section, questionKey, value); err != nil {
		c.notice(section, questionKey, err)
	}
}

// Completion returns the current overall completion percentage.
func (c *Controller) Completion() float64 {
	return EvaluateSubmission(c.Answers(), true).Completion
}

// Submit runs the submission gate. On denial nothing changes and the decision
// carries the numbers for the UI message. On permit all pending debounced
// writes are flushed and progress moves to the final step with the completed
// sections map, which the derivation rule turns into completed.
func (c *Controller) Submit(ctx context.Context, confirmed bool) (Decision, error) {
	decision := EvaluateSubmission(c.Answers(), confirmed)
	if !decision.Allowed {
		return decision, nil
	}

	// Everything the gate just judged must actually reach the store.
	c.deb.Flush()

	p, err := c.progress.UpdateProgress(ctx, c.id, domain.FinalStep, decision.CompletedSectionsMap())
	if err != nil {
		return decision, err
	}

	c.mu.Lock()
	c.step = domain.FinalStep
	c.status = p.SubmissionStatus
	c.mu.Unlock()

	return decision, nil
}

// Flush persists all pending debounced writes immediately.
func (c *Controller) Flush() {
	c.deb.Flush()
}

// Close flushes pending writes and releases the controller. Called on session
// teardown.
func (c *Controller) Close() {
	c.deb.Flush()
}
