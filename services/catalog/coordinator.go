package catalog

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"reelfind/models"
)

// State is the coordinator's position in one query lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateDebouncing State = "debouncing"
	StateFetching   State = "fetching"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
	StateCancelled  State = "cancelled"
)

// partialPublishLimit caps how many items a progressive partial publish
// may show before the final ranked list lands.
const partialPublishLimit = 5

// Snapshot is the observable presentation state: loading flag, error
// summary, and the current result list. Partial marks a progressive
// publish that the final ranked list will replace.
type Snapshot struct {
	Query   string               `json:"query"`
	State   State                `json:"state"`
	Loading bool                 `json:"loading"`
	Partial bool                 `json:"partial,omitempty"`
	Error   string               `json:"error,omitempty"`
	Results []models.ContentItem `json:"results"`
}

// searchRunner is the slice of Service the coordinator drives.
type searchRunner interface {
	Search(ctx context.Context, query string, onPartial func([]models.ContentItem)) ([]models.ContentItem, error)
}

var _ searchRunner = (*Service)(nil)

// Coordinator debounces query input, owns the in-flight batch and its
// cancellation, and publishes results to the snapshot. A new keystroke
// always supersedes: the pending timer is reset and any in-flight batch
// is cancelled without being awaited. Only the current batch may publish;
// a superseded batch that completes later is discarded by identity check,
// not by timestamp.
type Coordinator struct {
	runner      searchRunner
	debounce    time.Duration
	progressive bool

	mu      sync.Mutex
	state   State
	query   string
	timer   *time.Timer
	current *inflightBatch
	results []models.ContentItem
	partial bool
	errMsg  string
}

// inflightBatch represents one issued batch of parallel fetches. It owns
// the cancellation for every fetch in the batch.
type inflightBatch struct {
	id        uuid.UUID
	query     string
	cancel    context.CancelFunc
	finalDone bool
}

func NewCoordinator(runner searchRunner, debounce time.Duration, progressive bool) *Coordinator {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Coordinator{
		runner:      runner,
		debounce:    debounce,
		progressive: progressive,
		state:       StateIdle,
	}
}

// SetQuery is the single input driving the pipeline. Every call resets
// the debounce timer; nothing is fetched until input has been quiet for
// the full interval.
func (c *Coordinator) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query = query
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.current != nil {
		c.current.cancel()
		c.current = nil
	}
	c.state = StateDebouncing
	c.timer = time.AfterFunc(c.debounce, func() { c.fire(query) })
}

// Retry re-submits the current query through the normal debounce path.
func (c *Coordinator) Retry() {
	c.mu.Lock()
	query := c.query
	c.mu.Unlock()
	c.SetQuery(query)
}

// Stop cancels whatever is pending. Cancelled is only entered from
// Debouncing or Fetching; a settled state stays as it is.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.current != nil {
		c.current.cancel()
		c.current = nil
	}
	if c.state == StateDebouncing || c.state == StateFetching {
		c.state = StateCancelled
	}
}

// fire moves a quiesced query from Debouncing to Fetching. The query
// recheck guards against a timer firing after a newer keystroke already
// replaced it.
func (c *Coordinator) fire(query string) {
	c.mu.Lock()
	if c.query != query || c.state != StateDebouncing {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &inflightBatch{id: uuid.New(), query: query, cancel: cancel}
	c.current = b
	c.state = StateFetching
	c.mu.Unlock()

	go c.run(ctx, b)
}

func (c *Coordinator) run(ctx context.Context, b *inflightBatch) {
	defer b.cancel()

	var onPartial func([]models.ContentItem)
	if c.progressive {
		onPartial = func(items []models.ContentItem) { c.publishPartial(b, items) }
	}

	results, err := c.runner.Search(ctx, b.query, onPartial)

	c.mu.Lock()
	defer c.mu.Unlock()
	b.finalDone = true
	if c.current != b {
		// Superseded while fetching; the newer batch owns the snapshot.
		return
	}
	c.current = nil

	if err != nil {
		if isCancellation(err) {
			c.state = StateCancelled
			return
		}
		log.Printf("[coordinator] batch %s for %q failed: %v", b.id, b.query, err)
		// Results keep their last-known value on a visible error; only
		// the error summary changes. Retry goes back through SetQuery.
		c.state = StateFailed
		c.errMsg = presentableError(err)
		c.partial = false
		return
	}

	c.state = StateSucceeded
	c.results = results
	c.partial = false
	c.errMsg = ""
}

// publishPartial shows the first few items from the fastest source while
// the rest of the batch is still in flight. It never runs after the final
// publish for the batch and never for a superseded batch.
func (c *Coordinator) publishPartial(b *inflightBatch, items []models.ContentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != b || b.finalDone {
		return
	}
	n := len(items)
	if n > partialPublishLimit {
		n = partialPublishLimit
	}
	c.results = append([]models.ContentItem(nil), items[:n]...)
	c.partial = true
}

// Snapshot returns a copy of the observable state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	results := make([]models.ContentItem, len(c.results))
	copy(results, c.results)
	return Snapshot{
		Query:   c.query,
		State:   c.state,
		Loading: c.state == StateDebouncing || c.state == StateFetching,
		Partial: c.partial,
		Error:   c.errMsg,
		Results: results,
	}
}

// presentableError turns a pipeline error into the summary shown to the
// user. Cancellation never reaches here.
func presentableError(err error) string {
	var all *AllSourcesFailedError
	if errors.As(err, &all) {
		return "could not reach the catalog service; check your connection and retry"
	}
	return "something went wrong fetching results; retry in a moment"
}
