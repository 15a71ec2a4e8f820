package annotate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/react-native-community/vscode-react-native-directory/pkg/manifest"
	"github.com/react-native-community/vscode-react-native-directory/pkg/observability"
)

const (
	// DefaultDelay is the debounce applied to editor events.
	DefaultDelay = 500 * time.Millisecond

	statusDuration = 2500 * time.Millisecond
	statusPrefix   = "React Native Directory: "
)

// Options wires a Controller to its collaborators.
type Options struct {
	Editor    Editor
	Directory Directory
	Sink      Sink
	Status    StatusReporter // optional
	Logger    *log.Logger    // optional
	Delay     time.Duration  // debounce; non-positive selects DefaultDelay
}

// Controller keeps the decorations of the active manifest in sync with the
// directory. Editor events schedule a debounced refresh; each refresh mints
// a new token and cancels the previous one, and only the holder of the
// current token may write to the sink.
//
// All methods are safe for concurrent use.
type Controller struct {
	editor Editor
	dir    Directory
	sink   Sink
	status StatusReporter
	logger *log.Logger
	delay  time.Duration

	base     context.Context
	stopBase context.CancelFunc

	mu       sync.Mutex
	started  bool
	stopped  bool
	timer    *time.Timer
	timerGen uint64
	token    uint64
	cancel   context.CancelFunc
	inflight sync.WaitGroup
}

// New creates a stopped Controller. Call Start to begin reacting to events.
func New(opts Options) *Controller {
	c := &Controller{
		editor: opts.Editor,
		dir:    opts.Directory,
		sink:   opts.Sink,
		status: opts.Status,
		logger: opts.Logger,
		delay:  opts.Delay,
	}
	if c.status == nil {
		c.status = nopStatus{}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	if c.delay <= 0 {
		c.delay = DefaultDelay
	}
	c.base, c.stopBase = context.WithCancel(context.Background())
	return c
}

// Start activates the controller and refreshes the active document
// immediately. Calling Start more than once, or after Stop, has no effect.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.trigger(0)
}

// Stop cancels the pending timer and the in-flight refresh, then waits for
// that refresh to return. The sink is never written after Stop returns.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	c.timerGen++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.stopBase()
	c.inflight.Wait()
}

// ActiveEditorChanged handles a switch of the focused document.
func (c *Controller) ActiveEditorChanged() { c.trigger(c.delay) }

// DocumentOpened handles a newly opened document.
func (c *Controller) DocumentOpened(Document) { c.trigger(c.delay) }

// DocumentChanged handles an edit. Edits to documents other than the active
// one are ignored.
func (c *Controller) DocumentChanged(doc Document) {
	active, ok := c.editor.ActiveDocument()
	if !ok || active.URI() != doc.URI() {
		return
	}
	c.trigger(c.delay)
}

// Refresh re-annotates the active document without debouncing.
func (c *Controller) Refresh() { c.trigger(0) }

// Token returns the identifier of the most recent refresh.
func (c *Controller) Token() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// trigger clears decorations when the active document is not a manifest and
// otherwise (re)arms the debounce timer.
func (c *Controller) trigger(delay time.Duration) {
	if !c.running() {
		return
	}
	doc, ok := c.editor.ActiveDocument()
	if !ok {
		return
	}
	isManifest := manifest.IsManifest(doc.Path(), doc.LanguageID())

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || c.stopped {
		return
	}
	if !isManifest {
		c.sink.SetDecorations(doc.URI(), nil)
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerGen++
	gen := c.timerGen
	c.timer = time.AfterFunc(delay, func() { c.fire(gen) })
}

func (c *Controller) running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started && !c.stopped
}

// fire runs when the debounce timer expires. A timer that was re-armed or
// stopped after it started firing is ignored.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.stopped || gen != c.timerGen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	doc, ok := c.editor.ActiveDocument()
	if !ok || !manifest.IsManifest(doc.Path(), doc.LanguageID()) {
		return
	}

	ctx, token, ok := c.mint()
	if !ok {
		return
	}
	defer c.inflight.Done()
	c.refresh(ctx, token, doc)
}

// mint supersedes the current refresh: it cancels its context and issues a
// new token.
func (c *Controller) mint() (context.Context, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return nil, 0, false
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(c.base)
	c.token++
	c.cancel = cancel
	c.inflight.Add(1)
	return ctx, c.token, true
}

func (c *Controller) refresh(ctx context.Context, token uint64, doc Document) {
	uri := doc.URI()
	refs := manifest.ParseDependencyRefs(doc.Text())
	if len(refs) == 0 {
		c.logger.Debug("no dependencies to annotate", "uri", uri)
		c.paint(token, uri, nil)
		return
	}

	hooks := observability.Annotate()
	hooks.OnRefreshStart(ctx, uri, len(refs))
	start := time.Now()
	c.status.Info(fmt.Sprintf("%sannotating %d dependencies…", statusPrefix, len(refs)), statusDuration)

	libs, err := c.dir.Lookup(ctx, manifest.Names(refs))
	if err != nil {
		if ctx.Err() != nil {
			c.logger.Debug("refresh cancelled", "uri", uri, "token", token)
			hooks.OnRefreshSuperseded(ctx, uri, token)
			return
		}
		if !c.isCurrent(token) {
			hooks.OnRefreshSuperseded(ctx, uri, token)
			return
		}
		c.logger.Warn("directory lookup failed", "uri", uri, "err", err)
		c.status.Warn(statusPrefix+"failed to load annotations", statusDuration)
		hooks.OnRefreshComplete(ctx, uri, 0, time.Since(start), err)
		return
	}

	decorations := Render(refs, libs)
	if !c.paint(token, uri, decorations) {
		c.logger.Debug("discarding superseded refresh", "uri", uri, "token", token)
		hooks.OnRefreshSuperseded(ctx, uri, token)
		return
	}
	c.logger.Debug("annotated dependencies", "uri", uri, "refs", len(refs), "decorations", len(decorations))
	hooks.OnRefreshComplete(ctx, uri, len(decorations), time.Since(start), nil)
}

// paint hands decorations to the sink if token is still current. The lock is
// held across the sink call so a newer refresh cannot paint in between.
func (c *Controller) paint(token uint64, uri string, decorations []Decoration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || token != c.token {
		return false
	}
	c.sink.SetDecorations(uri, decorations)
	return true
}

func (c *Controller) isCurrent(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.stopped && token == c.token
}

type nopStatus struct{}

func (nopStatus) Info(string, time.Duration) {}
func (nopStatus) Warn(string, time.Duration) {}
