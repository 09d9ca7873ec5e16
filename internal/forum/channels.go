package forum

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/GianniRod/Real-Futbol/internal/models"
	"github.com/GianniRod/Real-Futbol/internal/store"
)

// Subscription lifecycle for the engine: at most one live message/reaction
// pair exists at a time. Open tears the previous pair down before binding
// the new context, and a generation counter makes in-flight snapshots from a
// canceled pair fall on the floor instead of landing in a reopened view.

// Open switches the engine to a forum context. Any previously active
// subscription pair is canceled first, so two contexts never deliver into
// the same view.
func (e *Engine) Open(forumContext string) error {
	if e.deps.Live == nil {
		return fmt.Errorf("open %q: live store unavailable: %w", forumContext, ErrUpstreamUnavailable)
	}
	if forumContext == "" {
		return fmt.Errorf("open: empty context: %w", ErrInvalidOperation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.closeLocked()
	e.generation++
	gen := e.generation
	e.context = forumContext

	fetch := func() (interface{}, error) {
		return e.deps.Messages.GetByContext(forumContext)
	}
	sub, err := e.deps.Live.Subscribe(store.MessagesChannel(forumContext), fetch)
	if err != nil {
		e.context = ""
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	e.msgSub = sub

	go e.pumpMessages(sub, gen)
	return nil
}

// Close cancels the active subscription pair and clears the view state
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
	// bump the generation so snapshots already in flight are discarded
	e.generation++
}

func (e *Engine) closeLocked() {
	if e.msgSub != nil {
		e.msgSub.Cancel()
		e.msgSub = nil
	}
	if e.reactSub != nil {
		e.reactSub.Cancel()
		e.reactSub = nil
	}
	e.context = ""
	e.delivered = false
	e.visible = nil
	e.watched = nil
	e.aggregates = make(map[uuid.UUID]models.ReactionSummary)
}

// Active reports whether a subscription pair is currently bound
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.msgSub != nil
}

func (e *Engine) pumpMessages(sub *store.Subscription, gen int) {
	for snapshot := range sub.Updates() {
		messages, ok := snapshot.([]models.Message)
		if !ok {
			continue
		}
		e.applyMessages(gen, messages)
	}
}

func (e *Engine) pumpReactions(sub *store.Subscription, gen, reactGen int) {
	for snapshot := range sub.Updates() {
		reactions, ok := snapshot.([]models.Reaction)
		if !ok {
			continue
		}
		e.applyReactions(gen, reactGen, reactions)
	}
}

// applyMessages recomputes the ordered view from a full message snapshot.
// Duplicate deliveries of the same snapshot are harmless because everything
// derives from the snapshot, never from a diff.
func (e *Engine) applyMessages(gen int, snapshot []models.Message) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		// canceled mid-flight; the view this belonged to is gone
		return
	}

	e.visible = VisibleMessages(snapshot)
	e.delivered = true

	watched := WatchedIDs(e.visible, e.deps.MaxWatchedMessages)
	if !equalIDs(watched, e.watched) {
		e.watched = watched
		e.rebindReactionsLocked(gen)
	}

	e.emitLocked()
}

// applyReactions recomputes all aggregates from a full reaction snapshot.
// Both counters must still be current: a rebound reaction feed within the
// same context must not let the replaced feed's last snapshot land.
func (e *Engine) applyReactions(gen, reactGen int, snapshot []models.Reaction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation || reactGen != e.reactGeneration {
		return
	}

	e.aggregates = Aggregate(snapshot, e.viewer)
	e.emitLocked()
}

// rebindReactionsLocked re-derives the reaction feed for the current watched
// id set. Ids past the store's IN bound are not watched; their aggregates
// stay at zero.
func (e *Engine) rebindReactionsLocked(gen int) {
	if e.reactSub != nil {
		e.reactSub.Cancel()
		e.reactSub = nil
	}
	e.reactGeneration++

	if len(e.watched) == 0 {
		e.aggregates = make(map[uuid.UUID]models.ReactionSummary)
		return
	}

	ids := make([]uuid.UUID, len(e.watched))
	copy(ids, e.watched)
	fetch := func() (interface{}, error) {
		return e.deps.Reactions.GetByMessageIDs(ids)
	}

	sub, err := e.deps.Live.Subscribe(store.ReactionsChannel(e.context), fetch)
	if err != nil {
		// reaction aggregation degrades to zero counts until the next
		// message snapshot retriggers the rebind
		log.Printf("failed to watch reactions on %s: %v", e.context, err)
		e.watched = nil
		return
	}
	e.reactSub = sub
	go e.pumpReactions(sub, gen, e.reactGeneration)
}

func equalIDs(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
