// Package pipeline drives the poll → dedup → filter → enrich → enqueue →
// notify sequence for every configured source.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/trungnb/gigfeed/internal/dedup"
	"github.com/trungnb/gigfeed/internal/filter"
	"github.com/trungnb/gigfeed/internal/logger"
	"github.com/trungnb/gigfeed/internal/models"
	"github.com/trungnb/gigfeed/internal/queue"
)

// Source lists the newest candidate items of a named source.
type Source interface {
	ListNew(ctx context.Context, source string, limit int) ([]models.CandidateItem, error)
}

// Translator translates pipeline text, falling back to the input on failure.
type Translator interface {
	Translate(ctx context.Context, text string) string
}

// Classifier predicts a category label for an item's text.
type Classifier interface {
	Predict(text string) (string, error)
}

// Notifier tells the admin about a freshly queued post.
type Notifier interface {
	Notify(ctx context.Context, post models.PendingPost) error
}

// Deps wires the collaborators of the ingestion pipeline.
type Deps struct {
	Source     Source
	Seen       dedup.SeenStore
	Keywords   filter.Keywords
	Classifier Classifier
	Translator Translator
	Queue      *queue.PendingQueue
	Notifier   Notifier

	Sources      []string
	FetchLimit   int
	BodyMaxChars int
}

// Ingestor runs one ingestion pass per tick. Runs never overlap: the seen
// gate is a check-then-mark pair, so two concurrent passes over the same
// listing could both pass it for the same ID.
type Ingestor struct {
	mu   sync.Mutex
	deps Deps
	now  func() time.Time
}

// NewIngestor builds the pipeline from its dependencies.
func NewIngestor(deps Deps) *Ingestor {
	return &Ingestor{deps: deps, now: time.Now}
}

// Run processes every configured source in declared order. A failed source
// is logged and skipped; the remaining sources are still processed. There is
// no retry or backoff: a failed source waits for the next tick. When the
// previous run is still in progress, Run returns without doing anything.
func (in *Ingestor) Run(ctx context.Context) {
	log := logger.Get()
	if !in.mu.TryLock() {
		log.Warn().Msg("Previous ingestion run still in progress, skipping this tick")
		return
	}
	defer in.mu.Unlock()

	start := in.now()
	log.Info().
		Int("sources", len(in.deps.Sources)).
		Msg("Starting ingestion run")

	var queued int
	for _, name := range in.deps.Sources {
		n, err := in.runSource(ctx, name)
		if err != nil {
			log.Error().
				Err(err).
				Str("source", name).
				Msg("Error fetching source, skipping until next run")
			continue
		}
		queued += n
	}

	log.Info().
		Int("queued", queued).
		Dur("duration", in.now().Sub(start)).
		Msg("Finished ingestion run")
}

func (in *Ingestor) runSource(ctx context.Context, name string) (int, error) {
	items, err := in.deps.Source.ListNew(ctx, name, in.deps.FetchLimit)
	if err != nil {
		return 0, err
	}

	log := logger.Get()
	var queued int
	for _, item := range items {
		seen, err := in.deps.Seen.HasSeen(ctx, item.ID)
		if err != nil {
			log.Error().Err(err).Str("item_id", item.ID).Msg("Seen-store lookup failed, skipping item")
			continue
		}
		if seen {
			continue
		}

		// Mark before the relevance filter: an item inspected once is never
		// inspected again, even when it is filtered out.
		if err := in.deps.Seen.MarkSeen(ctx, item.ID); err != nil {
			log.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to mark item seen")
		}

		if !in.deps.Keywords.Match(item.Title) {
			continue
		}

		post, err := in.enrich(ctx, item)
		if err != nil {
			log.Error().
				Err(err).
				Str("item_id", item.ID).
				Msg("Enrichment failed, item not enqueued")
			continue
		}

		in.deps.Queue.Put(post)
		queued++

		if err := in.deps.Notifier.Notify(ctx, post); err != nil {
			// The post is already pending; the admin can still find it via
			// /pending or the API.
			log.Warn().Err(err).Str("item_id", item.ID).Msg("Failed to notify admin")
		}
	}

	log.Debug().
		Str("source", name).
		Int("fetched", len(items)).
		Int("queued", queued).
		Msg("Source processed")
	return queued, nil
}

// enrich translates the title and the truncated body and predicts the
// category from the original title, where the signal terms still are.
func (in *Ingestor) enrich(ctx context.Context, item models.CandidateItem) (models.PendingPost, error) {
	category, err := in.deps.Classifier.Predict(item.Title)
	if err != nil {
		return models.PendingPost{}, err
	}

	return models.PendingPost{
		ID:        item.ID,
		Title:     in.deps.Translator.Translate(ctx, item.Title),
		Body:      in.deps.Translator.Translate(ctx, truncate(item.Body, in.deps.BodyMaxChars)),
		Category:  category,
		SourceURL: item.Permalink,
		QueuedAt:  in.now().UTC(),
	}, nil
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
