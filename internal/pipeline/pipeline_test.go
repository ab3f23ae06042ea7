package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/trungnb/gigfeed/internal/dedup"
	"github.com/trungnb/gigfeed/internal/filter"
	"github.com/trungnb/gigfeed/internal/models"
	"github.com/trungnb/gigfeed/internal/queue"
)

type fakeSource struct {
	items map[string][]models.CandidateItem
	errs  map[string]error
	calls []string
}

func (s *fakeSource) ListNew(ctx context.Context, source string, limit int) ([]models.CandidateItem, error) {
	s.calls = append(s.calls, source)
	if err := s.errs[source]; err != nil {
		return nil, err
	}
	items := s.items[source]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type echoTranslator struct{}

func (echoTranslator) Translate(ctx context.Context, text string) string { return "vi:" + text }

type fixedClassifier struct {
	label string
	err   error
}

func (c fixedClassifier) Predict(text string) (string, error) { return c.label, c.err }

type recordingNotifier struct {
	notified []models.PendingPost
	err      error
}

func (n *recordingNotifier) Notify(ctx context.Context, post models.PendingPost) error {
	n.notified = append(n.notified, post)
	return n.err
}

func newIngestor(src Source, notifier *recordingNotifier, classifier Classifier) (*Ingestor, *queue.PendingQueue, dedup.SeenStore) {
	q := queue.New()
	seen := dedup.NewMemoryStore(0)
	in := NewIngestor(Deps{
		Source:       src,
		Seen:         seen,
		Keywords:     filter.New([]string{"task", "micro job", "hiring"}),
		Classifier:   classifier,
		Translator:   echoTranslator{},
		Queue:        q,
		Notifier:     notifier,
		Sources:      []string{"slavelabour", "forhire"},
		FetchLimit:   10,
		BodyMaxChars: 500,
	})
	return in, q, seen
}

func TestRunQueuesMatchingItems(t *testing.T) {
	src := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {
			{ID: "a1", Source: "slavelabour", Title: "[TASK] need a logo", Body: "small gig", Permalink: "https://reddit.com/a1"},
			{ID: "a2", Source: "slavelabour", Title: "rant about mods", Body: "noise"},
		},
	}}
	notifier := &recordingNotifier{}
	in, q, _ := newIngestor(src, notifier, fixedClassifier{label: "#Design"})

	in.Run(context.Background())

	post, ok := q.Get("a1")
	if !ok {
		t.Fatal("expected a1 queued")
	}
	if post.Title != "vi:[TASK] need a logo" {
		t.Errorf("title not translated: %q", post.Title)
	}
	if post.Body != "vi:small gig" {
		t.Errorf("body not translated: %q", post.Body)
	}
	if post.Category != "#Design" {
		t.Errorf("category = %q", post.Category)
	}
	if post.SourceURL != "https://reddit.com/a1" {
		t.Errorf("source URL = %q", post.SourceURL)
	}
	if post.QueuedAt.IsZero() {
		t.Error("expected QueuedAt to be set")
	}

	if _, ok := q.Get("a2"); ok {
		t.Error("expected a2 filtered out")
	}
	if len(notifier.notified) != 1 || notifier.notified[0].ID != "a1" {
		t.Errorf("expected one notification for a1, got %v", notifier.notified)
	}
}

func TestRunSecondTickSkipsSeen(t *testing.T) {
	src := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {
			{ID: "a1", Title: "[TASK] need a logo", Permalink: "https://reddit.com/a1"},
		},
	}}
	notifier := &recordingNotifier{}
	in, q, _ := newIngestor(src, notifier, fixedClassifier{label: "#Design"})

	in.Run(context.Background())
	q.Remove("a1") // admin decided in between

	in.Run(context.Background())

	if q.Len() != 0 {
		t.Error("expected a1 not re-queued on second tick")
	}
	if len(notifier.notified) != 1 {
		t.Errorf("expected one notification across both ticks, got %d", len(notifier.notified))
	}
}

func TestFilteredItemsAreStillMarkedSeen(t *testing.T) {
	src := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {{ID: "a2", Title: "rant about mods"}},
	}}
	in, _, seen := newIngestor(src, &recordingNotifier{}, fixedClassifier{label: "#Tech"})

	in.Run(context.Background())

	ok, err := seen.HasSeen(context.Background(), "a2")
	if err != nil {
		t.Fatalf("HasSeen returned error: %v", err)
	}
	if !ok {
		t.Error("expected filtered item marked seen")
	}
}

func TestFailedSourceIsSkipped(t *testing.T) {
	src := &fakeSource{
		items: map[string][]models.CandidateItem{
			"forhire": {{ID: "b1", Title: "[Hiring] translator needed"}},
		},
		errs: map[string]error{"slavelabour": errors.New("503 from upstream")},
	}
	in, q, _ := newIngestor(src, &recordingNotifier{}, fixedClassifier{label: "#Translation"})

	in.Run(context.Background())

	if len(src.calls) != 2 {
		t.Errorf("expected both sources attempted, got %v", src.calls)
	}
	if _, ok := q.Get("b1"); !ok {
		t.Error("expected forhire item queued despite slavelabour failure")
	}
}

func TestClassifierErrorLeavesItemSeenButNotQueued(t *testing.T) {
	src := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {{ID: "a1", Title: "[TASK] need a logo"}},
	}}
	notifier := &recordingNotifier{}
	in, q, seen := newIngestor(src, notifier, fixedClassifier{err: models.ErrModelUnavailable})

	in.Run(context.Background())

	if q.Len() != 0 {
		t.Error("expected nothing queued when classification fails")
	}
	if len(notifier.notified) != 0 {
		t.Error("expected no notification when classification fails")
	}
	if ok, _ := seen.HasSeen(context.Background(), "a1"); !ok {
		t.Error("expected item still marked seen")
	}
}

func TestNotifyFailureKeepsPostQueued(t *testing.T) {
	src := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {{ID: "a1", Title: "micro job: data entry"}},
	}}
	notifier := &recordingNotifier{err: errors.New("chat unreachable")}
	in, q, _ := newIngestor(src, notifier, fixedClassifier{label: "#DataEntry"})

	in.Run(context.Background())

	if _, ok := q.Get("a1"); !ok {
		t.Error("expected post to stay queued when notification fails")
	}
}

func TestBodyTruncatedBeforeTranslation(t *testing.T) {
	long := strings.Repeat("ồ", 600)
	src := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {{ID: "a1", Title: "[TASK] long body", Body: long}},
	}}
	in, q, _ := newIngestor(src, &recordingNotifier{}, fixedClassifier{label: "#Content"})

	in.Run(context.Background())

	post, ok := q.Get("a1")
	if !ok {
		t.Fatal("expected a1 queued")
	}
	want := "vi:" + strings.Repeat("ồ", 500)
	if post.Body != want {
		t.Errorf("body not truncated to 500 runes before translation, got %d runes", len([]rune(post.Body)))
	}
}

// blockingSource holds every fetch until release is closed, signalling
// started on the first one.
type blockingSource struct {
	inner   *fakeSource
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *blockingSource) ListNew(ctx context.Context, source string, limit int) ([]models.CandidateItem, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return s.inner.ListNew(ctx, source, limit)
}

func TestOverlappingRunIsSkipped(t *testing.T) {
	inner := &fakeSource{items: map[string][]models.CandidateItem{
		"slavelabour": {{ID: "a1", Title: "[TASK] need a logo", Permalink: "https://reddit.com/a1"}},
	}}
	src := &blockingSource{
		inner:   inner,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	notifier := &recordingNotifier{}
	in, q, _ := newIngestor(src, notifier, fixedClassifier{label: "#Design"})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		in.Run(context.Background())
	}()

	<-src.started

	// A second tick while the first run is still fetching must be a no-op,
	// not a second pass over the same listing.
	in.Run(context.Background())
	close(src.release)
	wg.Wait()

	if got := len(inner.calls); got != 2 {
		t.Errorf("expected one fetch per source from a single run, got %d", got)
	}
	if q.Len() != 1 {
		t.Errorf("expected a1 queued exactly once, queue has %d posts", q.Len())
	}
	if len(notifier.notified) != 1 {
		t.Errorf("expected the admin prompted exactly once, got %d notifications", len(notifier.notified))
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("héllo", 3); got != "hél" {
		t.Errorf("truncate(héllo, 3) = %q", got)
	}
	if got := truncate("short", 500); got != "short" {
		t.Errorf("truncate(short, 500) = %q", got)
	}
	if got := truncate("anything", 0); got != "anything" {
		t.Errorf("truncate with max 0 = %q", got)
	}
}
