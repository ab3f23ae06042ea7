// Package queue holds enriched posts between enrichment and the admin's
// decision. A post enters after enrichment and leaves on approve (after a
// successful publish) or reject; there is no expiry.
package queue

import (
	"sort"
	"sync"

	"github.com/trungnb/gigfeed/internal/models"
)

// PendingQueue maps item IDs to their enriched posts. All methods are safe
// for concurrent use; the ingestion tick, the bot update loop, and the admin
// API run on separate goroutines.
type PendingQueue struct {
	mu    sync.RWMutex
	posts map[string]models.PendingPost
}

// New builds an empty queue.
func New() *PendingQueue {
	return &PendingQueue{posts: make(map[string]models.PendingPost)}
}

// Put inserts or replaces the post under its ID.
func (q *PendingQueue) Put(post models.PendingPost) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.posts[post.ID] = post
}

// Get returns the post for the ID, if pending.
func (q *PendingQueue) Get(id string) (models.PendingPost, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	post, ok := q.posts[id]
	return post, ok
}

// Remove deletes the post and reports whether it was present.
func (q *PendingQueue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.posts[id]
	delete(q.posts, id)
	return ok
}

// List returns all pending posts, oldest first.
func (q *PendingQueue) List() []models.PendingPost {
	q.mu.RLock()
	defer q.mu.RUnlock()

	posts := make([]models.PendingPost, 0, len(q.posts))
	for _, post := range q.posts {
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].QueuedAt.Equal(posts[j].QueuedAt) {
			return posts[i].ID < posts[j].ID
		}
		return posts[i].QueuedAt.Before(posts[j].QueuedAt)
	})
	return posts
}

// Len returns the number of pending posts.
func (q *PendingQueue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.posts)
}
