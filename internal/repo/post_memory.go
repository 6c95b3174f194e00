package repo

import (
	"context"
	"sync"
	"time"

	"github.com/sbelkacem/gosocial/internal/models"
)

// MemoryPostStore keeps posts in a slice guarded by a mutex, the shape the
// original system shipped with. It does not survive a restart.
type MemoryPostStore struct {
	mu     sync.RWMutex
	posts  []models.Post
	nextID int
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{nextID: 1}
}

func (s *MemoryPostStore) Create(ctx context.Context, userID int, text string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := models.Post{
		ID:        s.nextID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *MemoryPostStore) GetByID(ctx context.Context, id int) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *MemoryPostStore) UpdateText(ctx context.Context, id int, text string) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Text = text
			return s.posts[i], nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *MemoryPostStore) DeleteByIDAndOwner(ctx context.Context, id, userID int) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.posts {
		if p.ID == id && p.UserID == userID {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return p, nil
		}
	}
	return models.Post{}, ErrNotFound
}

func (s *MemoryPostStore) ListByOwner(ctx context.Context, userID int) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (s *MemoryPostStore) CountByOwner(ctx context.Context, userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.posts {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}
