// Package memstore provides in-memory repositories with the same behaviour as
// the MongoDB ones. Tests use them in place of a database.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/rozeen-shrestha/confession/database"
	"github.com/rozeen-shrestha/confession/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Confessions struct {
	mu    sync.Mutex
	items []models.Confession
	// Err, when set, is returned by every call.
	Err error
}

func NewConfessions() *Confessions {
	return &Confessions{}
}

func (s *Confessions) Insert(_ context.Context, c *models.Confession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if c.ID.IsZero() {
		c.ID = bson.NewObjectID()
	}
	s.items = append(s.items, *c)
	return nil
}

func (s *Confessions) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.items)), nil
}

func (s *Confessions) FindPage(_ context.Context, skip, limit int64) ([]models.Confession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	sorted := make([]models.Confession, len(s.items))
	copy(sorted, s.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID.Hex() > sorted[j].ID.Hex()
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	if skip < 0 || limit < 0 || skip >= int64(len(sorted)) {
		return []models.Confession{}, nil
	}
	end := skip + limit
	if end > int64(len(sorted)) {
		end = int64(len(sorted))
	}
	return sorted[skip:end], nil
}

func (s *Confessions) FindByID(_ context.Context, id bson.ObjectID) (*models.Confession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.items {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, database.ErrNotFound
}

// All returns the stored confessions in insertion order.
func (s *Confessions) All() []models.Confession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Confession, len(s.items))
	copy(out, s.items)
	return out
}

type Users struct {
	mu    sync.Mutex
	users []models.User
}

func NewUsers(seed ...models.User) *Users {
	u := &Users{}
	for _, user := range seed {
		if user.ID.IsZero() {
			user.ID = bson.NewObjectID()
		}
		u.users = append(u.users, user)
	}
	return u
}

func (s *Users) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *Users) InsertIfAbsent(_ context.Context, u *models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return false, nil
		}
	}
	u.ID = bson.NewObjectID()
	s.users = append(s.users, *u)
	return true, nil
}

type Counters struct {
	mu   sync.Mutex
	seqs map[string]int64
	// Calls counts every Next call, successful or not.
	Calls int
}

func NewCounters() *Counters {
	return &Counters{seqs: make(map[string]int64)}
}

func (s *Counters) Next(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.seqs[name]++
	return s.seqs[name], nil
}

func (s *Counters) Value(name string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[name]
}
