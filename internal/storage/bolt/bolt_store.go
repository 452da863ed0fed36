package bolt

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/trackgoals/trackgoals/internal/storage"
	"github.com/trackgoals/trackgoals/pkg/tracker"
	"go.etcd.io/bbolt"
)

const (
	usersBucket  = "users"
	emailsBucket = "emails"
	habitsBucket = "habits"
	goalsBucket  = "goals"
)

// Store keeps each document as JSON. Layout:
//
//	users/<userID>            -> user document
//	users/<userID>/habits/<id> -> habit document
//	users/<userID>/goals/<id>  -> goal document
//	emails/<email>            -> userID
//
// Owner scoping falls out of the layout: a foreign habit id simply isn't in
// the caller's bucket.
type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(usersBucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists([]byte(emailsBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) userBucket(tx *bbolt.Tx, userID string) (*bbolt.Bucket, error) {
	if tx.Writable() {
		return tx.Bucket([]byte(usersBucket)).CreateBucketIfNotExists([]byte(userID))
	}
	b := tx.Bucket([]byte(usersBucket)).Bucket([]byte(userID))
	if b == nil {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (s *Store) docBucket(tx *bbolt.Tx, userID, name string) (*bbolt.Bucket, error) {
	ub, err := s.userBucket(tx, userID)
	if err != nil {
		return nil, err
	}
	if tx.Writable() {
		return ub.CreateBucketIfNotExists([]byte(name))
	}
	b := ub.Bucket([]byte(name))
	if b == nil {
		return nil, storage.ErrNotFound
	}
	return b, nil
}

func (s *Store) CreateUser(u tracker.User) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		emails := tx.Bucket([]byte(emailsBucket))
		if emails.Get([]byte(u.Email)) != nil {
			return storage.ErrEmailTaken
		}

		ub, err := s.userBucket(tx, u.ID)
		if err != nil {
			return err
		}
		val, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if err := ub.Put([]byte("profile"), val); err != nil {
			return err
		}
		return emails.Put([]byte(u.Email), []byte(u.ID))
	})
}

func (s *Store) GetUserByEmail(email string) (tracker.User, error) {
	var u tracker.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		id := tx.Bucket([]byte(emailsBucket)).Get([]byte(email))
		if id == nil {
			return storage.ErrNotFound
		}
		ub := tx.Bucket([]byte(usersBucket)).Bucket(id)
		if ub == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(ub.Get([]byte("profile")), &u)
	})
	return u, err
}

func (s *Store) ListUsers() ([]tracker.User, error) {
	var out []tracker.User
	err := s.db.View(func(tx *bbolt.Tx) error {
		users := tx.Bucket([]byte(usersBucket))
		return users.ForEachBucket(func(k []byte) error {
			raw := users.Bucket(k).Get([]byte("profile"))
			if raw == nil {
				return nil
			}
			var u tracker.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return err
			}
			out = append(out, u)
			return nil
		})
	})
	return out, err
}

func (s *Store) CreateHabit(userID string, h tracker.Habit) error {
	return s.putDoc(userID, habitsBucket, h.ID, h)
}

func (s *Store) ListHabits(userID string) ([]tracker.Habit, error) {
	var out []tracker.Habit
	err := s.listDocs(userID, habitsBucket, func(v []byte) error {
		var h tracker.Habit
		if err := json.Unmarshal(v, &h); err != nil {
			return err
		}
		out = append(out, h)
		return nil
	})
	return out, err
}

func (s *Store) GetHabit(userID, habitID string) (tracker.Habit, error) {
	var h tracker.Habit
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, habitsBucket)
		if err != nil {
			return err
		}
		raw := b.Get([]byte(habitID))
		if raw == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(raw, &h)
	})
	return h, err
}

func (s *Store) AddHabitCompletion(userID, habitID string, ts time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, habitsBucket)
		if err != nil {
			return err
		}
		raw := b.Get([]byte(habitID))
		if raw == nil {
			return storage.ErrNotFound
		}
		var h tracker.Habit
		if err := json.Unmarshal(raw, &h); err != nil {
			return err
		}
		for _, existing := range h.CompletedDates {
			if existing.Equal(ts) {
				return nil
			}
		}
		h.CompletedDates = append(h.CompletedDates, ts)
		val, err := json.Marshal(h)
		if err != nil {
			return err
		}
		return b.Put([]byte(habitID), val)
	})
}

func (s *Store) DeleteHabit(userID, habitID string) error {
	return s.deleteDoc(userID, habitsBucket, habitID)
}

func (s *Store) CreateGoal(userID string, g tracker.Goal) error {
	return s.putDoc(userID, goalsBucket, g.ID, g)
}

func (s *Store) ListGoals(userID string) ([]tracker.Goal, error) {
	var out []tracker.Goal
	err := s.listDocs(userID, goalsBucket, func(v []byte) error {
		var g tracker.Goal
		if err := json.Unmarshal(v, &g); err != nil {
			return err
		}
		out = append(out, g)
		return nil
	})
	return out, err
}

func (s *Store) GetGoal(userID, goalID string) (tracker.Goal, error) {
	var g tracker.Goal
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, goalsBucket)
		if err != nil {
			return err
		}
		raw := b.Get([]byte(goalID))
		if raw == nil {
			return storage.ErrNotFound
		}
		return json.Unmarshal(raw, &g)
	})
	return g, err
}

func (s *Store) UpdateGoal(userID string, g tracker.Goal) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, goalsBucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(g.ID)) == nil {
			return storage.ErrNotFound
		}
		val, err := json.Marshal(g)
		if err != nil {
			return err
		}
		return b.Put([]byte(g.ID), val)
	})
}

func (s *Store) SetGoalCompleted(userID, goalID string, at time.Time) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, goalsBucket)
		if err != nil {
			return err
		}
		raw := b.Get([]byte(goalID))
		if raw == nil {
			return storage.ErrNotFound
		}
		var g tracker.Goal
		if err := json.Unmarshal(raw, &g); err != nil {
			return err
		}
		g.Completed = true
		g.UpdatedAt = at
		val, err := json.Marshal(g)
		if err != nil {
			return err
		}
		return b.Put([]byte(goalID), val)
	})
}

func (s *Store) DeleteGoal(userID, goalID string) error {
	return s.deleteDoc(userID, goalsBucket, goalID)
}

func (s *Store) putDoc(userID, bucket, id string, doc any) error {
	if id == "" {
		return fmt.Errorf("empty document id")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, bucket)
		if err != nil {
			return err
		}
		val, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		return b.Put([]byte(id), val)
	})
}

func (s *Store) listDocs(userID, bucket string, fn func(v []byte) error) error {
	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, bucket)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			return fn(v)
		})
	})
	// A user who never stored anything has no bucket yet; that's an empty
	// list, not an error.
	if err == storage.ErrNotFound {
		return nil
	}
	return err
}

func (s *Store) deleteDoc(userID, bucket, id string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := s.docBucket(tx, userID, bucket)
		if err != nil {
			return err
		}
		if b.Get([]byte(id)) == nil {
			return storage.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

var _ storage.Store = (*Store)(nil)
