// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/futig/docqa-backend/internal/entity"
	"github.com/futig/docqa-backend/internal/repository"
)

var (
	_ repository.UserRepository     = (*Users)(nil)
	_ repository.DocumentRepository = (*Documents)(nil)
	_ repository.QuestionRepository = (*Questions)(nil)
)

// Store keeps users, documents and questions with the same ownership rules
// as the postgres repositories.
type Store struct {
	mu        sync.Mutex
	now       time.Time
	users     map[string]*entity.User
	documents map[string]*entity.Document
	questions map[string]*entity.Question
}

func NewStore() *Store {
	return &Store{
		now:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:     map[string]*entity.User{},
		documents: map[string]*entity.Document{},
		questions: map[string]*entity.Question{},
	}
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (s *Store) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *Store) Users() *Users         { return &Users{s} }
func (s *Store) Documents() *Documents { return &Documents{s} }
func (s *Store) Questions() *Questions { return &Questions{s} }

// QuestionCount reports how many Q&A records are stored.
func (s *Store) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

type Users struct{ s *Store }

func (r *Users) Create(_ context.Context, u entity.User) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return nil, entity.ErrUserExists
		}
	}
	u.CreatedAt = r.s.tick()
	r.s.users[u.ID] = &u
	out := u
	return &out, nil
}

func (r *Users) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *Users) GetByToken(_ context.Context, token string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.APIToken == token {
			out := *u
			return &out, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

type Documents struct{ s *Store }

func (r *Documents) Create(_ context.Context, doc entity.Document) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc.CreatedAt = r.s.tick()
	doc.UpdatedAt = doc.CreatedAt
	r.s.documents[doc.ID] = &doc
	out := doc
	return &out, nil
}

func (r *Documents) GetByOwner(_ context.Context, id, userID string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.documents[id]
	if !ok || doc.UserID != userID {
		return nil, entity.ErrDocumentNotFound
	}
	out := *doc
	return &out, nil
}

func (r *Documents) ListByOwner(_ context.Context, userID string, skip, limit int) ([]*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	docs := make([]*entity.Document, 0)
	for _, doc := range r.s.documents {
		if doc.UserID == userID {
			out := *doc
			docs = append(docs, &out)
		}
	}
	slices.SortFunc(docs, func(a, b *entity.Document) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	if skip >= len(docs) {
		return []*entity.Document{}, nil
	}
	return docs[skip:min(skip+limit, len(docs))], nil
}

func (r *Documents) UpdateTitle(_ context.Context, id, userID, title string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.documents[id]
	if !ok || doc.UserID != userID {
		return nil, entity.ErrDocumentNotFound
	}
	doc.Title = title
	doc.UpdatedAt = r.s.tick()
	out := *doc
	return &out, nil
}

func (r *Documents) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, ok := r.s.documents[id]
	if !ok || doc.UserID != userID {
		return entity.ErrDocumentNotFound
	}
	delete(r.s.documents, id)
	for qid, q := range r.s.questions {
		if q.DocumentID == id {
			delete(r.s.questions, qid)
		}
	}
	return nil
}

type Questions struct{ s *Store }

func (r *Questions) Create(_ context.Context, q entity.Question) (*entity.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q.CreatedAt = r.s.tick()
	r.s.questions[q.ID] = &q
	out := q
	return &out, nil
}

func (r *Questions) owned(q *entity.Question, userID string) bool {
	doc, ok := r.s.documents[q.DocumentID]
	return ok && doc.UserID == userID
}

func (r *Questions) GetByOwner(_ context.Context, id, userID string) (*entity.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.questions[id]
	if !ok || !r.owned(q, userID) {
		return nil, entity.ErrQuestionNotFound
	}
	out := *q
	return &out, nil
}

func (r *Questions) ListByOwner(_ context.Context, userID, documentID string) ([]*entity.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	questions := make([]*entity.Question, 0)
	for _, q := range r.s.questions {
		if !r.owned(q, userID) || (documentID != "" && q.DocumentID != documentID) {
			continue
		}
		out := *q
		questions = append(questions, &out)
	}
	slices.SortFunc(questions, func(a, b *entity.Question) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	return questions, nil
}

func (r *Questions) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.questions[id]
	if !ok || !r.owned(q, userID) {
		return entity.ErrQuestionNotFound
	}
	delete(r.s.questions, id)
	return nil
}
