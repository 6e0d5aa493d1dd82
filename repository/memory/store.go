// Package memory 是基于内存的 repository.Storage 实现，用于开发和演示。
//
// 同一个 Store 内所有实体共用一个自增序列，因此 id 在不同实体之间也不会重复。
// 所有方法都由一把读写锁保护，可以被多个请求 goroutine 并发调用。
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
)

type Store struct {
	mu  sync.RWMutex
	seq int64
	now func() time.Time

	users     *table[models.User]
	boards    *table[models.Board]
	subjects  *table[models.Subject]
	materials *table[models.Material]
	notes     *table[models.Note]
	pyqPapers *table[models.PyqPaper]
}

type Option func(*Store)

// WithClock 替换时间来源，测试用
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:       time.Now,
		users:     newTable[models.User](),
		boards:    newTable[models.Board](),
		subjects:  newTable[models.Subject](),
		materials: newTable[models.Material](),
		notes:     newTable[models.Note](),
		pyqPapers: newTable[models.PyqPaper](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.Storage = (*Store)(nil)

// nextID 调用方必须持有写锁
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func get[T any](s *Store, t *table[T], id int64) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := t.at(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *row
	return &out, nil
}

func list[T any](s *Store, t *table[T], keep func(*T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.list(keep)
}

func update[T any](s *Store, t *table[T], id int64, apply func(*T)) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := t.at(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	apply(row)
	out := *row
	return &out, nil
}

func remove[T any](s *Store, t *table[T], id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.remove(id)
}

// ======================= User =======================

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return get(s, s.users, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	found := list(s, s.users, func(u *models.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return &found[0], nil
}

func (s *Store) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	u := models.NewUser(in)
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID()
	s.users.put(u.ID, u)
	return &u, nil
}

// ======================= Board =======================

func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	return list(s, s.boards, nil), nil
}

func (s *Store) GetBoard(ctx context.Context, id int64) (*models.Board, error) {
	return get(s, s.boards, id)
}

func (s *Store) CreateBoard(ctx context.Context, in models.InsertBoard) (*models.Board, error) {
	b := models.NewBoard(in)
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.nextID()
	b.CreatedAt = s.now()
	s.boards.put(b.ID, b)
	return &b, nil
}

func (s *Store) UpdateBoard(ctx context.Context, id int64, patch models.BoardPatch) (*models.Board, error) {
	return update(s, s.boards, id, func(b *models.Board) { patch.Apply(b) })
}

func (s *Store) DeleteBoard(ctx context.Context, id int64) (bool, error) {
	return remove(s, s.boards, id), nil
}

// ======================= Subject =======================

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return list(s, s.subjects, nil), nil
}

func (s *Store) ListSubjectsByBoard(ctx context.Context, boardID int64) ([]models.Subject, error) {
	return list(s, s.subjects, func(v *models.Subject) bool { return v.BoardID == boardID }), nil
}

func (s *Store) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return get(s, s.subjects, id)
}

func (s *Store) CreateSubject(ctx context.Context, in models.InsertSubject) (*models.Subject, error) {
	v := models.NewSubject(in)
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID()
	v.CreatedAt = s.now()
	s.subjects.put(v.ID, v)
	return &v, nil
}

func (s *Store) UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error) {
	return update(s, s.subjects, id, func(v *models.Subject) { patch.Apply(v) })
}

func (s *Store) DeleteSubject(ctx context.Context, id int64) (bool, error) {
	return remove(s, s.subjects, id), nil
}

// ======================= Material =======================

func (s *Store) ListMaterials(ctx context.Context) ([]models.Material, error) {
	return list(s, s.materials, nil), nil
}

func (s *Store) ListMaterialsBySubject(ctx context.Context, subjectID int64) ([]models.Material, error) {
	return list(s, s.materials, func(v *models.Material) bool { return v.SubjectID == subjectID }), nil
}

func (s *Store) ListMaterialsByBoard(ctx context.Context, boardID int64) ([]models.Material, error) {
	return list(s, s.materials, func(v *models.Material) bool { return v.BoardID == boardID }), nil
}

func (s *Store) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	return get(s, s.materials, id)
}

func (s *Store) CreateMaterial(ctx context.Context, in models.InsertMaterial) (*models.Material, error) {
	v := models.NewMaterial(in)
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID()
	v.CreatedAt = s.now()
	s.materials.put(v.ID, v)
	return &v, nil
}

func (s *Store) UpdateMaterial(ctx context.Context, id int64, patch models.MaterialPatch) (*models.Material, error) {
	return update(s, s.materials, id, func(v *models.Material) { patch.Apply(v) })
}

func (s *Store) DeleteMaterial(ctx context.Context, id int64) (bool, error) {
	return remove(s, s.materials, id), nil
}

// ======================= Note =======================

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	return list(s, s.notes, nil), nil
}

func (s *Store) ListNotesBySubject(ctx context.Context, subjectID int64) ([]models.Note, error) {
	return list(s, s.notes, func(v *models.Note) bool { return v.SubjectID == subjectID }), nil
}

func (s *Store) ListNotesByBoard(ctx context.Context, boardID int64) ([]models.Note, error) {
	return list(s, s.notes, func(v *models.Note) bool { return v.BoardID == boardID }), nil
}

func (s *Store) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	return get(s, s.notes, id)
}

func (s *Store) CreateNote(ctx context.Context, in models.InsertNote) (*models.Note, error) {
	v := models.NewNote(in)
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID()
	v.CreatedAt = s.now()
	s.notes.put(v.ID, v)
	return &v, nil
}

func (s *Store) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) (*models.Note, error) {
	return update(s, s.notes, id, func(v *models.Note) { patch.Apply(v) })
}

func (s *Store) DeleteNote(ctx context.Context, id int64) (bool, error) {
	return remove(s, s.notes, id), nil
}

func (s *Store) IncrementNoteViews(ctx context.Context, id int64) (int64, error) {
	n, err := update(s, s.notes, id, func(v *models.Note) { v.Views++ })
	if err != nil {
		return 0, err
	}
	return n.Views, nil
}

// ======================= PyqPaper =======================

func (s *Store) ListPyqPapers(ctx context.Context) ([]models.PyqPaper, error) {
	return list(s, s.pyqPapers, nil), nil
}

func (s *Store) ListPyqPapersBySubject(ctx context.Context, subjectID int64) ([]models.PyqPaper, error) {
	return list(s, s.pyqPapers, func(v *models.PyqPaper) bool { return v.SubjectID == subjectID }), nil
}

func (s *Store) ListPyqPapersByBoard(ctx context.Context, boardID int64) ([]models.PyqPaper, error) {
	return list(s, s.pyqPapers, func(v *models.PyqPaper) bool { return v.BoardID == boardID }), nil
}

func (s *Store) ListPyqPapersByYear(ctx context.Context, year int) ([]models.PyqPaper, error) {
	return list(s, s.pyqPapers, func(v *models.PyqPaper) bool { return v.Year == year }), nil
}

func (s *Store) GetPyqPaper(ctx context.Context, id int64) (*models.PyqPaper, error) {
	return get(s, s.pyqPapers, id)
}

func (s *Store) CreatePyqPaper(ctx context.Context, in models.InsertPyqPaper) (*models.PyqPaper, error) {
	v := models.NewPyqPaper(in)
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.nextID()
	v.CreatedAt = s.now()
	s.pyqPapers.put(v.ID, v)
	return &v, nil
}

func (s *Store) UpdatePyqPaper(ctx context.Context, id int64, patch models.PyqPaperPatch) (*models.PyqPaper, error) {
	return update(s, s.pyqPapers, id, func(v *models.PyqPaper) { patch.Apply(v) })
}

func (s *Store) DeletePyqPaper(ctx context.Context, id int64) (bool, error) {
	return remove(s, s.pyqPapers, id), nil
}

// ======================= Dashboard =======================

func (s *Store) Counts(ctx context.Context) (models.EntityCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.EntityCounts{
		Boards:    int64(s.boards.len()),
		Materials: int64(s.materials.len()),
		PyqPapers: int64(s.pyqPapers.len()),
	}, nil
}

func (s *Store) Close() error {
	return nil
}
