// Package bolt 是基于 bbolt 单文件数据库的 repository.Storage 实现。
//
// 每种实体一个 bucket，值为 JSON，key 为大端序的 id；所有实体共用 meta bucket
// 中的一个序列，所以倒序遍历 bucket 即为创建时间倒序。
package bolt

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"go.etcd.io/bbolt"
)

var (
	bucketMeta      = []byte("meta")
	bucketUsers     = []byte("users")
	bucketBoards    = []byte("boards")
	bucketSubjects  = []byte("subjects")
	bucketMaterials = []byte("materials")
	bucketNotes     = []byte("notes")
	bucketPyqPapers = []byte("pyq_papers")

	allBuckets = [][]byte{bucketMeta, bucketUsers, bucketBoards, bucketSubjects, bucketMaterials, bucketNotes, bucketPyqPapers}
)

type Store struct {
	db  *bbolt.DB
	now func() time.Time
}

var _ repository.Storage = (*Store)(nil)

// Open 打开（或创建）数据库文件并建好所有 bucket
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

// nextID 从 meta bucket 取下一个共享序列值
func nextID(tx *bbolt.Tx) (int64, error) {
	seq, err := tx.Bucket(bucketMeta).NextSequence()
	if err != nil {
		return 0, err
	}
	return int64(seq), nil
}

func put[T any](tx *bbolt.Tx, bucket []byte, id int64, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return tx.Bucket(bucket).Put(itob(id), data)
}

func get[T any](s *Store, bucket []byte, id int64) (*T, error) {
	var out T
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get(itob(id))
		if v == nil {
			return repository.ErrNotFound
		}
		return json.Unmarshal(v, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// list 从最后一个 key 往前遍历
func list[T any](s *Store, bucket []byte, keep func(*T) bool) ([]T, error) {
	out := make([]T, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			var row T
			if err := json.Unmarshal(v, &row); err != nil {
				return err
			}
			if keep == nil || keep(&row) {
				out = append(out, row)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func create[T any](s *Store, bucket []byte, row *T, assign func(*T, int64, time.Time)) (*T, error) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		id, err := nextID(tx)
		if err != nil {
			return err
		}
		assign(row, id, s.now().UTC())
		return put(tx, bucket, id, row)
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

func update[T any](s *Store, bucket []byte, id int64, apply func(*T)) (*T, error) {
	var out T
	err := s.db.Update(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get(itob(id))
		if v == nil {
			return repository.ErrNotFound
		}
		if err := json.Unmarshal(v, &out); err != nil {
			return err
		}
		apply(&out)
		return put(tx, bucket, id, &out)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func remove(s *Store, bucket []byte, id int64) (bool, error) {
	var found bool
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		key := itob(id)
		if b.Get(key) == nil {
			return nil
		}
		found = true
		return b.Delete(key)
	})
	return found, err
}

func count(tx *bbolt.Tx, bucket []byte) int64 {
	return int64(tx.Bucket(bucket).Stats().KeyN)
}

// ======================= User =======================

// userRecord 保存密码哈希，models.User 的 JSON 不输出它
type userRecord struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

func (r userRecord) user() *models.User {
	return &models.User{ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash}
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	r, err := get[userRecord](s, bucketUsers, id)
	if err != nil {
		return nil, err
	}
	return r.user(), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	found, err := list(s, bucketUsers, func(r *userRecord) bool { return r.Username == username })
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, repository.ErrNotFound
	}
	return found[0].user(), nil
}

func (s *Store) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	r := userRecord{Username: in.Username, PasswordHash: in.PasswordHash}
	created, err := create(s, bucketUsers, &r, func(r *userRecord, id int64, _ time.Time) { r.ID = id })
	if err != nil {
		return nil, err
	}
	return created.user(), nil
}

// ======================= Board =======================

func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	return list[models.Board](s, bucketBoards, nil)
}

func (s *Store) GetBoard(ctx context.Context, id int64) (*models.Board, error) {
	return get[models.Board](s, bucketBoards, id)
}

func (s *Store) CreateBoard(ctx context.Context, in models.InsertBoard) (*models.Board, error) {
	v := models.NewBoard(in)
	return create(s, bucketBoards, &v, func(v *models.Board, id int64, at time.Time) { v.ID, v.CreatedAt = id, at })
}

func (s *Store) UpdateBoard(ctx context.Context, id int64, patch models.BoardPatch) (*models.Board, error) {
	return update(s, bucketBoards, id, func(v *models.Board) { patch.Apply(v) })
}

func (s *Store) DeleteBoard(ctx context.Context, id int64) (bool, error) {
	return remove(s, bucketBoards, id)
}

// ======================= Subject =======================

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return list[models.Subject](s, bucketSubjects, nil)
}

func (s *Store) ListSubjectsByBoard(ctx context.Context, boardID int64) ([]models.Subject, error) {
	return list(s, bucketSubjects, func(v *models.Subject) bool { return v.BoardID == boardID })
}

func (s *Store) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return get[models.Subject](s, bucketSubjects, id)
}

func (s *Store) CreateSubject(ctx context.Context, in models.InsertSubject) (*models.Subject, error) {
	v := models.NewSubject(in)
	return create(s, bucketSubjects, &v, func(v *models.Subject, id int64, at time.Time) { v.ID, v.CreatedAt = id, at })
}

func (s *Store) UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error) {
	return update(s, bucketSubjects, id, func(v *models.Subject) { patch.Apply(v) })
}

func (s *Store) DeleteSubject(ctx context.Context, id int64) (bool, error) {
	return remove(s, bucketSubjects, id)
}

// ======================= Material =======================

func (s *Store) ListMaterials(ctx context.Context) ([]models.Material, error) {
	return list[models.Material](s, bucketMaterials, nil)
}

func (s *Store) ListMaterialsBySubject(ctx context.Context, subjectID int64) ([]models.Material, error) {
	return list(s, bucketMaterials, func(v *models.Material) bool { return v.SubjectID == subjectID })
}

func (s *Store) ListMaterialsByBoard(ctx context.Context, boardID int64) ([]models.Material, error) {
	return list(s, bucketMaterials, func(v *models.Material) bool { return v.BoardID == boardID })
}

func (s *Store) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	return get[models.Material](s, bucketMaterials, id)
}

func (s *Store) CreateMaterial(ctx context.Context, in models.InsertMaterial) (*models.Material, error) {
	v := models.NewMaterial(in)
	return create(s, bucketMaterials, &v, func(v *models.Material, id int64, at time.Time) { v.ID, v.CreatedAt = id, at })
}

func (s *Store) UpdateMaterial(ctx context.Context, id int64, patch models.MaterialPatch) (*models.Material, error) {
	return update(s, bucketMaterials, id, func(v *models.Material) { patch.Apply(v) })
}

func (s *Store) DeleteMaterial(ctx context.Context, id int64) (bool, error) {
	return remove(s, bucketMaterials, id)
}

// ======================= Note =======================

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	return list[models.Note](s, bucketNotes, nil)
}

func (s *Store) ListNotesBySubject(ctx context.Context, subjectID int64) ([]models.Note, error) {
	return list(s, bucketNotes, func(v *models.Note) bool { return v.SubjectID == subjectID })
}

func (s *Store) ListNotesByBoard(ctx context.Context, boardID int64) ([]models.Note, error) {
	return list(s, bucketNotes, func(v *models.Note) bool { return v.BoardID == boardID })
}

func (s *Store) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	return get[models.Note](s, bucketNotes, id)
}

func (s *Store) CreateNote(ctx context.Context, in models.InsertNote) (*models.Note, error) {
	v := models.NewNote(in)
	return create(s, bucketNotes, &v, func(v *models.Note, id int64, at time.Time) { v.ID, v.CreatedAt = id, at })
}

func (s *Store) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) (*models.Note, error) {
	return update(s, bucketNotes, id, func(v *models.Note) { patch.Apply(v) })
}

func (s *Store) DeleteNote(ctx context.Context, id int64) (bool, error) {
	return remove(s, bucketNotes, id)
}

func (s *Store) IncrementNoteViews(ctx context.Context, id int64) (int64, error) {
	n, err := update(s, bucketNotes, id, func(v *models.Note) { v.Views++ })
	if err != nil {
		return 0, err
	}
	return n.Views, nil
}

// ======================= PyqPaper =======================

func (s *Store) ListPyqPapers(ctx context.Context) ([]models.PyqPaper, error) {
	return list[models.PyqPaper](s, bucketPyqPapers, nil)
}

func (s *Store) ListPyqPapersBySubject(ctx context.Context, subjectID int64) ([]models.PyqPaper, error) {
	return list(s, bucketPyqPapers, func(v *models.PyqPaper) bool { return v.SubjectID == subjectID })
}

func (s *Store) ListPyqPapersByBoard(ctx context.Context, boardID int64) ([]models.PyqPaper, error) {
	return list(s, bucketPyqPapers, func(v *models.PyqPaper) bool { return v.BoardID == boardID })
}

func (s *Store) ListPyqPapersByYear(ctx context.Context, year int) ([]models.PyqPaper, error) {
	return list(s, bucketPyqPapers, func(v *models.PyqPaper) bool { return v.Year == year })
}

func (s *Store) GetPyqPaper(ctx context.Context, id int64) (*models.PyqPaper, error) {
	return get[models.PyqPaper](s, bucketPyqPapers, id)
}

func (s *Store) CreatePyqPaper(ctx context.Context, in models.InsertPyqPaper) (*models.PyqPaper, error) {
	v := models.NewPyqPaper(in)
	return create(s, bucketPyqPapers, &v, func(v *models.PyqPaper, id int64, at time.Time) { v.ID, v.CreatedAt = id, at })
}

func (s *Store) UpdatePyqPaper(ctx context.Context, id int64, patch models.PyqPaperPatch) (*models.PyqPaper, error) {
	return update(s, bucketPyqPapers, id, func(v *models.PyqPaper) { patch.Apply(v) })
}

func (s *Store) DeletePyqPaper(ctx context.Context, id int64) (bool, error) {
	return remove(s, bucketPyqPapers, id)
}

// ======================= Dashboard =======================

func (s *Store) Counts(ctx context.Context) (models.EntityCounts, error) {
	var counts models.EntityCounts
	err := s.db.View(func(tx *bbolt.Tx) error {
		counts.Boards = count(tx, bucketBoards)
		counts.Materials = count(tx, bucketMaterials)
		counts.PyqPapers = count(tx, bucketPyqPapers)
		return nil
	})
	return counts, err
}
