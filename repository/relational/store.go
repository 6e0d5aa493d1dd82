// Package relational 是基于 gorm 的 repository.Storage 实现，支持 postgres 和 sqlite。
package relational

import (
	"context"
	"fmt"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
	"github.com/RigelNana/arkstudy/services/admin-service/repository"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB

	users     baseRepository[models.User]
	boards    baseRepository[models.Board]
	subjects  baseRepository[models.Subject]
	materials baseRepository[models.Material]
	notes     baseRepository[models.Note]
	pyqPapers baseRepository[models.PyqPaper]
}

var _ repository.Storage = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		users:     newBaseRepository[models.User](db),
		boards:    newBaseRepository[models.Board](db),
		subjects:  newBaseRepository[models.Subject](db),
		materials: newBaseRepository[models.Material](db),
		notes:     newBaseRepository[models.Note](db),
		pyqPapers: newBaseRepository[models.PyqPaper](db),
	}
}

// AutoMigrate 按模型建表，逐表迁移便于定位失败的表
func AutoMigrate(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.User{},
		&models.Board{},
		&models.Subject{},
		&models.Material{},
		&models.Note{},
		&models.PyqPaper{},
	} {
		if err := db.Migrator().AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

// ======================= User =======================

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.getByID(ctx, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error) {
	user := models.NewUser(in)
	if err := s.users.create(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ======================= Board =======================

func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	return s.boards.list(ctx, "")
}

func (s *Store) GetBoard(ctx context.Context, id int64) (*models.Board, error) {
	return s.boards.getByID(ctx, id)
}

func (s *Store) CreateBoard(ctx context.Context, in models.InsertBoard) (*models.Board, error) {
	board := models.NewBoard(in)
	if err := s.boards.create(ctx, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Store) UpdateBoard(ctx context.Context, id int64, patch models.BoardPatch) (*models.Board, error) {
	return s.boards.update(ctx, id, patch.Columns())
}

func (s *Store) DeleteBoard(ctx context.Context, id int64) (bool, error) {
	return s.boards.delete(ctx, id)
}

// ======================= Subject =======================

func (s *Store) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.list(ctx, "")
}

func (s *Store) ListSubjectsByBoard(ctx context.Context, boardID int64) ([]models.Subject, error) {
	return s.subjects.list(ctx, "board_id = ?", boardID)
}

func (s *Store) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return s.subjects.getByID(ctx, id)
}

func (s *Store) CreateSubject(ctx context.Context, in models.InsertSubject) (*models.Subject, error) {
	subject := models.NewSubject(in)
	if err := s.subjects.create(ctx, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *Store) UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error) {
	return s.subjects.update(ctx, id, patch.Columns())
}

func (s *Store) DeleteSubject(ctx context.Context, id int64) (bool, error) {
	return s.subjects.delete(ctx, id)
}

// ======================= Material =======================

func (s *Store) ListMaterials(ctx context.Context) ([]models.Material, error) {
	return s.materials.list(ctx, "")
}

func (s *Store) ListMaterialsBySubject(ctx context.Context, subjectID int64) ([]models.Material, error) {
	return s.materials.list(ctx, "subject_id = ?", subjectID)
}

func (s *Store) ListMaterialsByBoard(ctx context.Context, boardID int64) ([]models.Material, error) {
	return s.materials.list(ctx, "board_id = ?", boardID)
}

func (s *Store) GetMaterial(ctx context.Context, id int64) (*models.Material, error) {
	return s.materials.getByID(ctx, id)
}

func (s *Store) CreateMaterial(ctx context.Context, in models.InsertMaterial) (*models.Material, error) {
	material := models.NewMaterial(in)
	if err := s.materials.create(ctx, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (s *Store) UpdateMaterial(ctx context.Context, id int64, patch models.MaterialPatch) (*models.Material, error) {
	return s.materials.update(ctx, id, patch.Columns())
}

func (s *Store) DeleteMaterial(ctx context.Context, id int64) (bool, error) {
	return s.materials.delete(ctx, id)
}

// ======================= Note =======================

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	return s.notes.list(ctx, "")
}

func (s *Store) ListNotesBySubject(ctx context.Context, subjectID int64) ([]models.Note, error) {
	return s.notes.list(ctx, "subject_id = ?", subjectID)
}

func (s *Store) ListNotesByBoard(ctx context.Context, boardID int64) ([]models.Note, error) {
	return s.notes.list(ctx, "board_id = ?", boardID)
}

func (s *Store) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	return s.notes.getByID(ctx, id)
}

func (s *Store) CreateNote(ctx context.Context, in models.InsertNote) (*models.Note, error) {
	note := models.NewNote(in)
	if err := s.notes.create(ctx, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *Store) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) (*models.Note, error) {
	return s.notes.update(ctx, id, patch.Columns())
}

func (s *Store) DeleteNote(ctx context.Context, id int64) (bool, error) {
	return s.notes.delete(ctx, id)
}

// IncrementNoteViews 在数据库内做 views = views + 1，同一事务里读回新值
func (s *Store) IncrementNoteViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Note{}).Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		var note models.Note
		if err := tx.Select("views").Where("id = ?", id).First(&note).Error; err != nil {
			return err
		}
		views = note.Views
		return nil
	})
	if err != nil {
		return 0, err
	}
	return views, nil
}

// ======================= PyqPaper =======================

func (s *Store) ListPyqPapers(ctx context.Context) ([]models.PyqPaper, error) {
	return s.pyqPapers.list(ctx, "")
}

func (s *Store) ListPyqPapersBySubject(ctx context.Context, subjectID int64) ([]models.PyqPaper, error) {
	return s.pyqPapers.list(ctx, "subject_id = ?", subjectID)
}

func (s *Store) ListPyqPapersByBoard(ctx context.Context, boardID int64) ([]models.PyqPaper, error) {
	return s.pyqPapers.list(ctx, "board_id = ?", boardID)
}

func (s *Store) ListPyqPapersByYear(ctx context.Context, year int) ([]models.PyqPaper, error) {
	return s.pyqPapers.list(ctx, "year = ?", year)
}

func (s *Store) GetPyqPaper(ctx context.Context, id int64) (*models.PyqPaper, error) {
	return s.pyqPapers.getByID(ctx, id)
}

func (s *Store) CreatePyqPaper(ctx context.Context, in models.InsertPyqPaper) (*models.PyqPaper, error) {
	paper := models.NewPyqPaper(in)
	if err := s.pyqPapers.create(ctx, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

func (s *Store) UpdatePyqPaper(ctx context.Context, id int64, patch models.PyqPaperPatch) (*models.PyqPaper, error) {
	return s.pyqPapers.update(ctx, id, patch.Columns())
}

func (s *Store) DeletePyqPaper(ctx context.Context, id int64) (bool, error) {
	return s.pyqPapers.delete(ctx, id)
}

// ======================= Dashboard =======================

func (s *Store) Counts(ctx context.Context) (models.EntityCounts, error) {
	var counts models.EntityCounts
	var err error
	if counts.Boards, err = s.boards.count(ctx); err != nil {
		return counts, err
	}
	if counts.Materials, err = s.materials.count(ctx); err != nil {
		return counts, err
	}
	if counts.PyqPapers, err = s.pyqPapers.count(ctx); err != nil {
		return counts, err
	}
	return counts, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
