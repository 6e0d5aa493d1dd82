// Package repository 定义内容管理的持久化接口。
//
// 具体实现在子包中：memory（开发/演示）、relational（gorm，postgres 或 sqlite）、
// bolt（单文件嵌入式）。所有实现的列表方法都按创建时间倒序返回。
package repository

import (
	"context"
	"errors"

	"github.com/RigelNana/arkstudy/services/admin-service/models"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, in models.InsertUser) (*models.User, error)
}

type BoardRepository interface {
	ListBoards(ctx context.Context) ([]models.Board, error)
	GetBoard(ctx context.Context, id int64) (*models.Board, error)
	CreateBoard(ctx context.Context, in models.InsertBoard) (*models.Board, error)
	UpdateBoard(ctx context.Context, id int64, patch models.BoardPatch) (*models.Board, error)
	DeleteBoard(ctx context.Context, id int64) (bool, error)
}

type SubjectRepository interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	ListSubjectsByBoard(ctx context.Context, boardID int64) ([]models.Subject, error)
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	CreateSubject(ctx context.Context, in models.InsertSubject) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, patch models.SubjectPatch) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) (bool, error)
}

type MaterialRepository interface {
	ListMaterials(ctx context.Context) ([]models.Material, error)
	ListMaterialsBySubject(ctx context.Context, subjectID int64) ([]models.Material, error)
	ListMaterialsByBoard(ctx context.Context, boardID int64) ([]models.Material, error)
	GetMaterial(ctx context.Context, id int64) (*models.Material, error)
	CreateMaterial(ctx context.Context, in models.InsertMaterial) (*models.Material, error)
	UpdateMaterial(ctx context.Context, id int64, patch models.MaterialPatch) (*models.Material, error)
	DeleteMaterial(ctx context.Context, id int64) (bool, error)
}

type NoteRepository interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	ListNotesBySubject(ctx context.Context, subjectID int64) ([]models.Note, error)
	ListNotesByBoard(ctx context.Context, boardID int64) ([]models.Note, error)
	GetNote(ctx context.Context, id int64) (*models.Note, error)
	CreateNote(ctx context.Context, in models.InsertNote) (*models.Note, error)
	UpdateNote(ctx context.Context, id int64, patch models.NotePatch) (*models.Note, error)
	DeleteNote(ctx context.Context, id int64) (bool, error)
	// IncrementNoteViews 浏览数 +1 并返回新的浏览数，记录不存在时返回 ErrNotFound
	IncrementNoteViews(ctx context.Context, id int64) (int64, error)
}

type PyqPaperRepository interface {
	ListPyqPapers(ctx context.Context) ([]models.PyqPaper, error)
	ListPyqPapersBySubject(ctx context.Context, subjectID int64) ([]models.PyqPaper, error)
	ListPyqPapersByBoard(ctx context.Context, boardID int64) ([]models.PyqPaper, error)
	ListPyqPapersByYear(ctx context.Context, year int) ([]models.PyqPaper, error)
	GetPyqPaper(ctx context.Context, id int64) (*models.PyqPaper, error)
	CreatePyqPaper(ctx context.Context, in models.InsertPyqPaper) (*models.PyqPaper, error)
	UpdatePyqPaper(ctx context.Context, id int64, patch models.PyqPaperPatch) (*models.PyqPaper, error)
	DeletePyqPaper(ctx context.Context, id int64) (bool, error)
}

// Storage 是 handler 和 service 唯一依赖的持久化入口
type Storage interface {
	UserRepository
	BoardRepository
	SubjectRepository
	MaterialRepository
	NoteRepository
	PyqPaperRepository

	// Counts 返回仪表盘需要的各类记录数
	Counts(ctx context.Context) (models.EntityCounts, error)
	Close() error
}
