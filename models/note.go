package models

import "time"

// Note 富文本笔记，Content 为 HTML
type Note struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	SubjectID int64     `gorm:"not null;index" json:"subjectId"`
	BoardID   int64     `gorm:"not null;index" json:"boardId"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	CreatedBy int64     `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Note) TableName() string {
	return "notes"
}

// InsertNote 不包含 views，浏览数只能通过 IncrementNoteViews 修改
type InsertNote struct {
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
	SubjectID int64  `json:"subjectId" validate:"required,gt=0"`
	BoardID   int64  `json:"boardId" validate:"required,gt=0"`
	CreatedBy int64  `json:"createdBy" validate:"required,gt=0"`
}

type NotePatch struct {
	Title     *string `json:"title" validate:"omitempty,min=1"`
	Content   *string `json:"content" validate:"omitempty,min=1"`
	SubjectID *int64  `json:"subjectId" validate:"omitempty,gt=0"`
	BoardID   *int64  `json:"boardId" validate:"omitempty,gt=0"`
	CreatedBy *int64  `json:"createdBy" validate:"omitempty,gt=0"`
}

func NewNote(in InsertNote) Note {
	return Note{
		Title:     in.Title,
		Content:   in.Content,
		SubjectID: in.SubjectID,
		BoardID:   in.BoardID,
		CreatedBy: in.CreatedBy,
	}
}

func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.SubjectID != nil {
		n.SubjectID = *p.SubjectID
	}
	if p.BoardID != nil {
		n.BoardID = *p.BoardID
	}
	if p.CreatedBy != nil {
		n.CreatedBy = *p.CreatedBy
	}
}

func (p NotePatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.SubjectID != nil {
		cols["subject_id"] = *p.SubjectID
	}
	if p.BoardID != nil {
		cols["board_id"] = *p.BoardID
	}
	if p.CreatedBy != nil {
		cols["created_by"] = *p.CreatedBy
	}
	return cols
}
