package models

import "time"

type Subject struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	BoardID     int64     `gorm:"not null;index" json:"boardId"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Subject) TableName() string {
	return "subjects"
}

type InsertSubject struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	BoardID     int64   `json:"boardId" validate:"required,gt=0"`
	IsActive    *bool   `json:"isActive"`
}

type SubjectPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description Nullable[string] `json:"description"`
	BoardID     *int64           `json:"boardId" validate:"omitempty,gt=0"`
	IsActive    *bool            `json:"isActive"`
}

func NewSubject(in InsertSubject) Subject {
	return Subject{
		Name:        in.Name,
		Description: in.Description,
		BoardID:     in.BoardID,
		IsActive:    boolOr(in.IsActive, true),
	}
}

func (p SubjectPatch) Apply(s *Subject) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	p.Description.apply(&s.Description)
	if p.BoardID != nil {
		s.BoardID = *p.BoardID
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

func (p SubjectPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description.Set {
		cols["description"] = p.Description.column()
	}
	if p.BoardID != nil {
		cols["board_id"] = *p.BoardID
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	return cols
}
