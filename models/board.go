package models

import "time"

// 考试局类型
const (
	BoardTypeSecondary    = "secondary"
	BoardTypeCompetitive  = "competitive"
	BoardTypeProfessional = "professional"
)

type Board struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	IsActive    bool      `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Board) TableName() string {
	return "boards"
}

// InsertBoard 创建考试局时客户端可提交的字段
type InsertBoard struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=secondary competitive professional"`
	IsActive    *bool   `json:"isActive"`
}

// BoardPatch 部分更新，nil 表示不修改；description 为 null 时清空
type BoardPatch struct {
	Name        *string          `json:"name" validate:"omitempty,min=1"`
	Description Nullable[string] `json:"description"`
	Type        *string          `json:"type" validate:"omitempty,oneof=secondary competitive professional"`
	IsActive    *bool            `json:"isActive"`
}

func NewBoard(in InsertBoard) Board {
	return Board{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		IsActive:    boolOr(in.IsActive, true),
	}
}

func (p BoardPatch) Apply(b *Board) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	p.Description.apply(&b.Description)
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
}

func (p BoardPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Description.Set {
		cols["description"] = p.Description.column()
	}
	if p.Type != nil {
		cols["type"] = *p.Type
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	return cols
}
