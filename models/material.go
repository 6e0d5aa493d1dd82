package models

import "time"

// Material 上传的学习资料，文件本身由 storage.Sink 保存，这里只记录元数据
type Material struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	FileName    string    `gorm:"not null" json:"fileName"`
	FileSize    int64     `gorm:"not null" json:"fileSize"`
	FileType    string    `gorm:"not null" json:"fileType"`
	SubjectID   int64     `gorm:"not null;index" json:"subjectId"`
	BoardID     int64     `gorm:"not null;index" json:"boardId"`
	UploadedBy  int64     `gorm:"not null" json:"uploadedBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Material) TableName() string {
	return "materials"
}

type InsertMaterial struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	FileName    string  `json:"fileName" validate:"required"`
	FileSize    int64   `json:"fileSize" validate:"gte=0"`
	FileType    string  `json:"fileType" validate:"required"`
	SubjectID   int64   `json:"subjectId" validate:"required,gt=0"`
	BoardID     int64   `json:"boardId" validate:"required,gt=0"`
	UploadedBy  int64   `json:"uploadedBy" validate:"required,gt=0"`
}

type MaterialPatch struct {
	Title       *string          `json:"title" validate:"omitempty,min=1"`
	Description Nullable[string] `json:"description"`
	FileName    *string          `json:"fileName" validate:"omitempty,min=1"`
	FileSize    *int64           `json:"fileSize" validate:"omitempty,gte=0"`
	FileType    *string          `json:"fileType" validate:"omitempty,min=1"`
	SubjectID   *int64           `json:"subjectId" validate:"omitempty,gt=0"`
	BoardID     *int64           `json:"boardId" validate:"omitempty,gt=0"`
	UploadedBy  *int64           `json:"uploadedBy" validate:"omitempty,gt=0"`
}

func NewMaterial(in InsertMaterial) Material {
	return Material{
		Title:       in.Title,
		Description: in.Description,
		FileName:    in.FileName,
		FileSize:    in.FileSize,
		FileType:    in.FileType,
		SubjectID:   in.SubjectID,
		BoardID:     in.BoardID,
		UploadedBy:  in.UploadedBy,
	}
}

func (p MaterialPatch) Apply(m *Material) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	p.Description.apply(&m.Description)
	if p.FileName != nil {
		m.FileName = *p.FileName
	}
	if p.FileSize != nil {
		m.FileSize = *p.FileSize
	}
	if p.FileType != nil {
		m.FileType = *p.FileType
	}
	if p.SubjectID != nil {
		m.SubjectID = *p.SubjectID
	}
	if p.BoardID != nil {
		m.BoardID = *p.BoardID
	}
	if p.UploadedBy != nil {
		m.UploadedBy = *p.UploadedBy
	}
}

func (p MaterialPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Description.Set {
		cols["description"] = p.Description.column()
	}
	if p.FileName != nil {
		cols["file_name"] = *p.FileName
	}
	if p.FileSize != nil {
		cols["file_size"] = *p.FileSize
	}
	if p.FileType != nil {
		cols["file_type"] = *p.FileType
	}
	if p.SubjectID != nil {
		cols["subject_id"] = *p.SubjectID
	}
	if p.BoardID != nil {
		cols["board_id"] = *p.BoardID
	}
	if p.UploadedBy != nil {
		cols["uploaded_by"] = *p.UploadedBy
	}
	return cols
}
