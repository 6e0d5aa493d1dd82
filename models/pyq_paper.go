package models

import "time"

// PyqPaper 往年真题
type PyqPaper struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Year           int       `gorm:"not null;index" json:"year"`
	FileName       string    `gorm:"not null" json:"fileName"`
	FileSize       int64     `gorm:"not null" json:"fileSize"`
	Duration       *int      `json:"duration"` // 分钟
	TotalQuestions *int      `json:"totalQuestions"`
	SubjectID      int64     `gorm:"not null;index" json:"subjectId"`
	BoardID        int64     `gorm:"not null;index" json:"boardId"`
	HasSolutions   bool      `gorm:"not null;default:false" json:"hasSolutions"`
	HasAnswerKey   bool      `gorm:"not null;default:false" json:"hasAnswerKey"`
	UploadedBy     int64     `gorm:"not null" json:"uploadedBy"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PyqPaper) TableName() string {
	return "pyq_papers"
}

type InsertPyqPaper struct {
	Title          string `json:"title" validate:"required"`
	Year           int    `json:"year" validate:"required,gte=1900,lte=2100"`
	FileName       string `json:"fileName" validate:"required"`
	FileSize       int64  `json:"fileSize" validate:"gte=0"`
	Duration       *int   `json:"duration" validate:"omitempty,gt=0"`
	TotalQuestions *int   `json:"totalQuestions" validate:"omitempty,gt=0"`
	SubjectID      int64  `json:"subjectId" validate:"required,gt=0"`
	BoardID        int64  `json:"boardId" validate:"required,gt=0"`
	HasSolutions   *bool  `json:"hasSolutions"`
	HasAnswerKey   *bool  `json:"hasAnswerKey"`
	UploadedBy     int64  `json:"uploadedBy" validate:"required,gt=0"`
}

type PyqPaperPatch struct {
	Title          *string       `json:"title" validate:"omitempty,min=1"`
	Year           *int          `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	FileName       *string       `json:"fileName" validate:"omitempty,min=1"`
	FileSize       *int64        `json:"fileSize" validate:"omitempty,gte=0"`
	Duration       Nullable[int] `json:"duration"`
	TotalQuestions Nullable[int] `json:"totalQuestions"`
	SubjectID      *int64        `json:"subjectId" validate:"omitempty,gt=0"`
	BoardID        *int64        `json:"boardId" validate:"omitempty,gt=0"`
	HasSolutions   *bool         `json:"hasSolutions"`
	HasAnswerKey   *bool         `json:"hasAnswerKey"`
	UploadedBy     *int64        `json:"uploadedBy" validate:"omitempty,gt=0"`
}

func NewPyqPaper(in InsertPyqPaper) PyqPaper {
	return PyqPaper{
		Title:          in.Title,
		Year:           in.Year,
		FileName:       in.FileName,
		FileSize:       in.FileSize,
		Duration:       in.Duration,
		TotalQuestions: in.TotalQuestions,
		SubjectID:      in.SubjectID,
		BoardID:        in.BoardID,
		HasSolutions:   boolOr(in.HasSolutions, false),
		HasAnswerKey:   boolOr(in.HasAnswerKey, false),
		UploadedBy:     in.UploadedBy,
	}
}

func (p PyqPaperPatch) Apply(q *PyqPaper) {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Year != nil {
		q.Year = *p.Year
	}
	if p.FileName != nil {
		q.FileName = *p.FileName
	}
	if p.FileSize != nil {
		q.FileSize = *p.FileSize
	}
	p.Duration.apply(&q.Duration)
	p.TotalQuestions.apply(&q.TotalQuestions)
	if p.SubjectID != nil {
		q.SubjectID = *p.SubjectID
	}
	if p.BoardID != nil {
		q.BoardID = *p.BoardID
	}
	if p.HasSolutions != nil {
		q.HasSolutions = *p.HasSolutions
	}
	if p.HasAnswerKey != nil {
		q.HasAnswerKey = *p.HasAnswerKey
	}
	if p.UploadedBy != nil {
		q.UploadedBy = *p.UploadedBy
	}
}

func (p PyqPaperPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Year != nil {
		cols["year"] = *p.Year
	}
	if p.FileName != nil {
		cols["file_name"] = *p.FileName
	}
	if p.FileSize != nil {
		cols["file_size"] = *p.FileSize
	}
	if p.Duration.Set {
		cols["duration"] = p.Duration.column()
	}
	if p.TotalQuestions.Set {
		cols["total_questions"] = p.TotalQuestions.column()
	}
	if p.SubjectID != nil {
		cols["subject_id"] = *p.SubjectID
	}
	if p.BoardID != nil {
		cols["board_id"] = *p.BoardID
	}
	if p.HasSolutions != nil {
		cols["has_solutions"] = *p.HasSolutions
	}
	if p.HasAnswerKey != nil {
		cols["has_answer_key"] = *p.HasAnswerKey
	}
	if p.UploadedBy != nil {
		cols["uploaded_by"] = *p.UploadedBy
	}
	return cols
}
