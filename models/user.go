package models

// User 管理员账号；PasswordHash 为 bcrypt 哈希，不输出到 JSON
type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// InsertUser 中的 PasswordHash 必须已经哈希过
type InsertUser struct {
	Username     string `json:"username" validate:"required"`
	PasswordHash string `json:"-" validate:"required"`
}

func NewUser(in InsertUser) User {
	return User{Username: in.Username, PasswordHash: in.PasswordHash}
}

// EntityCounts 仪表盘使用的计数
type EntityCounts struct {
	Boards    int64
	Materials int64
	PyqPapers int64
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
