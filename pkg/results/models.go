package results

import (
	"time"

	"gorm.io/datatypes"
)

// Run 是一次命令执行的记录
type Run struct {
	ID uint `gorm:"primaryKey"`

	// Command 是 "genHashes" 或 "includesTest"
	Command string `gorm:"index;type:varchar(32);not null"`

	Corpus    string `gorm:"type:varchar(255)"`
	Format    string `gorm:"type:varchar(16)"`
	Algorithm string `gorm:"type:varchar(32)"`
	Size      int
	Rounds    int

	// Measurements: {"Time to load JSON": 12.3, ...}，单位毫秒
	Measurements datatypes.JSON

	CreatedAt time.Time `gorm:"index"`
}

// TableName 强制指定表名
func (Run) TableName() string {
	return "runs"
}
