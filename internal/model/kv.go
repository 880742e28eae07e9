// internal/model/kv.go
package model

import (
	"time"

	"gorm.io/datatypes"
)

// KVEntry は唯一の永続テーブルです。
// SPAがlocalStorageに置いていた配置 (キー → JSON文字列) をそのまま1テーブルに写しています。
type KVEntry struct {
	Key       string         `gorm:"primaryKey;size:255"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
