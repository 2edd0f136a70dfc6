package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// StringList stores a list of strings as a JSON-encoded TEXT column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = StringList{}
		return nil
	}
	switch v := src.(type) {
	case string:
		if v == "" {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal([]byte(v), l)
	case []byte:
		if len(v) == 0 {
			*l = StringList{}
			return nil
		}
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", src)
	}
}

// Post is a piece of content owned by one user, targeted at one or
// more platforms. ImagePath is relative to the uploads directory; the
// file is removed when the post is deleted.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Caption   string     `gorm:"not null" json:"caption"`
	ImagePath string     `json:"image_path"`
	Platforms StringList `gorm:"type:text" json:"platforms"`
	Status    string     `gorm:"not null;default:draft" json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}
