package models

// Settings is the one-to-one preferences record for a user. It is
// lazily created with defaults on first read and replaced wholesale on
// update.
type Settings struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	UserID             uint   `gorm:"uniqueIndex;not null" json:"-"`
	Appearance         string `gorm:"not null;default:Dark" json:"appearance"`
	FontSize           string `gorm:"not null;default:Medium" json:"font_size"`
	Language           string `gorm:"not null;default:English" json:"language"`
	InAppNotifications bool   `gorm:"not null;default:true" json:"in_app_notifications"`
}

// DefaultSettings returns the settings row created on first read.
func DefaultSettings(userID uint) *Settings {
	return &Settings{
		UserID:             userID,
		Appearance:         "Dark",
		FontSize:           "Medium",
		Language:           "English",
		InAppNotifications: true,
	}
}
