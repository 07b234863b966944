package database

import (
	"encoding/json"
	"time"

	"batchpix/internal/common"
)

// UserPreferences database model
type UserPreferences struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	PreferencesJSON string    `gorm:"type:text" json:"preferences_json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UserPreferencesData represents user preferences data
type UserPreferencesData struct {
	DefaultTargetWidth    int    `json:"default_target_width"`
	DefaultTargetHeight   int    `json:"default_target_height"`
	DefaultDownloadFolder string `json:"default_download_folder"`
	ArchiveName           string `json:"archive_name"`
	JPEGQuality           int    `json:"jpeg_quality"`
	AutoReveal            bool   `json:"auto_reveal"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() UserPreferencesData {
	return UserPreferencesData{
		DefaultTargetWidth:    common.DefaultTargetWidth,
		DefaultTargetHeight:   common.DefaultTargetHeight,
		DefaultDownloadFolder: "",
		ArchiveName:           common.DefaultArchiveName,
		JPEGQuality:           common.DefaultJPEGQuality,
		AutoReveal:            false,
	}
}

// GetPreferences returns the user preferences data
func (up *UserPreferences) GetPreferences() UserPreferencesData {
	if up.PreferencesJSON == "" {
		return DefaultPreferences()
	}

	var prefs UserPreferencesData
	if err := json.Unmarshal([]byte(up.PreferencesJSON), &prefs); err != nil {
		return DefaultPreferences()
	}

	return prefs
}

// SetPreferences sets the user preferences data
func (up *UserPreferences) SetPreferences(prefs UserPreferencesData) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	up.PreferencesJSON = string(data)
	return nil
}
