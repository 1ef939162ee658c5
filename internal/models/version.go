package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ReelSnapshot is the full metadata state of a reel as it existed at one
// version. Snapshots are value copies; once written they are never mutated.
type ReelSnapshot struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        StringList `json:"tags"`
	Category    string     `json:"category"`
	Machine     string     `json:"machine"`
	Tooling     string     `json:"tooling"`
	ProcessStep string     `json:"process_step"`
	SkillLevel  SkillLevel `json:"skill_level"`
	Language    string     `json:"language"`
	Visibility  Visibility `json:"visibility"`
	Status      ReelStatus `json:"status"`
}

// SnapshotOf captures the current metadata state of a reel
func SnapshotOf(r *Reel) ReelSnapshot {
	tags := make(StringList, len(r.Tags))
	copy(tags, r.Tags)
	return ReelSnapshot{
		Title:       r.Title,
		Description: r.Description,
		Tags:        tags,
		Category:    r.Category,
		Machine:     r.Machine,
		Tooling:     r.Tooling,
		ProcessStep: r.ProcessStep,
		SkillLevel:  r.SkillLevel,
		Language:    r.Language,
		Visibility:  r.Visibility,
		Status:      r.Status,
	}
}

// Restore writes the snapshot's metadata back onto a reel
func (s ReelSnapshot) Restore(r *Reel) {
	r.Title = s.Title
	r.Description = s.Description
	r.Tags = append(StringList(nil), s.Tags...)
	r.Category = s.Category
	r.Machine = s.Machine
	r.Tooling = s.Tooling
	r.ProcessStep = s.ProcessStep
	r.SkillLevel = s.SkillLevel
	r.Language = s.Language
	r.Visibility = s.Visibility
	r.Status = s.Status
}

// Value implements driver.Valuer interface for ReelSnapshot
func (s ReelSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for ReelSnapshot
func (s *ReelSnapshot) Scan(value interface{}) error {
	if value == nil {
		*s = ReelSnapshot{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(bytes, s)
}

// ReelVersion is an immutable, append-only revision record for a reel.
// Rollbacks never delete or rewrite versions; they append a new one carrying
// an older snapshot.
type ReelVersion struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"timestamp"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UUID       string       `json:"id" gorm:"uniqueIndex;not null"`
	ReelID     uint         `json:"-" gorm:"not null;index:idx_reel_versions_reel_version"`
	ReelUUID   string       `json:"reel_id" gorm:"index"`
	Version    int          `json:"version" gorm:"not null;index:idx_reel_versions_reel_version"`
	ChangeNote string       `json:"changes_description"`
	Author     string       `json:"changed_by"`
	AuthorName string       `json:"changed_by_name"`
	Snapshot   ReelSnapshot `json:"metadata" gorm:"type:json"`

	// Locked marks a version the server will refuse to roll back to
	Locked bool `json:"-" gorm:"default:false"`

	// CanRollback is computed at read time: false for the currently active
	// version and for locked versions. Never stored.
	CanRollback bool `json:"can_rollback" gorm:"-"`
}

// TableName specifies the table name for ReelVersion
func (ReelVersion) TableName() string {
	return "reel_versions"
}
