package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// SkillLevel is the closed set of skill level classifications
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

// Valid reports whether the skill level is one of the closed enum values
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// Visibility controls who can see a reel
type Visibility string

const (
	VisibilityTenant   Visibility = "tenant"
	VisibilityPublic   Visibility = "public"
	VisibilityInternal Visibility = "internal"
)

// Valid reports whether the visibility is one of the closed enum values
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityTenant, VisibilityPublic, VisibilityInternal:
		return true
	}
	return false
}

// ReelStatus is the publication state of a reel
type ReelStatus string

const (
	ReelStatusDraft     ReelStatus = "draft"
	ReelStatusPublished ReelStatus = "published"
	ReelStatusArchived  ReelStatus = "archived"
)

// StringList is a JSON-encoded list of strings stored in a single column
type StringList []string

// Value implements driver.Valuer interface for StringList
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for StringList
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return errors.New("type assertion to []byte failed")
		}
	}
	return json.Unmarshal(bytes, l)
}

// Reel represents a short instructional video clip with editable metadata
type Reel struct {
	gorm.Model
	UUID        string     `json:"uuid" gorm:"uniqueIndex;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"type:text"`
	Tags        StringList `json:"tags" gorm:"type:json"`
	Category    string     `json:"category"`
	Machine     string     `json:"machine"`
	Tooling     string     `json:"tooling"`
	ProcessStep string     `json:"process_step"`
	SkillLevel  SkillLevel `json:"skill_level"`
	Language    string     `json:"language"`
	Visibility  Visibility `json:"visibility" gorm:"default:'tenant'"`
	Status      ReelStatus `json:"status" gorm:"default:'draft'"`

	// Video attributes, refreshed when a reprocess job completes
	Duration     int    `json:"duration"` // seconds
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`

	UploaderID   string `json:"uploader_id"`
	UploaderName string `json:"uploader_name"`

	// Monotonically increasing revision counter, bumped on every metadata
	// commit and on every rollback
	CurrentVersion int `json:"current_version" gorm:"default:1"`

	Versions []ReelVersion `json:"versions,omitempty" gorm:"foreignKey:ReelID"`
}

// TableName specifies the table name for Reel
func (Reel) TableName() string {
	return "reels"
}

// MetadataPatch is a partial update of a reel's editable metadata. Nil fields
// are left untouched.
type MetadataPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Tags        *StringList `json:"tags,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Machine     *string     `json:"machine,omitempty"`
	Tooling     *string     `json:"tooling,omitempty"`
	ProcessStep *string     `json:"process_step,omitempty"`
	SkillLevel  *SkillLevel `json:"skill_level,omitempty"`
	Language    *string     `json:"language,omitempty"`
	Visibility  *Visibility `json:"visibility,omitempty"`
	Status      *ReelStatus `json:"status,omitempty"`
}

// Validate checks the patch against field-level constraints
func (p *MetadataPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("title must not be empty")
	}
	if p.Visibility != nil && !p.Visibility.Valid() {
		return errors.New("visibility must be one of tenant, public, internal")
	}
	if p.SkillLevel != nil && !p.SkillLevel.Valid() {
		return errors.New("skill level must be one of Beginner, Intermediate, Advanced")
	}
	return nil
}

// Apply writes the non-nil patch fields onto the reel
func (p *MetadataPatch) Apply(r *Reel) {
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Tags != nil {
		r.Tags = *p.Tags
	}
	if p.Category != nil {
		r.Category = *p.Category
	}
	if p.Machine != nil {
		r.Machine = *p.Machine
	}
	if p.Tooling != nil {
		r.Tooling = *p.Tooling
	}
	if p.ProcessStep != nil {
		r.ProcessStep = *p.ProcessStep
	}
	if p.SkillLevel != nil {
		r.SkillLevel = *p.SkillLevel
	}
	if p.Language != nil {
		r.Language = *p.Language
	}
	if p.Visibility != nil {
		r.Visibility = *p.Visibility
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// IsEmpty reports whether the patch changes nothing
func (p *MetadataPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Tags == nil &&
		p.Category == nil && p.Machine == nil && p.Tooling == nil &&
		p.ProcessStep == nil && p.SkillLevel == nil && p.Language == nil &&
		p.Visibility == nil && p.Status == nil
}
