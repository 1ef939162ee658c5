package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// TranscriptSegment is a time-bounded span of spoken text. Within one
// transcript, segments are sorted ascending by start time and do not overlap.
type TranscriptSegment struct {
	ID         string   `json:"id"`
	StartTime  float64  `json:"start_time"`
	EndTime    float64  `json:"end_time"`
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"` // 0..1 when present
}

// SegmentList is a JSON-encoded ordered list of transcript segments
type SegmentList []TranscriptSegment

// Value implements driver.Valuer interface for SegmentList
func (l SegmentList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for SegmentList
func (l *SegmentList) Scan(value interface{}) error {
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

// Validate checks per-segment time constraints and neighbor ordering
func (l SegmentList) Validate() error {
	for i, seg := range l {
		if seg.StartTime < 0 || seg.EndTime < 0 {
			return errors.New("segment times must be non-negative")
		}
		if seg.StartTime >= seg.EndTime {
			return errors.New("segment start time must be before end time")
		}
		if seg.Confidence != nil && (*seg.Confidence < 0 || *seg.Confidence > 1) {
			return errors.New("segment confidence must be within [0,1]")
		}
		if i > 0 && seg.StartTime < l[i-1].EndTime {
			return errors.New("segments must be ordered and non-overlapping")
		}
	}
	return nil
}

// Transcript holds the time-synced segments for one reel
type Transcript struct {
	ID        uint           `gorm:"primarykey" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UUID      string      `json:"id" gorm:"uniqueIndex;not null"`
	ReelID    uint        `json:"-" gorm:"uniqueIndex;not null"`
	ReelUUID  string      `json:"reel_id" gorm:"index"`
	Version   int         `json:"version" gorm:"default:1"`
	Segments  SegmentList `json:"segments" gorm:"type:json"`
	Language  string      `json:"language"`
	UpdatedBy string      `json:"updated_by"`
}

// TableName specifies the table name for Transcript
func (Transcript) TableName() string {
	return "transcripts"
}
