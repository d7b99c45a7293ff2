// Package domain holds the dashboard contracts shared by the HTTP API, the
// exporters and the report CLI.
package domain

import (
	"time"
)

// WorkshopDescriptor is a catalog entry of the school programme
type WorkshopDescriptor struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Heading     string `json:"heading"`
	Schedule    string `json:"schedule"`
	Description string `json:"description"`
}

// AttendanceCategory is one of the closed set of answers to a workshop question
type AttendanceCategory string

const (
	AttendanceWillAttend    AttendanceCategory = "Participaré"
	AttendanceWithChildren  AttendanceCategory = "Asistiré con infancias"
	AttendanceWillNotAttend AttendanceCategory = "No participaré"
	AttendanceNotSure       AttendanceCategory = "No estoy seguro/a todavía"
)

// AttendanceCategories lists the categories in display order
var AttendanceCategories = []AttendanceCategory{
	AttendanceWillAttend,
	AttendanceWithChildren,
	AttendanceWillNotAttend,
	AttendanceNotSure,
}

// CategoryCount is one bar of a breakdown chart
type CategoryCount struct {
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Contact identifies a respondent for follow-up
type Contact struct {
	Row       int    `json:"row"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Territory string `json:"territory"`
}

// AttendanceBreakdown summarizes the declared attendance of one workshop
type AttendanceBreakdown struct {
	Workshop   int             `json:"workshop"`
	Column     string          `json:"column"`
	Categories []CategoryCount `json:"categories"`
	// Total counts the responses in one of the four categories
	Total int `json:"total"`
	// Missing counts blank or unrecognized answers
	Missing int `json:"missing"`

	AttendeesTotal int `json:"attendees_total"`
	WillAttend     int `json:"will_attend"`
	WithChildren   int `json:"with_children"`
	WillNotAttend  int `json:"will_not_attend"`
	NotSure        int `json:"not_sure"`

	Undecided []Contact `json:"undecided"`
}

// ChildrenDetail lists the children a respondent registered
type ChildrenDetail struct {
	Row      int    `json:"row"`
	Name     string `json:"name"`
	Children string `json:"children"`
}

// ChildcareBreakdown summarizes how many respondents come with children
type ChildcareBreakdown struct {
	Total              int              `json:"total"`
	WithChildren       int              `json:"with_children"`
	WithoutChildren    int              `json:"without_children"`
	WithChildrenPct    float64          `json:"with_children_pct"`
	WithoutChildrenPct float64          `json:"without_children_pct"`
	Categories         []CategoryCount  `json:"categories"`
	Children           []ChildrenDetail `json:"children"`
}

// KnowledgeStatus tells whether a knowledge breakdown carries statistics
type KnowledgeStatus string

const (
	KnowledgeOK               KnowledgeStatus = "ok"
	KnowledgeNoQuestion       KnowledgeStatus = "no_question"
	KnowledgeColumnMissing    KnowledgeStatus = "column_missing"
	KnowledgeNoValidResponses KnowledgeStatus = "no_valid_responses"
)

// LevelCount is one level of the 1-5 knowledge scale
type LevelCount struct {
	Level      int     `json:"level"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// KnowledgeRespondent is a respondent highlighted by knowledge level
type KnowledgeRespondent struct {
	Row       int     `json:"row"`
	Name      string  `json:"name"`
	Gender    string  `json:"gender"`
	Territory string  `json:"territory"`
	Level     float64 `json:"level"`
}

// KnowledgeBreakdown summarizes a self-assessed knowledge question
type KnowledgeBreakdown struct {
	Topic    string          `json:"topic"`
	Question string          `json:"question,omitempty"`
	Column   string          `json:"column,omitempty"`
	Status   KnowledgeStatus `json:"status"`

	Mean    float64 `json:"mean"`
	Count   int     `json:"count"`
	Invalid int     `json:"invalid"`

	Distribution []LevelCount          `json:"distribution"`
	High         []KnowledgeRespondent `json:"high"`
	Low          []KnowledgeRespondent `json:"low"`
}

// HasStats reports whether the breakdown carries statistics
func (k KnowledgeBreakdown) HasStats() bool {
	return k.Status == KnowledgeOK
}

// Motivation is one free-text comment
type Motivation struct {
	Row     int    `json:"row"`
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

// Selection is the dashboard view requested by the user
type Selection struct {
	// Workshop is 0 for the all-workshops view
	Workshop int    `json:"workshop"`
	Label    string `json:"label"`
	Column   string `json:"column,omitempty"`
}

// All reports whether the selection is the all-workshops view
func (s Selection) All() bool {
	return s.Workshop == 0
}

// Dashboard is the full result of one pipeline run
type Dashboard struct {
	Selection      Selection           `json:"selection"`
	Workshop       *WorkshopDescriptor `json:"workshop,omitempty"`
	TotalRows      int                 `json:"total_rows"`
	FilteredRows   int                 `json:"filtered_rows"`
	MissingColumns []string            `json:"missing_columns"`

	// Attendance is nil in the all-workshops view
	Attendance  *AttendanceBreakdown `json:"attendance,omitempty"`
	Childcare   ChildcareBreakdown   `json:"childcare"`
	Knowledge   KnowledgeBreakdown   `json:"knowledge"`
	Recycling   KnowledgeBreakdown   `json:"recycling"`
	Motivations []Motivation         `json:"motivations"`

	Source      string    `json:"source,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
