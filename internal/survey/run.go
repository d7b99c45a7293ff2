package survey

import (
	"time"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// Run is one evaluation of the pipeline for a selection. It replaces any
// shared "current column" state: every aggregation reads from the run.
type Run struct {
	Table     *Table
	Schema    Schema
	Selection Selection
	// Column is the attendance column of the selected workshop
	Column    string
	Responses []Response
	Filtered  []Response
}

// NewRun validates the selection, resolves the schema, decodes the table and
// applies the filter.
func NewRun(t *Table, sel Selection) (*Run, error) {
	if t == nil {
		return nil, ErrEmptyTable
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	schema := ResolveSchema(t)
	responses := Decode(t, schema)

	filtered, err := Filter(responses, sel, schema)
	if err != nil {
		return nil, err
	}

	r := &Run{
		Table:     t,
		Schema:    schema,
		Selection: sel,
		Responses: responses,
		Filtered:  filtered,
	}
	if !sel.All() {
		r.Column, _ = schema.WorkshopColumn(sel.Workshop)
	}
	return r, nil
}

// Attendance returns the attendance breakdown, or nil for the all-workshops
// view.
func (r *Run) Attendance() *domain.AttendanceBreakdown {
	if r.Selection.All() {
		return nil
	}
	b := Attendance(r.Responses, r.Selection.Workshop, r.Column)
	return &b
}

// Childcare returns the childcare breakdown of the filtered responses.
func (r *Run) Childcare() domain.ChildcareBreakdown {
	return Childcare(r.Filtered)
}

// Knowledge returns the knowledge breakdown of the selected workshop.
func (r *Run) Knowledge() domain.KnowledgeBreakdown {
	if r.Selection.All() {
		return NoKnowledgeQuestion(r.Selection.Label())
	}
	return Knowledge(r.Filtered, Topic(r.Selection.Workshop), r.Schema)
}

// Recycling returns the general recycling knowledge breakdown of the filtered
// responses.
func (r *Run) Recycling() domain.KnowledgeBreakdown {
	return Knowledge(r.Filtered, TopicRecycling, r.Schema)
}

// Motivations returns the comments of the filtered responses.
func (r *Run) Motivations() []domain.Motivation {
	return Motivations(r.Filtered)
}

// Dashboard assembles every section of the run.
func (r *Run) Dashboard() *domain.Dashboard {
	d := &domain.Dashboard{
		Selection: domain.Selection{
			Workshop: r.Selection.Workshop,
			Label:    r.Selection.Label(),
			Column:   r.Column,
		},
		TotalRows:      len(r.Responses),
		FilteredRows:   len(r.Filtered),
		MissingColumns: r.Schema.MissingLabels(),
		Attendance:     r.Attendance(),
		Childcare:      r.Childcare(),
		Knowledge:      r.Knowledge(),
		Recycling:      r.Recycling(),
		Motivations:    r.Motivations(),
		GeneratedAt:    time.Now().UTC(),
	}
	if w, ok := Descriptor(r.Selection.Workshop); ok {
		d.Workshop = w
	}
	return d
}
