package survey

import (
	"fmt"
	"sort"
	"strings"

	"github.com/LinFrancis/escuela-aucca/internal/config"
)

// Topic identifies a knowledge question. Topics 1 to 6 are the workshops;
// TopicRecycling is the general recycling question.
type Topic int

const TopicRecycling Topic = 0

// Question returns the knowledge question asked for the topic.
func (t Topic) Question() (string, bool) {
	if t == TopicRecycling {
		return config.RecyclingQuestion, true
	}
	q, ok := config.KnowledgeQuestions[int(t)]
	return q, ok
}

// Label returns the human readable name of the topic.
func (t Topic) Label() string {
	if t == TopicRecycling {
		return config.RecyclingTopic
	}
	if w, ok := config.WorkshopByNumber(int(t)); ok {
		return w.Title
	}
	return fmt.Sprintf("Taller %d", int(t))
}

// Field is a person or free-text field of the form.
type Field string

const (
	FieldName       Field = "name"
	FieldPhone      Field = "phone"
	FieldEmail      Field = "email"
	FieldTerritory  Field = "territory"
	FieldGender     Field = "gender"
	FieldCaregiver  Field = "caregiver"
	FieldChildren   Field = "children"
	FieldMotivation Field = "motivation"
)

var fieldOrder = []Field{
	FieldName,
	FieldPhone,
	FieldEmail,
	FieldTerritory,
	FieldGender,
	FieldCaregiver,
	FieldChildren,
	FieldMotivation,
}

var fieldLabels = map[Field]string{
	FieldName:       config.ColumnName,
	FieldPhone:      config.ColumnPhone,
	FieldEmail:      config.ColumnEmail,
	FieldTerritory:  config.ColumnTerritory,
	FieldGender:     config.ColumnGender,
	FieldCaregiver:  config.ColumnCaregiver,
	FieldChildren:   config.ColumnChildren,
	FieldMotivation: config.ColumnMotives,
}

// Kinds of MissingColumn
const (
	MissingField     = "field"
	MissingWorkshop  = "workshop"
	MissingKnowledge = "knowledge"
)

// MissingColumn is an expected column that the table does not carry.
type MissingColumn struct {
	Kind     string
	Name     string
	Expected string
}

// Schema is the column mapping resolved once per table.
type Schema struct {
	Fields    map[Field]string
	Workshops map[int]string
	Knowledge map[Topic]string
	// Candidates are all columns that look like workshop questions
	Candidates []string
	Missing    []MissingColumn
}

// ResolveSchema maps every expected column of the form onto t. Fixed labels
// match exactly first and then by their normalized first line, so edits to
// the explanatory text of a question do not lose the column.
func ResolveSchema(t *Table) Schema {
	s := Schema{
		Fields:     make(map[Field]string, len(fieldOrder)),
		Workshops:  make(map[int]string, len(config.Workshops)),
		Knowledge:  make(map[Topic]string, len(config.KnowledgeQuestions)+1),
		Candidates: workshopColumnCandidates(t.Columns),
	}

	for _, f := range fieldOrder {
		expected := fieldLabels[f]
		if column, ok := matchColumn(t.Columns, expected); ok {
			s.Fields[f] = column
			continue
		}
		s.Missing = append(s.Missing, MissingColumn{Kind: MissingField, Name: string(f), Expected: expected})
	}

	for _, w := range config.Workshops {
		if column, ok := resolveWorkshopColumn(t.Columns, w.Number); ok {
			s.Workshops[w.Number] = column
			continue
		}
		s.Missing = append(s.Missing, MissingColumn{
			Kind:     MissingWorkshop,
			Name:     w.Title,
			Expected: fmt.Sprintf("Taller %d:", w.Number),
		})
	}

	for _, topic := range knowledgeTopics() {
		question, _ := topic.Question()
		if column, ok := matchColumn(t.Columns, question); ok {
			s.Knowledge[topic] = column
			continue
		}
		s.Missing = append(s.Missing, MissingColumn{Kind: MissingKnowledge, Name: topic.Label(), Expected: question})
	}

	return s
}

// Column returns the column resolved for f.
func (s Schema) Column(f Field) (string, bool) {
	c, ok := s.Fields[f]
	return c, ok
}

// WorkshopColumn returns the attendance column of workshop n.
func (s Schema) WorkshopColumn(n int) (string, bool) {
	c, ok := s.Workshops[n]
	return c, ok
}

// KnowledgeColumn returns the knowledge column of topic.
func (s Schema) KnowledgeColumn(topic Topic) (string, bool) {
	c, ok := s.Knowledge[topic]
	return c, ok
}

// MissingLabels returns the expected labels of every missing column.
func (s Schema) MissingLabels() []string {
	labels := make([]string, 0, len(s.Missing))
	for _, m := range s.Missing {
		labels = append(labels, m.Expected)
	}
	return labels
}

// knowledgeTopics returns the workshop topics in ascending order followed by
// the recycling topic.
func knowledgeTopics() []Topic {
	topics := make([]Topic, 0, len(config.KnowledgeQuestions)+1)
	for n := range config.KnowledgeQuestions {
		topics = append(topics, Topic(n))
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i] < topics[j] })
	return append(topics, TopicRecycling)
}

func matchColumn(columns []string, expected string) (string, bool) {
	for _, c := range columns {
		if c == expected {
			return c, true
		}
	}

	stem := labelStem(expected)
	if stem == "" {
		return "", false
	}
	for _, c := range columns {
		if strings.HasPrefix(normalizeLabel(c), stem) {
			return c, true
		}
	}
	return "", false
}

// labelStem is the normalized first line of a label.
func labelStem(label string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(label), "\n")
	return normalizeLabel(first)
}

func normalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// Response is one typed survey response. Values are trimmed and empty when
// the column is absent or blank.
type Response struct {
	// Index is the position of the response in the table
	Index int

	Name       string
	Phone      string
	Email      string
	Territory  string
	Gender     string
	Caregiver  string
	Children   string
	Motivation string

	Attendance map[int]string
	Knowledge  map[Topic]string
}

// Row returns the 1-based position of the response.
func (r Response) Row() int {
	return r.Index + 1
}

// Decode turns every row of t into a Response using the resolved schema.
func Decode(t *Table, s Schema) []Response {
	responses := make([]Response, len(t.Rows))
	for i, row := range t.Rows {
		field := func(f Field) string {
			if c, ok := s.Fields[f]; ok {
				return row.Get(c).String()
			}
			return ""
		}

		r := Response{
			Index:      i,
			Name:       field(FieldName),
			Phone:      field(FieldPhone),
			Email:      field(FieldEmail),
			Territory:  field(FieldTerritory),
			Gender:     field(FieldGender),
			Caregiver:  field(FieldCaregiver),
			Children:   field(FieldChildren),
			Motivation: field(FieldMotivation),
			Attendance: make(map[int]string, len(s.Workshops)),
			Knowledge:  make(map[Topic]string, len(s.Knowledge)),
		}
		for n, c := range s.Workshops {
			r.Attendance[n] = row.Get(c).String()
		}
		for topic, c := range s.Knowledge {
			r.Knowledge[topic] = row.Get(c).String()
		}
		responses[i] = r
	}
	return responses
}
