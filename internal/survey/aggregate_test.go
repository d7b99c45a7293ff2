package survey

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

func attendanceResponses(answers ...string) []Response {
	out := make([]Response, len(answers))
	for i, a := range answers {
		out[i] = Response{
			Index:      i,
			Name:       string(rune('A' + i)),
			Attendance: map[int]string{1: a},
		}
	}
	return out
}

// sumPercentages rounds to one decimal, the precision of each percentage,
// so 33.3+33.3+33.3 compares as 99.9 rather than 99.89999999999999.
func sumPercentages(categories []domain.CategoryCount) float64 {
	var total float64
	for _, c := range categories {
		total += c.Percentage
	}
	return math.Round(total*10) / 10
}

func TestAttendance(t *testing.T) {
	tests := []struct {
		name          string
		answers       []string
		wantCounts    []int
		wantPcts      []float64
		wantTotal     int
		wantMissing   int
		wantAttendees int
		wantUndecided []string
	}{
		{
			name:          "example breakdown",
			answers:       []string{"Participaré", "Participaré", "No participaré", "No estoy seguro/a todavía"},
			wantCounts:    []int{2, 0, 1, 1},
			wantPcts:      []float64{50, 0, 25, 25},
			wantTotal:     4,
			wantAttendees: 2,
			wantUndecided: []string{"D"},
		},
		{
			name:          "unrecognized and blank answers are missing",
			answers:       []string{" Asistiré con infancias ", "", "Quizás", "Participaré"},
			wantCounts:    []int{1, 1, 0, 0},
			wantPcts:      []float64{50, 50, 0, 0},
			wantTotal:     2,
			wantMissing:   2,
			wantAttendees: 2,
			wantUndecided: []string{},
		},
		{
			name:          "thirds round to one decimal",
			answers:       []string{"Participaré", "No participaré", "No estoy seguro/a todavía"},
			wantCounts:    []int{1, 0, 1, 1},
			wantPcts:      []float64{33.3, 0, 33.3, 33.3},
			wantTotal:     3,
			wantAttendees: 1,
			wantUndecided: []string{"C"},
		},
		{
			name:          "empty column",
			answers:       []string{"", ""},
			wantCounts:    []int{0, 0, 0, 0},
			wantPcts:      []float64{0, 0, 0, 0},
			wantMissing:   2,
			wantUndecided: []string{},
		},
		{
			name:          "undecided listed even with variant wording",
			answers:       []string{"No estoy seguro todavía"},
			wantCounts:    []int{0, 0, 0, 0},
			wantPcts:      []float64{0, 0, 0, 0},
			wantMissing:   1,
			wantUndecided: []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Attendance(attendanceResponses(tt.answers...), 1, "Taller 1: Compostaje")

			require.Len(t, b.Categories, 4)
			for i, category := range domain.AttendanceCategories {
				assert.Equal(t, string(category), b.Categories[i].Category)
				assert.Equal(t, tt.wantCounts[i], b.Categories[i].Count, category)
				assert.Equal(t, tt.wantPcts[i], b.Categories[i].Percentage, category)
			}
			assert.Equal(t, tt.wantTotal, b.Total)
			assert.Equal(t, tt.wantMissing, b.Missing)
			assert.Equal(t, tt.wantAttendees, b.AttendeesTotal)
			assert.Equal(t, b.WillAttend+b.WithChildren+b.WillNotAttend+b.NotSure, b.Total)

			undecided := make([]string, len(b.Undecided))
			for i, c := range b.Undecided {
				undecided[i] = c.Name
			}
			assert.Equal(t, tt.wantUndecided, undecided)

			if b.Total > 0 {
				assert.InDelta(t, 100.0, sumPercentages(b.Categories), 0.1)
			}
		})
	}
}

func TestAttendance_Fixture(t *testing.T) {
	table := fixtureTable(t)
	responses := Decode(table, ResolveSchema(table))

	b := Attendance(responses, 1, "Taller 1: Compostaje y Lombricultura")

	assert.Equal(t, 5, b.Total)
	assert.Equal(t, 2, b.WillAttend)
	assert.Equal(t, 1, b.WithChildren)
	assert.Equal(t, 1, b.WillNotAttend)
	assert.Equal(t, 1, b.NotSure)
	assert.Equal(t, 3, b.AttendeesTotal)
	assert.Equal(t, []float64{40, 20, 20, 20}, []float64{
		b.Categories[0].Percentage, b.Categories[1].Percentage,
		b.Categories[2].Percentage, b.Categories[3].Percentage,
	})

	require.Len(t, b.Undecided, 1)
	assert.Equal(t, domain.Contact{
		Row:       3,
		Name:      "Carla Rojas",
		Phone:     "+56933333333",
		Email:     "carla@example.cl",
		Territory: "Peñaflor",
	}, b.Undecided[0])
}

func TestChildcare(t *testing.T) {
	tests := []struct {
		name        string
		caregivers  []string
		children    []string
		wantWith    int
		wantWithout int
		wantPcts    [2]float64
		wantDetail  []string
	}{
		{
			name:        "example classification",
			caregivers:  []string{"Sí, tengo...", "No", "sí", "N/A"},
			children:    []string{"Tomás (7)", "", "", ""},
			wantWith:    2,
			wantWithout: 2,
			wantPcts:    [2]float64{50, 50},
			wantDetail:  []string{"A"},
		},
		{
			name:        "thirds",
			caregivers:  []string{"Sí", "No", ""},
			children:    []string{"Luz (5)", "", ""},
			wantWith:    1,
			wantWithout: 2,
			wantPcts:    [2]float64{33.3, 66.7},
			wantDetail:  []string{"A"},
		},
		{
			name:        "accent required",
			caregivers:  []string{"Si", "SÍ"},
			children:    []string{"", "Sol (9)"},
			wantWith:    1,
			wantWithout: 1,
			wantPcts:    [2]float64{50, 50},
			wantDetail:  []string{"B"},
		},
		{
			name:       "empty set",
			wantPcts:   [2]float64{0, 0},
			wantDetail: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := make([]Response, len(tt.caregivers))
			for i := range tt.caregivers {
				responses[i] = Response{
					Index:     i,
					Name:      string(rune('A' + i)),
					Caregiver: tt.caregivers[i],
					Children:  tt.children[i],
				}
			}

			b := Childcare(responses)

			assert.Equal(t, len(responses), b.Total)
			assert.Equal(t, tt.wantWith, b.WithChildren)
			assert.Equal(t, tt.wantWithout, b.WithoutChildren)
			assert.Equal(t, b.Total, b.WithChildren+b.WithoutChildren)
			assert.Equal(t, tt.wantPcts[0], b.WithChildrenPct)
			assert.Equal(t, tt.wantPcts[1], b.WithoutChildrenPct)

			require.Len(t, b.Categories, 2)
			assert.Equal(t, CategoryWithChildren, b.Categories[0].Category)
			assert.Equal(t, CategoryWithoutChildren, b.Categories[1].Category)

			detail := make([]string, len(b.Children))
			for i, c := range b.Children {
				detail[i] = c.Name
			}
			assert.Equal(t, tt.wantDetail, detail)
		})
	}
}

func TestKnowledge(t *testing.T) {
	schema := Schema{Knowledge: map[Topic]string{1: "Q1", TopicRecycling: "QR"}}

	tests := []struct {
		name       string
		answers    []string
		topic      Topic
		schema     Schema
		wantStatus domain.KnowledgeStatus
		wantMean   float64
		wantCount  int
		wantInv    int
		wantHigh   []string
		wantLow    []string
		wantLevels []int
	}{
		{
			name:       "example values",
			answers:    []string{"4", "x", "2", "5", ""},
			topic:      1,
			schema:     schema,
			wantStatus: domain.KnowledgeOK,
			wantMean:   3.67,
			wantCount:  3,
			wantInv:    1,
			wantHigh:   []string{"A", "D"},
			wantLow:    []string{"C"},
			wantLevels: []int{2, 4, 5},
		},
		{
			name:       "decimals bucket by rounded level",
			answers:    []string{"4.0", "3.5", " 1 "},
			topic:      TopicRecycling,
			schema:     schema,
			wantStatus: domain.KnowledgeOK,
			wantMean:   2.83,
			wantCount:  3,
			wantHigh:   []string{"A"},
			wantLow:    []string{"C"},
			wantLevels: []int{1, 4},
		},
		{
			name:       "no valid responses",
			answers:    []string{"x", "", "NaN", "Inf"},
			topic:      1,
			schema:     schema,
			wantStatus: domain.KnowledgeNoValidResponses,
			wantInv:    3,
			wantHigh:   []string{},
			wantLow:    []string{},
			wantLevels: []int{},
		},
		{
			name:       "column missing",
			answers:    []string{"4"},
			topic:      2,
			schema:     schema,
			wantStatus: domain.KnowledgeColumnMissing,
			wantHigh:   []string{},
			wantLow:    []string{},
			wantLevels: []int{},
		},
		{
			name:       "no question",
			answers:    []string{"4"},
			topic:      9,
			schema:     schema,
			wantStatus: domain.KnowledgeNoQuestion,
			wantHigh:   []string{},
			wantLow:    []string{},
			wantLevels: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responses := make([]Response, len(tt.answers))
			for i, a := range tt.answers {
				responses[i] = Response{
					Index:     i,
					Name:      string(rune('A' + i)),
					Knowledge: map[Topic]string{tt.topic: a},
				}
			}

			b := Knowledge(responses, tt.topic, tt.schema)

			assert.Equal(t, tt.wantStatus, b.Status)
			assert.Equal(t, tt.wantStatus == domain.KnowledgeOK, b.HasStats())
			assert.Equal(t, tt.wantMean, b.Mean)
			assert.Equal(t, tt.wantCount, b.Count)
			assert.Equal(t, tt.wantInv, b.Invalid)

			high := make([]string, len(b.High))
			for i, r := range b.High {
				high[i] = r.Name
			}
			low := make([]string, len(b.Low))
			for i, r := range b.Low {
				low[i] = r.Name
			}
			levels := make([]int, len(b.Distribution))
			total := 0
			for i, l := range b.Distribution {
				levels[i] = l.Level
				total += l.Count
			}

			assert.Equal(t, tt.wantHigh, high)
			assert.Equal(t, tt.wantLow, low)
			assert.Equal(t, tt.wantLevels, levels)
			assert.Equal(t, b.Count, total)
		})
	}
}

func TestKnowledge_MeanIgnoresInvalidRows(t *testing.T) {
	schema := Schema{Knowledge: map[Topic]string{3: "Q3"}}
	build := func(answers ...string) domain.KnowledgeBreakdown {
		responses := make([]Response, len(answers))
		for i, a := range answers {
			responses[i] = Response{Index: i, Knowledge: map[Topic]string{3: a}}
		}
		return Knowledge(responses, 3, schema)
	}

	clean := build("1", "5", "3")
	noisy := build("1", "no sé", "5", "", "3", "cinco")

	assert.Equal(t, clean.Mean, noisy.Mean)
	assert.Equal(t, clean.Count, noisy.Count)
	assert.Equal(t, 2, noisy.Invalid)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"4", 4, true},
		{" 2.5 ", 2.5, true},
		{"", 0, false},
		{"x", 0, false},
		{"NaN", 0, false},
		{"+Inf", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMotivations(t *testing.T) {
	responses := []Response{
		{Index: 0, Name: "Ana", Motivation: "Aprender a compostar"},
		{Index: 1, Name: "Benito", Motivation: "."},
		{Index: 2, Name: "Carla", Motivation: ""},
		{Index: 3, Name: "Diego", Motivation: "ñu"},
		{Index: 4, Name: "Elena", Motivation: "Aprender a compostar"},
	}

	got := Motivations(responses)

	require.Len(t, got, 3)
	assert.Equal(t, domain.Motivation{Row: 1, Name: "Ana", Comment: "Aprender a compostar"}, got[0])
	assert.Equal(t, "Diego", got[1].Name)
	assert.Equal(t, "Elena", got[2].Name, "duplicates are kept")

	assert.Empty(t, Motivations(nil))
}
