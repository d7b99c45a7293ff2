package survey

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/LinFrancis/escuela-aucca/pkg/contracts/domain"
)

// Knowledge level thresholds
const (
	HighKnowledge = 4
	LowKnowledge  = 2
)

// ParseLevel coerces a knowledge answer to a number. Blank, non-numeric and
// non-finite answers are rejected.
func ParseLevel(answer string) (float64, bool) {
	a := strings.TrimSpace(answer)
	if a == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(a, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Knowledge summarizes the self-assessed level of topic over responses.
// Answers that are not numbers are left out of every statistic.
func Knowledge(responses []Response, topic Topic, s Schema) domain.KnowledgeBreakdown {
	b := domain.KnowledgeBreakdown{
		Topic:        topic.Label(),
		Distribution: []domain.LevelCount{},
		High:         []domain.KnowledgeRespondent{},
		Low:          []domain.KnowledgeRespondent{},
	}

	question, ok := topic.Question()
	if !ok {
		b.Status = domain.KnowledgeNoQuestion
		return b
	}
	b.Question = question

	column, ok := s.KnowledgeColumn(topic)
	if !ok {
		b.Status = domain.KnowledgeColumnMissing
		return b
	}
	b.Column = column

	values := make([]float64, 0, len(responses))
	levels := make(map[int]int)
	for _, r := range responses {
		answer := r.Knowledge[topic]
		v, ok := ParseLevel(answer)
		if !ok {
			if answer != "" {
				b.Invalid++
			}
			continue
		}

		values = append(values, v)
		levels[int(math.Round(v))]++

		respondent := domain.KnowledgeRespondent{
			Row:       r.Row(),
			Name:      r.Name,
			Gender:    r.Gender,
			Territory: r.Territory,
			Level:     v,
		}
		if v >= HighKnowledge {
			b.High = append(b.High, respondent)
		}
		if v <= LowKnowledge {
			b.Low = append(b.Low, respondent)
		}
	}

	if len(values) == 0 {
		b.Status = domain.KnowledgeNoValidResponses
		return b
	}

	m, err := mean(values)
	if err != nil {
		b.Status = domain.KnowledgeNoValidResponses
		return b
	}
	b.Status = domain.KnowledgeOK
	b.Mean = m
	b.Count = len(values)

	keys := make([]int, 0, len(levels))
	for level := range levels {
		keys = append(keys, level)
	}
	sort.Ints(keys)
	for _, level := range keys {
		b.Distribution = append(b.Distribution, domain.LevelCount{
			Level:      level,
			Count:      levels[level],
			Percentage: percentage(levels[level], b.Count),
		})
	}

	return b
}

// NoKnowledgeQuestion is the breakdown of a selection without an associated
// knowledge question, such as the all-workshops view.
func NoKnowledgeQuestion(label string) domain.KnowledgeBreakdown {
	return domain.KnowledgeBreakdown{
		Topic:        label,
		Status:       domain.KnowledgeNoQuestion,
		Distribution: []domain.LevelCount{},
		High:         []domain.KnowledgeRespondent{},
		Low:          []domain.KnowledgeRespondent{},
	}
}
