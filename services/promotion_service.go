package services

import (
	"fmt"
	"sort"
	"strings"

	"reserve-management-api/models"
)

// Eligibility classifications.
const (
	EligibilityEligible          = "eligible"
	EligibilityPartiallyEligible = "partially_eligible"
	EligibilityNotEligible       = "not_eligible"
)

// Sort directions accepted by RankCandidates.
const (
	SortDesc = "desc"
	SortAsc  = "asc"
)

// Education levels ordered from lowest to highest. Requirements may name a
// minimum level; unknown values rank below every known level.
var educationLevelOrder = map[string]int{
	"elementary":   1,
	"high_school":  2,
	"vocational":   3,
	"college":      4,
	"postgraduate": 5,
}

// PromotionMetrics carries the raw service/training/duty figures for one
// candidate, as aggregated by PromotionMetricsService.
type PromotionMetrics struct {
	ReservistID        int     `json:"reservist_id"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Rank               string  `json:"rank"`
	Company            string  `json:"company"`
	CommissionType     string  `json:"commission_type"`
	YearsInService     float64 `json:"years_in_service"`
	TotalTrainingHours float64 `json:"total_training_hours"`
	TrainingTypesCount int     `json:"training_types_count"`
	CampDutyDays       int     `json:"camp_duty_days"`
	SeminarCount       int     `json:"seminar_count"`
	HighestEducation   string  `json:"highest_education"`
}

// PromotionEligibility is the computed eligibility view for one candidate.
// It is derived fresh on every request and never persisted.
type PromotionEligibility struct {
	ReservistID        int     `json:"reservist_id"`
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Rank               string  `json:"rank"`
	Company            string  `json:"company"`
	CommissionType     string  `json:"commission_type"`
	YearsInService     float64 `json:"years_in_service"`
	TotalTrainingHours float64 `json:"total_training_hours"`
	TrainingTypesCount int     `json:"training_types_count"`
	CampDutyDays       int     `json:"camp_duty_days"`
	SeminarCount       int     `json:"seminar_count"`
	HighestEducation   string  `json:"highest_education"`

	EligibilityStatus string `json:"eligibility_status"`

	MeetsTrainingRequirement    bool `json:"meets_training_requirement"`
	MeetsCampDutyRequirement    bool `json:"meets_camp_duty_requirement"`
	MeetsSeminarRequirement     bool `json:"meets_seminar_requirement"`
	MeetsServiceTimeRequirement bool `json:"meets_service_time_requirement"`
	MeetsEducationRequirement   bool `json:"meets_education_requirement"`

	NeededTrainingTypes int     `json:"needed_training_types"`
	NeededCampDutyDays  int     `json:"needed_camp_duty_days"`
	NeededSeminars      int     `json:"needed_seminars"`
	NeededYears         float64 `json:"needed_years"`

	ReadinessScore int `json:"readiness_score"`
}

// SortName returns the "{last} {first}" key used for the final tie-break.
func (e *PromotionEligibility) SortName() string {
	return e.LastName + " " + e.FirstName
}

// EvaluateEligibility computes the eligibility view for one candidate against
// the active requirement for their rank. Pure: no I/O, no shared state.
func EvaluateEligibility(m PromotionMetrics, req models.PromotionRequirement) PromotionEligibility {
	e := PromotionEligibility{
		ReservistID:        m.ReservistID,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Rank:               m.Rank,
		Company:            m.Company,
		CommissionType:     m.CommissionType,
		YearsInService:     m.YearsInService,
		TotalTrainingHours: m.TotalTrainingHours,
		TrainingTypesCount: m.TrainingTypesCount,
		CampDutyDays:       m.CampDutyDays,
		SeminarCount:       m.SeminarCount,
		HighestEducation:   m.HighestEducation,
	}

	e.MeetsTrainingRequirement = m.TrainingTypesCount >= req.RequiredTrainingTypes
	e.MeetsCampDutyRequirement = m.CampDutyDays >= req.CampDutyDays
	e.MeetsSeminarRequirement = m.SeminarCount >= req.SeminarsRequired
	e.MeetsServiceTimeRequirement = m.YearsInService >= req.YearsInCurrentRank
	e.MeetsEducationRequirement = meetsEducation(m.HighestEducation, req.MinEducationLevel)

	e.NeededTrainingTypes = maxInt(0, req.RequiredTrainingTypes-m.TrainingTypesCount)
	e.NeededCampDutyDays = maxInt(0, req.CampDutyDays-m.CampDutyDays)
	e.NeededSeminars = maxInt(0, req.SeminarsRequired-m.SeminarCount)
	if gap := req.YearsInCurrentRank - m.YearsInService; gap > 0 {
		e.NeededYears = gap
	}

	flags := 0
	for _, met := range []bool{
		e.MeetsTrainingRequirement,
		e.MeetsCampDutyRequirement,
		e.MeetsSeminarRequirement,
		e.MeetsServiceTimeRequirement,
		e.MeetsEducationRequirement,
	} {
		if met {
			flags++
		}
	}

	// Every flag contributes 20%, so the score is always a multiple of 20.
	e.ReadinessScore = flags * 20

	// Boundary: 2-4 of 5 flags counts as partially eligible; 0 or 1 does not.
	switch {
	case flags == 5:
		e.EligibilityStatus = EligibilityEligible
	case flags >= 2:
		e.EligibilityStatus = EligibilityPartiallyEligible
	default:
		e.EligibilityStatus = EligibilityNotEligible
	}

	return e
}

// meetsEducation applies the optional education gate. A requirement without a
// minimum level always passes.
func meetsEducation(actual string, minLevel *string) bool {
	if minLevel == nil || strings.TrimSpace(*minLevel) == "" {
		return true
	}
	required, ok := educationLevelOrder[normalizeLevel(*minLevel)]
	if !ok {
		return true
	}
	return educationLevelOrder[normalizeLevel(actual)] >= required
}

func normalizeLevel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// compareCandidates orders a before b in the descending ranking. Each
// comparator applies only when every prior comparator ties; the name
// comparison guarantees a total order for distinct candidates.
func compareCandidates(a, b *PromotionEligibility) bool {
	if a.ReadinessScore != b.ReadinessScore {
		return a.ReadinessScore > b.ReadinessScore
	}
	if a.TrainingTypesCount != b.TrainingTypesCount {
		return a.TrainingTypesCount > b.TrainingTypesCount
	}
	if a.CampDutyDays != b.CampDutyDays {
		return a.CampDutyDays > b.CampDutyDays
	}
	if a.SeminarCount != b.SeminarCount {
		return a.SeminarCount > b.SeminarCount
	}
	if a.YearsInService != b.YearsInService {
		return a.YearsInService > b.YearsInService
	}
	if a.TotalTrainingHours != b.TotalTrainingHours {
		return a.TotalTrainingHours > b.TotalTrainingHours
	}
	return a.SortName() < b.SortName()
}

// RankCandidates returns a new slice sorted by the promotion ranking.
// direction "asc" reverses the final descending sequence (weakest candidate
// first), not the individual comparators. The input slice is not modified.
func RankCandidates(candidates []PromotionEligibility, direction string) []PromotionEligibility {
	ranked := make([]PromotionEligibility, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return compareCandidates(&ranked[i], &ranked[j])
	})

	if normalizeLevel(direction) == SortAsc {
		for i, j := 0, len(ranked)-1; i < j; i, j = i+1, j-1 {
			ranked[i], ranked[j] = ranked[j], ranked[i]
		}
	}

	return ranked
}

// JustifyCandidate builds a human-readable explanation of a candidate's
// standing, checking categories in descending severity and keeping the first
// matching phrase per category.
func JustifyCandidate(e PromotionEligibility, req models.PromotionRequirement) string {
	var phrases []string

	switch {
	case e.ReadinessScore == 100:
		phrases = append(phrases, "meets every promotion requirement")
	case e.ReadinessScore >= 80:
		phrases = append(phrases, "close to full readiness")
	case e.ReadinessScore >= 40:
		phrases = append(phrases, "partially ready for promotion")
	case e.ReadinessScore > 0:
		phrases = append(phrases, "falls short on most requirements")
	}

	switch {
	case e.TrainingTypesCount >= req.RequiredTrainingTypes+2:
		phrases = append(phrases, fmt.Sprintf("exceptional training breadth (%d types)", e.TrainingTypesCount))
	case e.TrainingTypesCount >= req.RequiredTrainingTypes:
		phrases = append(phrases, "required training breadth completed")
	case e.NeededTrainingTypes > 0:
		phrases = append(phrases, fmt.Sprintf("needs %d more training type(s)", e.NeededTrainingTypes))
	}

	switch {
	case e.CampDutyDays >= req.CampDutyDays+15:
		phrases = append(phrases, fmt.Sprintf("extensive camp duty record (%d days)", e.CampDutyDays))
	case e.NeededCampDutyDays > 0:
		phrases = append(phrases, fmt.Sprintf("needs %d more camp duty day(s)", e.NeededCampDutyDays))
	}

	switch {
	case e.SeminarCount >= req.SeminarsRequired+2:
		phrases = append(phrases, fmt.Sprintf("strong seminar participation (%d attended)", e.SeminarCount))
	case e.NeededSeminars > 0:
		phrases = append(phrases, fmt.Sprintf("needs %d more seminar(s)", e.NeededSeminars))
	}

	if e.TotalTrainingHours >= 150 {
		phrases = append(phrases, fmt.Sprintf("%.0f accumulated training hours", e.TotalTrainingHours))
	}

	switch {
	case e.YearsInService >= req.YearsInCurrentRank+3:
		phrases = append(phrases, fmt.Sprintf("long service in current rank (%.1f years)", e.YearsInService))
	case e.NeededYears > 0:
		phrases = append(phrases, fmt.Sprintf("needs %.1f more year(s) in rank", e.NeededYears))
	}

	if len(phrases) == 0 {
		return "meets basic promotion criteria"
	}
	return strings.Join(phrases, "; ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
