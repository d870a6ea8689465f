package services

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"reserve-management-api/models"
)

func baseRequirement() models.PromotionRequirement {
	return models.PromotionRequirement{
		RequirementID:         1,
		FromRank:              "private",
		RequiredTrainingTypes: 4,
		YearsInCurrentRank:    5,
		SeminarsRequired:      3,
		CampDutyDays:          30,
		IsActive:              true,
	}
}

func TestEvaluateEligibility_FullyEligible(t *testing.T) {
	m := PromotionMetrics{
		ReservistID:        10,
		FirstName:          "Juan",
		LastName:           "Santos",
		Rank:               "private",
		YearsInService:     8,
		TotalTrainingHours: 200,
		TrainingTypesCount: 6,
		CampDutyDays:       45,
		SeminarCount:       4,
	}

	e := EvaluateEligibility(m, baseRequirement())

	if e.EligibilityStatus != EligibilityEligible {
		t.Errorf("status = %q, want eligible", e.EligibilityStatus)
	}
	if e.ReadinessScore != 100 {
		t.Errorf("score = %d, want 100", e.ReadinessScore)
	}
	for name, met := range map[string]bool{
		"training":  e.MeetsTrainingRequirement,
		"camp duty": e.MeetsCampDutyRequirement,
		"seminars":  e.MeetsSeminarRequirement,
		"service":   e.MeetsServiceTimeRequirement,
		"education": e.MeetsEducationRequirement,
	} {
		if !met {
			t.Errorf("%s requirement reported unmet", name)
		}
	}
	if e.NeededTrainingTypes != 0 || e.NeededCampDutyDays != 0 || e.NeededSeminars != 0 || e.NeededYears != 0 {
		t.Errorf("needed deltas not zero for fully eligible candidate: %+v", e)
	}
}

func TestEvaluateEligibility_ScoreTiers(t *testing.T) {
	req := baseRequirement()

	// Metrics constructed so each case satisfies exactly `flags` of the five
	// requirements. Education has no minimum here, so it always counts as met;
	// the remaining four are toggled through the raw figures.
	metricsWithFlags := func(flags int) PromotionMetrics {
		m := PromotionMetrics{FirstName: "Test", LastName: "Case"}
		raised := flags - 1 // education is always met
		if raised >= 1 {
			m.TrainingTypesCount = req.RequiredTrainingTypes
		}
		if raised >= 2 {
			m.CampDutyDays = req.CampDutyDays
		}
		if raised >= 3 {
			m.SeminarCount = req.SeminarsRequired
		}
		if raised >= 4 {
			m.YearsInService = req.YearsInCurrentRank
		}
		return m
	}

	tests := []struct {
		flags      int
		wantScore  int
		wantStatus string
	}{
		{1, 20, EligibilityNotEligible},
		{2, 40, EligibilityPartiallyEligible},
		{3, 60, EligibilityPartiallyEligible},
		{4, 80, EligibilityPartiallyEligible},
		{5, 100, EligibilityEligible},
	}

	for _, tt := range tests {
		e := EvaluateEligibility(metricsWithFlags(tt.flags), req)
		if e.ReadinessScore != tt.wantScore {
			t.Errorf("flags=%d: score = %d, want %d", tt.flags, e.ReadinessScore, tt.wantScore)
		}
		if e.EligibilityStatus != tt.wantStatus {
			t.Errorf("flags=%d: status = %q, want %q", tt.flags, e.EligibilityStatus, tt.wantStatus)
		}
		if e.ReadinessScore%20 != 0 {
			t.Errorf("flags=%d: score %d is not a multiple of 20", tt.flags, e.ReadinessScore)
		}
	}
}

func TestEvaluateEligibility_NeededDeltas(t *testing.T) {
	m := PromotionMetrics{
		TrainingTypesCount: 1,
		CampDutyDays:       10,
		SeminarCount:       0,
		YearsInService:     3.5,
	}

	e := EvaluateEligibility(m, baseRequirement())

	if e.NeededTrainingTypes != 3 {
		t.Errorf("NeededTrainingTypes = %d, want 3", e.NeededTrainingTypes)
	}
	if e.NeededCampDutyDays != 20 {
		t.Errorf("NeededCampDutyDays = %d, want 20", e.NeededCampDutyDays)
	}
	if e.NeededSeminars != 3 {
		t.Errorf("NeededSeminars = %d, want 3", e.NeededSeminars)
	}
	if e.NeededYears != 1.5 {
		t.Errorf("NeededYears = %v, want 1.5", e.NeededYears)
	}
}

func TestEvaluateEligibility_EducationGate(t *testing.T) {
	college := "college"
	unknown := "officer_candidate_school"

	tests := []struct {
		name     string
		actual   string
		minLevel *string
		want     bool
	}{
		{"no minimum", "elementary", nil, true},
		{"empty minimum", "elementary", ptr(""), true},
		{"unknown minimum passes", "elementary", &unknown, true},
		{"meets exactly", "college", &college, true},
		{"exceeds", "postgraduate", &college, true},
		{"below", "high_school", &college, false},
		{"case insensitive", "College", ptr("COLLEGE"), true},
		{"unknown actual fails known minimum", "somewhere", &college, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequirement()
			req.MinEducationLevel = tt.minLevel
			e := EvaluateEligibility(PromotionMetrics{HighestEducation: tt.actual}, req)
			if e.MeetsEducationRequirement != tt.want {
				t.Errorf("MeetsEducationRequirement = %v, want %v", e.MeetsEducationRequirement, tt.want)
			}
		})
	}
}

func ptr(s string) *string { return &s }

func candidate(first, last string, score, types, camp, seminars int, years, hours float64) PromotionEligibility {
	return PromotionEligibility{
		FirstName:          first,
		LastName:           last,
		ReadinessScore:     score,
		TrainingTypesCount: types,
		CampDutyDays:       camp,
		SeminarCount:       seminars,
		YearsInService:     years,
		TotalTrainingHours: hours,
	}
}

func names(candidates []PromotionEligibility) []string {
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.SortName()
	}
	return out
}

func TestRankCandidates_ComparatorChain(t *testing.T) {
	candidates := []PromotionEligibility{
		candidate("Ana", "Reyes", 80, 5, 40, 3, 6, 120),
		candidate("Juan", "Santos", 100, 4, 30, 3, 5, 100),
		candidate("Maria", "Cruz", 80, 5, 40, 4, 6, 120),  // beats Reyes on seminars
		candidate("Pedro", "Dizon", 80, 6, 20, 1, 6, 120), // beats both on training types
	}

	ranked := RankCandidates(candidates, SortDesc)

	want := []string{"Santos Juan", "Dizon Pedro", "Cruz Maria", "Reyes Ana"}
	if got := names(ranked); !reflect.DeepEqual(got, want) {
		t.Errorf("ranking = %v, want %v", got, want)
	}
}

func TestRankCandidates_NameTieBreak(t *testing.T) {
	// Identical metrics force the tie-break down to "{last} {first}".
	santos := candidate("Juan", "Santos", 80, 4, 30, 3, 5, 100)
	reyes := candidate("Ana", "Reyes", 80, 4, 30, 3, 5, 100)

	ranked := RankCandidates([]PromotionEligibility{santos, reyes}, SortDesc)
	if ranked[0].LastName != "Reyes" {
		t.Errorf("expected Reyes before Santos, got %v", names(ranked))
	}

	// Same board, opposite insertion order, same result.
	ranked = RankCandidates([]PromotionEligibility{reyes, santos}, SortDesc)
	if ranked[0].LastName != "Reyes" {
		t.Errorf("ranking depends on input order: %v", names(ranked))
	}
}

func TestRankCandidates_DeterministicUnderShuffle(t *testing.T) {
	board := []PromotionEligibility{
		candidate("Juan", "Santos", 100, 6, 45, 4, 8, 200),
		candidate("Ana", "Reyes", 80, 5, 40, 3, 6, 150),
		candidate("Maria", "Cruz", 80, 5, 40, 3, 6, 150),
		candidate("Pedro", "Dizon", 60, 3, 20, 2, 4, 80),
		candidate("Luis", "Ocampo", 40, 2, 10, 1, 2, 40),
	}

	want := names(RankCandidates(board, SortDesc))

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]PromotionEligibility, len(board))
		copy(shuffled, board)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		if got := names(RankCandidates(shuffled, SortDesc)); !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d produced different ranking: %v, want %v", i, got, want)
		}
	}
}

func TestRankCandidates_AscReversesFinalOrder(t *testing.T) {
	board := []PromotionEligibility{
		candidate("Juan", "Santos", 100, 6, 45, 4, 8, 200),
		candidate("Ana", "Reyes", 60, 3, 20, 2, 4, 80),
		candidate("Maria", "Cruz", 20, 1, 5, 0, 1, 10),
	}

	desc := RankCandidates(board, SortDesc)
	asc := RankCandidates(board, SortAsc)

	if len(desc) != len(asc) {
		t.Fatalf("length mismatch: %d vs %d", len(desc), len(asc))
	}
	for i := range desc {
		mirror := asc[len(asc)-1-i]
		if desc[i].SortName() != mirror.SortName() {
			t.Errorf("asc is not the reverse of desc at position %d: %v vs %v", i, names(desc), names(asc))
			break
		}
	}
}

func TestRankCandidates_DoesNotModifyInput(t *testing.T) {
	board := []PromotionEligibility{
		candidate("Maria", "Cruz", 20, 1, 5, 0, 1, 10),
		candidate("Juan", "Santos", 100, 6, 45, 4, 8, 200),
	}
	original := names(board)

	_ = RankCandidates(board, SortDesc)

	if got := names(board); !reflect.DeepEqual(got, original) {
		t.Errorf("input slice was reordered: %v, want %v", got, original)
	}
}

func TestJustifyCandidate(t *testing.T) {
	req := baseRequirement()

	t.Run("fully eligible with strong record", func(t *testing.T) {
		e := EvaluateEligibility(PromotionMetrics{
			TrainingTypesCount: 6,
			CampDutyDays:       45,
			SeminarCount:       4,
			YearsInService:     8,
			TotalTrainingHours: 200,
		}, req)

		got := JustifyCandidate(e, req)
		for _, phrase := range []string{
			"meets every promotion requirement",
			"exceptional training breadth (6 types)",
			"extensive camp duty record (45 days)",
			"200 accumulated training hours",
			"long service in current rank (8.0 years)",
		} {
			if !strings.Contains(got, phrase) {
				t.Errorf("justification missing %q: %s", phrase, got)
			}
		}
	})

	t.Run("partially eligible with gaps", func(t *testing.T) {
		e := EvaluateEligibility(PromotionMetrics{
			TrainingTypesCount: 2,
			CampDutyDays:       30,
			SeminarCount:       3,
			YearsInService:     2,
		}, req)

		got := JustifyCandidate(e, req)
		for _, phrase := range []string{
			"partially ready for promotion",
			"needs 2 more training type(s)",
			"needs 3.0 more year(s) in rank",
		} {
			if !strings.Contains(got, phrase) {
				t.Errorf("justification missing %q: %s", phrase, got)
			}
		}
	})
}
