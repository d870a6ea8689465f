package services

import (
	"database/sql/driver"
	"regexp"
	"testing"

	"reserve-management-api/config"
)

var requirementColumns = []string{
	"requirement_id", "from_rank", "to_rank", "required_training_types",
	"years_in_current_rank", "seminars_required", "camp_duty_days",
	"min_education_level", "is_active",
}

func privateRequirementRow() []driver.Value {
	return []driver.Value{
		int64(1), "private", "private first class", int64(4),
		float64(5), int64(3), int64(30),
		nil, true,
	}
}

func corporalRequirementRow() []driver.Value {
	return []driver.Value{
		int64(2), "corporal", "sergeant", int64(5),
		float64(4), int64(2), int64(45),
		nil, true,
	}
}

func TestGetRequirementForRank_CacheAndForceRefresh(t *testing.T) {
	queryPattern := regexp.MustCompile("SELECT \\* FROM `promotion_requirements` WHERE is_active = \\? AND delete_at IS NULL")

	steps := []*queryStep{
		// Initial load: only the private requirement exists.
		{
			kind:    kindQuery,
			pattern: queryPattern,
			args:    []driver.Value{true},
			columns: requirementColumns,
			rows:    [][]driver.Value{privateRequirementRow()},
		},
		// Cache miss for corporal triggers exactly one forced refresh.
		{
			kind:    kindQuery,
			pattern: queryPattern,
			args:    []driver.Value{true},
			columns: requirementColumns,
			rows:    [][]driver.Value{privateRequirementRow(), corporalRequirementRow()},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	origDB := config.DB
	config.DB = db
	defer func() {
		config.DB = origDB
		ClearRequirementCache()
	}()
	ClearRequirementCache()

	req, err := GetRequirementForRank("Private")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if req.RequirementID != 1 || req.RequiredTrainingTypes != 4 {
		t.Errorf("unexpected requirement: %+v", req)
	}

	// Second lookup must come from the cache: no step is scripted for it.
	if _, err := GetRequirementForRank("  PRIVATE  "); err != nil {
		t.Fatalf("cached lookup failed: %v", err)
	}

	// Unknown rank forces the single refresh, which now returns the new row.
	req, err = GetRequirementForRank("corporal")
	if err != nil {
		t.Fatalf("lookup after refresh failed: %v", err)
	}
	if req.RequirementID != 2 || req.CampDutyDays != 45 {
		t.Errorf("unexpected requirement after refresh: %+v", req)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestGetRequirementForRank_UnknownRank(t *testing.T) {
	queryPattern := regexp.MustCompile("SELECT \\* FROM `promotion_requirements` WHERE is_active = \\? AND delete_at IS NULL")

	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: queryPattern,
			args:    []driver.Value{true},
			columns: requirementColumns,
			rows:    [][]driver.Value{privateRequirementRow()},
		},
		// Forced refresh still has no matching row.
		{
			kind:    kindQuery,
			pattern: queryPattern,
			args:    []driver.Value{true},
			columns: requirementColumns,
			rows:    [][]driver.Value{privateRequirementRow()},
		},
	}

	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	origDB := config.DB
	config.DB = db
	defer func() {
		config.DB = origDB
		ClearRequirementCache()
	}()
	ClearRequirementCache()

	if _, err := GetRequirementForRank("general"); err == nil {
		t.Fatalf("expected error for rank without requirement")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestGetRequirementForRank_EmptyRank(t *testing.T) {
	if _, err := GetRequirementForRank("   "); err == nil {
		t.Fatalf("expected error for empty rank")
	}
}
