package settings_test

import (
	"slices"
	"testing"

	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
	"github.com/DingzixuanCYEZ/CCB/internal/settings"
)

func TestParse_Empty(t *testing.T) {
	s, warnings := settings.Parse(nil)
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if s.RewardProfile != 3 || s.Recovery != scheduler.RecoverHalve || s.Overflow != scheduler.OverflowCooling {
		t.Errorf("unexpected defaults %+v", s)
	}
	if s.AllowHalf {
		t.Error("expected half answers disabled by default")
	}
}

func TestParse_PartialRecordKeepsDefaults(t *testing.T) {
	s, warnings := settings.Parse([]byte(`{"reward_profile": 5, "punishment": {"multiplier": 3}}`))
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
	if s.RewardProfile != 5 {
		t.Errorf("expected profile 5, got %d", s.RewardProfile)
	}
	if s.Punishment.Multiplier != 3 || s.Punishment.CycleLength != 3 {
		t.Errorf("unexpected punishment %+v", s.Punishment)
	}
}

func TestParse_InvalidFieldsFallBackIndividually(t *testing.T) {
	raw := `{
		"reward_profile": 9,
		"recovery": "halve",
		"overflow": 12,
		"allow_half": true,
		"punishment": {"cycle_length": 4, "multiplier": -1, "cycle3_pattern": [1, 1, 4]}
	}`
	s, warnings := settings.Parse([]byte(raw))

	if len(warnings) != 4 {
		t.Errorf("expected 4 warnings, got %d: %v", len(warnings), warnings)
	}
	if s.RewardProfile != 3 {
		t.Errorf("expected profile fallback to 3, got %d", s.RewardProfile)
	}
	if s.Overflow != scheduler.OverflowCooling {
		t.Errorf("expected overflow default, got %q", s.Overflow)
	}
	if !s.AllowHalf {
		t.Error("expected valid allow_half to survive")
	}
	if s.Punishment.CycleLength != 3 || s.Punishment.Multiplier != 2 {
		t.Errorf("unexpected punishment %+v", s.Punishment)
	}
	if !slices.Equal(s.Punishment.Cycle3Pattern, []int{1, 1, 4}) {
		t.Errorf("expected valid pattern to survive, got %v", s.Punishment.Cycle3Pattern)
	}
}

func TestParse_Garbage(t *testing.T) {
	s, warnings := settings.Parse([]byte(`not json`))
	if len(warnings) != 1 {
		t.Errorf("expected a single warning, got %v", warnings)
	}
	if s.RewardProfile != 3 {
		t.Errorf("expected defaults, got %+v", s)
	}
}

func TestPolicy(t *testing.T) {
	s := settings.Default()
	s.Punishment.CycleLength = 2
	s.Punishment.Multiplier = 1
	s.Overflow = scheduler.OverflowClamp

	p := s.Policy(nil)
	if _, ok := p.Overflow.(scheduler.Clamp); !ok {
		t.Errorf("expected clamp overflow, got %T", p.Overflow)
	}
	if got := p.Punishment.WrongOffset(2); got != 4 {
		t.Errorf("expected second wrong of 1,4 cycle to be 4, got %v", got)
	}

	s.Punishment.Algorithm = settings.AlgorithmFixed
	if got := s.Policy(nil).Punishment.HalfOffset(); got != 10 {
		t.Errorf("expected fixed half offset 10, got %v", got)
	}
}

func TestLimits(t *testing.T) {
	s := settings.Default()
	if s.StudyLimit() != 0 {
		t.Errorf("expected no limit, got %v", s.StudyLimit())
	}
	s.ExamTimeLimit = 1.5
	if s.ExamLimit().Milliseconds() != 1500 {
		t.Errorf("expected 1.5s, got %v", s.ExamLimit())
	}
}
