// Package settings holds the learner's scheduling preferences. Every field
// is optional; a missing or invalid field falls back to its default
// without affecting the others.
package settings

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/DingzixuanCYEZ/CCB/internal/scheduler"
)

type Algorithm string

const (
	AlgorithmCycle Algorithm = "cycle"
	AlgorithmFixed Algorithm = "fixed"
)

type Punishment struct {
	Algorithm     Algorithm `json:"algorithm" yaml:"algorithm"`
	CycleLength   int       `json:"cycle_length" yaml:"cycle_length"`
	Cycle2Pattern []int     `json:"cycle2_pattern" yaml:"cycle2_pattern"`
	Cycle3Pattern []int     `json:"cycle3_pattern" yaml:"cycle3_pattern"`
	Multiplier    float64   `json:"multiplier" yaml:"multiplier"`
	FixedValue    float64   `json:"fixed_value" yaml:"fixed_value"`
}

type Settings struct {
	RewardProfile int                    `json:"reward_profile" yaml:"reward_profile"`
	Punishment    Punishment             `json:"punishment" yaml:"punishment"`
	Recovery      scheduler.Recovery     `json:"recovery" yaml:"recovery"`
	Overflow      scheduler.OverflowMode `json:"overflow" yaml:"overflow"`
	AllowHalf     bool                   `json:"allow_half" yaml:"allow_half"`
	// Per-question limits in seconds, 0 disables the countdown.
	StudyTimeLimit float64 `json:"study_time_limit" yaml:"study_time_limit"`
	ExamTimeLimit  float64 `json:"exam_time_limit" yaml:"exam_time_limit"`
}

// Default is Standard rewards, a doubled 1,2,5 cycle, halve recovery,
// cooling overflow, half answers off and no time limits.
func Default() Settings {
	return Settings{
		RewardProfile: scheduler.DefaultProfileID,
		Punishment: Punishment{
			Algorithm:     AlgorithmCycle,
			CycleLength:   3,
			Cycle2Pattern: []int{1, 4},
			Cycle3Pattern: []int{1, 2, 5},
			Multiplier:    2,
			FixedValue:    5,
		},
		Recovery: scheduler.RecoverHalve,
		Overflow: scheduler.OverflowCooling,
	}
}

// Parse decodes a JSON settings record field by field. Fields that are
// missing keep their default; fields that do not decode or validate are
// reset and reported in the returned warnings.
func Parse(data []byte) (Settings, []string) {
	s := Default()
	if len(data) == 0 {
		return s, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, []string{fmt.Sprintf("settings record unreadable, using defaults: %v", err)}
	}

	var warnings []string
	decode := func(m map[string]json.RawMessage, key string, dst any) {
		v, ok := m[key]
		if !ok {
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", key, err))
		}
	}

	decode(raw, "reward_profile", &s.RewardProfile)
	decode(raw, "recovery", &s.Recovery)
	decode(raw, "overflow", &s.Overflow)
	decode(raw, "allow_half", &s.AllowHalf)
	decode(raw, "study_time_limit", &s.StudyTimeLimit)
	decode(raw, "exam_time_limit", &s.ExamTimeLimit)

	if p, ok := raw["punishment"]; ok {
		var pm map[string]json.RawMessage
		if err := json.Unmarshal(p, &pm); err != nil {
			warnings = append(warnings, fmt.Sprintf("punishment: %v", err))
		} else {
			decode(pm, "algorithm", &s.Punishment.Algorithm)
			decode(pm, "cycle_length", &s.Punishment.CycleLength)
			decode(pm, "cycle2_pattern", &s.Punishment.Cycle2Pattern)
			decode(pm, "cycle3_pattern", &s.Punishment.Cycle3Pattern)
			decode(pm, "multiplier", &s.Punishment.Multiplier)
			decode(pm, "fixed_value", &s.Punishment.FixedValue)
		}
	}

	return s, append(warnings, s.Normalize()...)
}

// Normalize resets every invalid field to its default and describes what
// it changed.
func (s *Settings) Normalize() []string {
	def := Default()
	var warnings []string
	reset := func(name string, got any) {
		warnings = append(warnings, fmt.Sprintf("%s: invalid value %v, using default", name, got))
	}

	if _, ok := scheduler.ProfileByID(s.RewardProfile); !ok {
		reset("reward_profile", s.RewardProfile)
		s.RewardProfile = def.RewardProfile
	}
	if !s.Recovery.Valid() {
		reset("recovery", s.Recovery)
		s.Recovery = def.Recovery
	}
	if _, err := scheduler.OverflowFor(s.Overflow); err != nil {
		reset("overflow", s.Overflow)
		s.Overflow = def.Overflow
	}
	if s.StudyTimeLimit < 0 {
		reset("study_time_limit", s.StudyTimeLimit)
		s.StudyTimeLimit = 0
	}
	if s.ExamTimeLimit < 0 {
		reset("exam_time_limit", s.ExamTimeLimit)
		s.ExamTimeLimit = 0
	}

	p := &s.Punishment
	if p.Algorithm != AlgorithmCycle && p.Algorithm != AlgorithmFixed {
		reset("punishment.algorithm", p.Algorithm)
		p.Algorithm = def.Punishment.Algorithm
	}
	if p.CycleLength != 2 && p.CycleLength != 3 {
		reset("punishment.cycle_length", p.CycleLength)
		p.CycleLength = def.Punishment.CycleLength
	}
	if _, err := scheduler.CyclePattern(p.Cycle2Pattern); err != nil || len(p.Cycle2Pattern) != 2 {
		reset("punishment.cycle2_pattern", p.Cycle2Pattern)
		p.Cycle2Pattern = slices.Clone(def.Punishment.Cycle2Pattern)
	}
	if _, err := scheduler.CyclePattern(p.Cycle3Pattern); err != nil || len(p.Cycle3Pattern) != 3 {
		reset("punishment.cycle3_pattern", p.Cycle3Pattern)
		p.Cycle3Pattern = slices.Clone(def.Punishment.Cycle3Pattern)
	}
	if p.Multiplier <= 0 {
		reset("punishment.multiplier", p.Multiplier)
		p.Multiplier = def.Punishment.Multiplier
	}
	if p.FixedValue <= 0 {
		reset("punishment.fixed_value", p.FixedValue)
		p.FixedValue = def.Punishment.FixedValue
	}
	return warnings
}

// Profile returns the selected reward profile, Standard if unknown.
func (s Settings) Profile() scheduler.RewardProfile {
	if p, ok := scheduler.ProfileByID(s.RewardProfile); ok {
		return p
	}
	return scheduler.StandardProfile()
}

// PunishmentStrategy builds the wrong-answer strategy.
func (s Settings) PunishmentStrategy() scheduler.Punishment {
	p := s.Punishment
	if p.Algorithm == AlgorithmFixed {
		return scheduler.Fixed{Value: p.FixedValue}
	}
	pattern := p.Cycle3Pattern
	if p.CycleLength == 2 {
		pattern = p.Cycle2Pattern
	}
	return scheduler.Cycle{Pattern: slices.Clone(pattern), Multiplier: p.Multiplier}
}

// Policy assembles the scheduling policy. A nil jitter disables it.
func (s Settings) Policy(j scheduler.Jitter) scheduler.Policy {
	overflow, err := scheduler.OverflowFor(s.Overflow)
	if err != nil {
		overflow = scheduler.Cooling{}
	}
	if j == nil {
		j = scheduler.NoJitter{}
	}
	return scheduler.Policy{
		Profile:    s.Profile(),
		Punishment: s.PunishmentStrategy(),
		Recovery:   s.Recovery,
		Overflow:   overflow,
		Jitter:     j,
	}
}

// StudyLimit is the study countdown as a duration, 0 when disabled.
func (s Settings) StudyLimit() time.Duration {
	return seconds(s.StudyTimeLimit)
}

func (s Settings) ExamLimit() time.Duration {
	return seconds(s.ExamTimeLimit)
}

func seconds(v float64) time.Duration {
	if v <= 0 {
		return 0
	}
	return time.Duration(v * float64(time.Second))
}
