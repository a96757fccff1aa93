package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jdmarch/breakaway/internal/core/sim"
)

// Tuning is the optional YAML override file for the rate model. Absent
// fields keep their defaults, so a tuning file only needs to name the
// knobs it changes.
type Tuning struct {
	ShotRateScale *float64 `yaml:"shot_rate_scale"`
	XGScale       *float64 `yaml:"xg_scale"`
	GoalieScale   *float64 `yaml:"goalie_scale"`

	PenaltyBase    *float64 `yaml:"penalty_base"`
	PenaltyBeta    *float64 `yaml:"penalty_beta"`
	PickBeta       *float64 `yaml:"pick_beta"`
	PenaltyClampLo *float64 `yaml:"penalty_clamp_lo"`
	PenaltyClampHi *float64 `yaml:"penalty_clamp_hi"`
	HFAPenaltyMult *float64 `yaml:"hfa_penalty_mult"`
}

// LoadTuning reads a tuning file and returns the default params with its
// overrides applied. An empty path returns the defaults unchanged.
func LoadTuning(path string) (sim.Params, error) {
	params := sim.DefaultParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return params, fmt.Errorf("read tuning: %w", err)
	}

	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return params, fmt.Errorf("parse tuning: %w", err)
	}

	t.apply(&params)
	return params, nil
}

func (t Tuning) apply(p *sim.Params) {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.ShotRateScale, t.ShotRateScale)
	set(&p.XGScale, t.XGScale)
	set(&p.GoalieScale, t.GoalieScale)
	set(&p.PenBase, t.PenaltyBase)
	set(&p.PenBeta, t.PenaltyBeta)
	set(&p.PickBeta, t.PickBeta)
	set(&p.PenClampLo, t.PenaltyClampLo)
	set(&p.PenClampHi, t.PenaltyClampHi)
	set(&p.HFAPenaltyMult, t.HFAPenaltyMult)
}
