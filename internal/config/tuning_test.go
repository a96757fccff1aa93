package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jdmarch/breakaway/internal/config"
	"github.com/jdmarch/breakaway/internal/core/sim"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadTuning(t *testing.T) {
	Convey("With no tuning file the defaults come back", t, func() {
		params, err := config.LoadTuning("")
		So(err, ShouldBeNil)
		So(params, ShouldResemble, sim.DefaultParams())
	})

	Convey("A tuning file overrides only what it names", t, func() {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		err := os.WriteFile(path, []byte("shot_rate_scale: 0.0005\npenalty_beta: 0.6\n"), 0o644)
		So(err, ShouldBeNil)

		params, err := config.LoadTuning(path)
		So(err, ShouldBeNil)

		defaults := sim.DefaultParams()
		So(params.ShotRateScale, ShouldEqual, 0.0005)
		So(params.PenBeta, ShouldEqual, 0.6)
		So(params.XGScale, ShouldEqual, defaults.XGScale)
		So(params.HFAPenaltyMult, ShouldEqual, defaults.HFAPenaltyMult)
	})

	Convey("A missing file is an error", t, func() {
		_, err := config.LoadTuning("does-not-exist.yaml")
		So(err, ShouldNotBeNil)
	})

	Convey("Malformed YAML is an error", t, func() {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		So(os.WriteFile(path, []byte("shot_rate_scale: [nope"), 0o644), ShouldBeNil)
		_, err := config.LoadTuning(path)
		So(err, ShouldNotBeNil)
	})
}

func TestLoadConfig(t *testing.T) {
	Convey("Defaults apply when the environment is empty", t, func() {
		cfg := config.Load()
		So(cfg.NumTeams, ShouldEqual, 32)
		So(cfg.NumLines, ShouldEqual, 4)
		So(cfg.NumPairs, ShouldEqual, 3)
		So(cfg.FeedAddr, ShouldEqual, ":9300")
	})

	Convey("Environment variables win", t, func() {
		t.Setenv("BREAKAWAY_TEAMS", "32")
		t.Setenv("BREAKAWAY_SEED", "123")
		t.Setenv("BREAKAWAY_PBP_WEEKS", "2")

		cfg := config.Load()
		So(cfg.Seed, ShouldEqual, 123)
		So(cfg.PBPWeeks, ShouldEqual, 2)
	})
}
