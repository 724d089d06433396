package config_test

import (
	"testing"

	"github.com/pciu/dutyfinder/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.MaxInputBytes, convey.ShouldEqual, 1<<20)
			convey.So(cfg.MaxInputLines, convey.ShouldEqual, 20_000)
			convey.So(cfg.SampleCodeLimit, convey.ShouldEqual, 20)
		})

		convey.Convey("Then the parser tables carry the document defaults", func() {
			convey.So(cfg.ExcludedProgramCodes, convey.ShouldContain, "BBA")
			convey.So(cfg.BoilerplateMarkers, convey.ShouldContain, "Updated on")
			convey.So(cfg.TableMarkers, convey.ShouldContain, "Course Code")
			convey.So(cfg.BlockTerminators, convey.ShouldContain, "---")
		})
	})
}
