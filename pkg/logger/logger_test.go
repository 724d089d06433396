package logger_test

import (
	"context"
	"testing"

	"github.com/pciu/dutyfinder/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			// Logging must not panic.
			l.Info(context.Background(), "parser ready", logger.Int("strategies", 3))
			l.Debug(context.Background(), "debug line", logger.String("k", "v"))
		})

		Convey("Then Named returns a scoped logger", func() {
			l := logger.Named("schedule")
			So(l, ShouldNotBeNil)
			l.Warn(context.Background(), "scoped warning")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the level parser", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "  INFO "} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
