package main

import (
	"context"
	"os"
	"testing"

	"github.com/pciu/dutyfinder/internal/adapters/http/api"
	app "github.com/pciu/dutyfinder/internal/app"
	"github.com/pciu/dutyfinder/internal/config"
	"github.com/pciu/dutyfinder/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("DUTY_ADDR", ":8080")
			_ = os.Setenv("DUTY_MAX_INPUT_LINES", "5000")
			_ = os.Setenv("DUTY_SAMPLE_CODE_LIMIT", "10")
			defer func() {
				_ = os.Unsetenv("DUTY_ADDR")
				_ = os.Unsetenv("DUTY_MAX_INPUT_LINES")
				_ = os.Unsetenv("DUTY_SAMPLE_CODE_LIMIT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxInputLines, convey.ShouldEqual, 5000)
				convey.So(cfg.SampleCodeLimit, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithExcludedCodes([]string{"ABC"}),
					app.WithInputLimits(1024, 100),
					app.WithSampleCodeLimit(5),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then HTTP server should be creatable", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSystemMetricsUpdate(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When updating system metrics once", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}
