package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/tilebingo/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given a clean environment", t, func() {
		os.Unsetenv("TILEBINGO_CONFIG")
		os.Unsetenv("TILEBINGO_ADDR")
		os.Unsetenv("TILEBINGO_COOLDOWN_MINUTES")
		os.Unsetenv("TILEBINGO_COOLDOWN_POLICY")

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.TilesPath, ShouldEqual, "tiles.json")
				So(cfg.TeamsPath, ShouldEqual, "teams.json")
				So(cfg.MoveLogPath, ShouldEqual, "move_log.json")
				So(cfg.CooldownMinutes, ShouldEqual, 20)
				So(cfg.CooldownPolicy, ShouldEqual, "team")
				So(cfg.CommandQueueSize, ShouldEqual, 1024)
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		os.Unsetenv("TILEBINGO_CONFIG")
		os.Setenv("TILEBINGO_ADDR", ":9999")
		os.Setenv("TILEBINGO_COOLDOWN_MINUTES", "5")
		os.Setenv("TILEBINGO_COOLDOWN_POLICY", "member")
		defer func() {
			os.Unsetenv("TILEBINGO_ADDR")
			os.Unsetenv("TILEBINGO_COOLDOWN_MINUTES")
			os.Unsetenv("TILEBINGO_COOLDOWN_POLICY")
		}()

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values should win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.CooldownMinutes, ShouldEqual, 5)
				So(cfg.CooldownPolicy, ShouldEqual, "member")
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		yaml := "addr: \":7070\"\nmove_log_path: /tmp/moves.json\nadmin_ids:\n  - 1234567890\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)

		os.Setenv("TILEBINGO_CONFIG", path)
		defer os.Unsetenv("TILEBINGO_CONFIG")

		Convey("When loading configuration", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values should apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.MoveLogPath, ShouldEqual, "/tmp/moves.json")
				So(cfg.AdminIDs, ShouldResemble, []int64{1234567890})
			})
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid configuration values", t, func() {
		os.Unsetenv("TILEBINGO_CONFIG")

		Convey("When cooldown_policy is unknown", func() {
			os.Setenv("TILEBINGO_COOLDOWN_POLICY", "per-galaxy")
			defer os.Unsetenv("TILEBINGO_COOLDOWN_POLICY")

			_, err := config.Load(context.Background())

			Convey("Then loading should fail with ErrInvalidConfig", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})

		Convey("When cooldown_minutes is non-positive", func() {
			os.Setenv("TILEBINGO_COOLDOWN_MINUTES", "0")
			defer os.Unsetenv("TILEBINGO_COOLDOWN_MINUTES")

			_, err := config.Load(context.Background())

			Convey("Then loading should fail with ErrInvalidConfig", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}
