package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/fflboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		emptyDotenv := createTempFile("ffl-empty-*.env", "")
		_ = os.Setenv("FFL_DOTENV", emptyDotenv)
		defer func() { _ = os.Remove(emptyDotenv) }()
		defer clearConfigEnvVars()

		convey.Convey("When no credentials are present", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails with an invalid config error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "missing LEAGUE_ID")
			})
		})

		convey.Convey("When credentials come from bare environment variables", func() {
			setCredentials()
			cfg, err := config.Load(ctx)

			convey.Convey("Then they are picked up alongside defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LeagueID, convey.ShouldEqual, 123456)
				convey.So(cfg.Year, convey.ShouldEqual, 2025)
				convey.So(cfg.EspnS2, convey.ShouldEqual, "s2-token")
				convey.So(cfg.SWID, convey.ShouldEqual, "{ABC-123}")
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.TopN, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When a credential is empty", func() {
			setCredentials()
			_ = os.Setenv("ESPN_S2", "")
			cfg, err := config.Load(ctx)

			convey.Convey("Then loading fails", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "missing ESPN_S2")
			})
		})

		convey.Convey("When FFL_ variables override defaults", func() {
			setCredentials()
			_ = os.Setenv("FFL_ADDR", ":8080")
			_ = os.Setenv("FFL_MIN_OWNED", "12.5")
			_ = os.Setenv("FFL_TOP_N", "25")
			_ = os.Setenv("FFL_POSITIONS", "qb, rb,D/ST")
			_ = os.Setenv("FFL_LEAGUE_ID", "999")
			cfg, err := config.Load(ctx)

			convey.Convey("Then the prefixed values win", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MinOwned, convey.ShouldEqual, 12.5)
				convey.So(cfg.TopN, convey.ShouldEqual, 25)
				convey.So(cfg.Positions, convey.ShouldResemble, []string{"QB", "RB", "D/ST"})
				convey.So(cfg.LeagueID, convey.ShouldEqual, 999)
			})
		})

		convey.Convey("When loading from a YAML file", func() {
			setCredentials()
			path := createTempFile("ffl-config-*.yaml", `
addr: ":9090"
top_n: 10
size_per_pos: 100
positions:
  - WR
  - TE
`)
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("FFL_CONFIG", path)
			_ = os.Setenv("FFL_TOP_N", "15")
			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env still overrides", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.SizePerPos, convey.ShouldEqual, 100)
				convey.So(cfg.Positions, convey.ShouldResemble, []string{"WR", "TE"})
				convey.So(cfg.TopN, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When credentials come from a .env file", func() {
			path := createTempFile("ffl-*.env", "LEAGUE_ID=42\nYEAR=2024\nESPN_S2=from-file\nSWID={FILE}\nFFL_MIN_OWNED=5\nUNRELATED=1\n")
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("FFL_DOTENV", path)
			_ = os.Setenv("YEAR", "2025")
			_ = os.Setenv("FFL_MIN_OWNED", "30")
			_ = os.Setenv("FFL_TOP_N", "15")
			cfg, err := config.Load(ctx)

			convey.Convey("Then the file overrides the process env", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LeagueID, convey.ShouldEqual, 42)
				convey.So(cfg.Year, convey.ShouldEqual, 2024)
				convey.So(cfg.EspnS2, convey.ShouldEqual, "from-file")
				convey.So(cfg.MinOwned, convey.ShouldEqual, 5)
			})

			convey.Convey("Then keys missing from the file keep their env value", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TopN, convey.ShouldEqual, 15)
			})
		})

		convey.Convey("When the explicit .env file does not exist", func() {
			setCredentials()
			_ = os.Setenv("FFL_DOTENV", "/non/existent/.env")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it returns a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the YAML file is invalid", func() {
			setCredentials()
			path := createTempFile("ffl-config-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(path) }()
			_ = os.Setenv("FFL_CONFIG", path)
			cfg, err := config.Load(ctx)

			convey.Convey("Then it returns a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a numeric variable is not a number", func() {
			setCredentials()
			_ = os.Setenv("LEAGUE_ID", "not_a_number")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it returns an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the address is blanked", func() {
			setCredentials()
			_ = os.Setenv("FFL_ADDR", "")
			cfg, err := config.Load(ctx)

			convey.Convey("Then it returns a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			})
		})
	})
}

// Helper functions.

func setCredentials() {
	_ = os.Setenv("LEAGUE_ID", "123456")
	_ = os.Setenv("YEAR", "2025")
	_ = os.Setenv("ESPN_S2", "s2-token")
	_ = os.Setenv("SWID", "{ABC-123}")
}

func clearConfigEnvVars() {
	envVars := []string{
		"FFL_CONFIG",
		"FFL_DOTENV",
		"FFL_ADDR",
		"FFL_MIN_OWNED",
		"FFL_TOP_N",
		"FFL_POSITIONS",
		"FFL_LEAGUE_ID",
		"LEAGUE_ID",
		"YEAR",
		"ESPN_S2",
		"SWID",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
