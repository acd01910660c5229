package ranking_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/okian/fflboard/internal/domain/model"
	"github.com/okian/fflboard/internal/domain/ranking"
	"github.com/okian/fflboard/internal/domain/types"
	"github.com/okian/fflboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func cand(id string, owned, proj float64) model.Candidate {
	return model.Candidate{
		PlayerID:      id,
		Name:          "Player " + id,
		Position:      "RB",
		OwnedPct:      model.Some(owned),
		ProjAvgPoints: model.Some(proj),
	}
}

func batch(pos string, cs ...model.Candidate) ranking.Batch {
	return ranking.Batch{Position: pos, Candidates: cs}
}

func TestRank_Scenarios(t *testing.T) {
	Convey("Given the ownership ranker", t, func() {
		Convey("When the same player appears twice", func() {
			out, err := ranking.Rank([]ranking.Batch{
				batch("RB", cand("1", 60, 10)),
				batch("FLEX", cand("1", 80, 5)),
			}, 0, 10)

			Convey("Then the higher ownership record wins", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].PlayerID, ShouldEqual, "1")
				So(out[0].OwnedPct, ShouldEqual, 80)
				So(out[0].ProjAvgPoints, ShouldEqual, 5)
			})
		})

		Convey("When duplicates tie on ownership", func() {
			first := cand("1", 70, 3)
			first.Position = "RB"
			second := cand("1", 70, 9)
			second.Position = "WR"
			out, err := ranking.Rank([]ranking.Batch{batch("RB", first), batch("WR", second)}, 0, 10)

			Convey("Then the first one seen is kept", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].Position, ShouldEqual, "RB")
				So(out[0].ProjAvgPoints, ShouldEqual, 3)
			})
		})

		Convey("When a threshold is set", func() {
			out, err := ranking.Rank([]ranking.Batch{
				batch("RB", cand("1", 40, 0), cand("2", 60, 0)),
			}, 50, 10)

			Convey("Then players below it are dropped", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].PlayerID, ShouldEqual, "2")
			})
		})

		Convey("When a player sits exactly on the threshold", func() {
			out, err := ranking.Rank([]ranking.Batch{batch("RB", cand("1", 50, 0))}, 50, 10)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 1)
		})

		Convey("When ownership ties and top_n is 1", func() {
			out, err := ranking.Rank([]ranking.Batch{
				batch("RB", cand("1", 90, 5), cand("2", 90, 10)),
			}, 0, 1)

			Convey("Then projected points break the tie", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].PlayerID, ShouldEqual, "2")
			})
		})

		Convey("When there are no candidates", func() {
			out, err := ranking.Rank(nil, 0, 10)

			Convey("Then the result is empty but not nil", func() {
				So(err, ShouldBeNil)
				So(out, ShouldNotBeNil)
				So(out, ShouldBeEmpty)
			})
		})

		Convey("When every candidate is filtered out", func() {
			out, err := ranking.Rank([]ranking.Batch{batch("K", cand("1", 1, 1))}, 99, 10)
			So(err, ShouldBeNil)
			So(out, ShouldBeEmpty)
		})

		Convey("When a candidate has no identifier", func() {
			out, err := ranking.Rank([]ranking.Batch{
				batch("QB", cand("", 99, 30), cand("   ", 98, 30), cand("7", 10, 1)),
			}, 0, 10)

			Convey("Then it is skipped without an error", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].PlayerID, ShouldEqual, "7")
			})
		})

		Convey("When numeric fields are absent", func() {
			out, err := ranking.Rank([]ranking.Batch{
				batch("TE", model.Candidate{PlayerID: "3", Name: "Bare"}),
			}, 0, 10)

			Convey("Then they default to zero", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0].OwnedPct, ShouldEqual, 0)
				So(out[0].StartedPct, ShouldEqual, 0)
				So(out[0].ProjAvgPoints, ShouldEqual, 0)
				So(out[0].ProjTotalPoints, ShouldEqual, 0)
			})
		})

		Convey("When values have more than two decimals", func() {
			c := cand("5", 33.336, 12.344)
			c.StartedPct = model.Some(10.006)
			c.ProjTotalPoints = model.Some(170.129)
			out, err := ranking.Rank([]ranking.Batch{batch("WR", c)}, 0, 10)

			Convey("Then they are rounded to two", func() {
				So(err, ShouldBeNil)
				So(out[0].OwnedPct, ShouldEqual, 33.34)
				So(out[0].ProjAvgPoints, ShouldEqual, 12.34)
				So(out[0].ProjTotalPoints, ShouldEqual, 170.13)
				So(out[0].StartedPct, ShouldEqual, 10.01)
			})
		})

		Convey("When entries tie on both keys", func() {
			out, err := ranking.Rank([]ranking.Batch{
				batch("RB", cand("1", 90, 10), cand("2", 90, 10), cand("3", 80, 1)),
			}, 0, 10)

			Convey("Then they share a rank and keep merge order", func() {
				So(err, ShouldBeNil)
				So(out[0].PlayerID, ShouldEqual, "1")
				So(out[1].PlayerID, ShouldEqual, "2")
				So(out[0].Rank, ShouldEqual, 1)
				So(out[1].Rank, ShouldEqual, 1)
				So(out[2].Rank, ShouldEqual, 2)
			})
		})

		Convey("When parameters are invalid", func() {
			_, err := ranking.Rank(nil, 0, 0)
			So(errors.Is(err, ranking.ErrInvalidTopN), ShouldBeTrue)

			_, err = ranking.Rank(nil, -1, 5)
			So(errors.Is(err, ranking.ErrInvalidThreshold), ShouldBeTrue)

			_, err = ranking.Rank(nil, 100.5, 5)
			So(errors.Is(err, ranking.ErrInvalidThreshold), ShouldBeTrue)

			_, err = ranking.Rank(nil, math.NaN(), 5)
			So(errors.Is(err, ranking.ErrInvalidThreshold), ShouldBeTrue)
		})
	})
}

func TestMerge(t *testing.T) {
	Convey("Given batches with overlaps and malformed records", t, func() {
		batches := []ranking.Batch{
			batch("RB", cand("1", 10, 0), cand("", 50, 0), cand("2", 20, 0)),
			batch("WR", cand("2", 25, 0), cand("1", 5, 0), cand("3", 1, 0)),
		}

		Convey("When merging", func() {
			merged, stats := ranking.Merge(batches)

			Convey("Then each id appears once in first-seen order", func() {
				So(merged, ShouldHaveLength, 3)
				So(merged[0].PlayerID, ShouldEqual, "1")
				So(merged[0].OwnedPct, ShouldEqual, 10)
				So(merged[1].PlayerID, ShouldEqual, "2")
				So(merged[1].OwnedPct, ShouldEqual, 25)
				So(merged[2].PlayerID, ShouldEqual, "3")
			})

			Convey("Then the stats count what was discarded", func() {
				So(stats.Skipped, ShouldEqual, 1)
				So(stats.Duplicates, ShouldEqual, 2)
			})
		})
	})
}

func TestRank_Properties(t *testing.T) {
	Convey("Given randomly generated candidate batches", t, func() {
		rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic test data
		positions := []string{"QB", "RB", "WR", "TE", "K", "D/ST"}

		for run := 0; run < 50; run++ {
			var batches []ranking.Batch
			for _, pos := range positions {
				var cs []model.Candidate
				n := rng.Intn(40)
				for i := 0; i < n; i++ {
					c := cand(fmt.Sprint(rng.Intn(60)), float64(rng.Intn(10000))/100, float64(rng.Intn(300))/10)
					if rng.Intn(20) == 0 {
						c.PlayerID = ""
					}
					if rng.Intn(10) == 0 {
						c.OwnedPct = model.None[float64]()
					}
					cs = append(cs, c)
				}
				batches = append(batches, batch(pos, cs...))
			}
			minOwned := float64(rng.Intn(60))
			topN := 1 + rng.Intn(30)

			out, err := ranking.Rank(batches, minOwned, topN)
			So(err, ShouldBeNil)

			again, _ := ranking.Rank(batches, minOwned, topN)
			So(again, ShouldResemble, out)

			So(len(out), ShouldBeLessThanOrEqualTo, topN)
			seen := map[string]bool{}
			for i, e := range out {
				So(e.OwnedPct, ShouldBeGreaterThanOrEqualTo, minOwned)
				So(seen[e.PlayerID], ShouldBeFalse)
				seen[e.PlayerID] = true
				if i > 0 {
					prev := out[i-1]
					So(prev.OwnedPct, ShouldBeGreaterThanOrEqualTo, e.OwnedPct)
					if prev.OwnedPct == e.OwnedPct {
						So(prev.ProjAvgPoints, ShouldBeGreaterThanOrEqualTo, e.ProjAvgPoints)
					}
				}
			}
		}
	})
}

func TestRanker(t *testing.T) {
	Convey("Given a ranker with a logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		r := ranking.NewRanker(ranking.WithLogger(logger.Get()))

		Convey("When ranking valid batches", func() {
			out, err := r.Rank(context.Background(), []ranking.Batch{
				batch("RB", cand("1", 10, 1), cand("", 5, 1)),
			}, 0, 5)
			So(err, ShouldBeNil)
			So(out, ShouldResemble, []types.Entry{{
				Rank: 1, PlayerID: "1", Name: "Player 1", Position: "RB", OwnedPct: 10, ProjAvgPoints: 1,
			}})
		})

		Convey("When parameters are invalid", func() {
			_, err := r.Rank(context.Background(), nil, 0, 0)
			So(errors.Is(err, ranking.ErrInvalidTopN), ShouldBeTrue)
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(ranking.Round2(1.234), ShouldEqual, 1.23)
		So(ranking.Round2(1.236), ShouldEqual, 1.24)
		So(ranking.Round2(-2.556), ShouldEqual, -2.56)
		So(ranking.Round2(0), ShouldEqual, 0)
	})
}
