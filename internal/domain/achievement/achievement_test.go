package achievement

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ormak/typerank/internal/domain/model"
)

func TestEvaluate(t *testing.T) {
	Convey("Given a player's session history", t, func() {
		Convey("An empty history unlocks nothing", func() {
			So(Evaluate(nil), ShouldBeNil)
		})

		Convey("Any session unlocks First Steps", func() {
			got := Evaluate([]model.SessionStats{{WordsTyped: 1}})
			So(got, ShouldResemble, []int{FirstSteps})
		})

		Convey("Speed Demon requires 80 WPM or better", func() {
			So(Evaluate([]model.SessionStats{{WordsPerMinute: 79}}), ShouldNotContain, SpeedDemon)
			So(Evaluate([]model.SessionStats{{WordsPerMinute: 80}}), ShouldContain, SpeedDemon)
			So(Evaluate([]model.SessionStats{{WordsPerMinute: 120}}), ShouldContain, SpeedDemon)
		})

		Convey("Perfectionist requires exactly 100 percent accuracy", func() {
			So(Evaluate([]model.SessionStats{{AccuracyPercent: 99.99}}), ShouldNotContain, Perfectionist)
			So(Evaluate([]model.SessionStats{{AccuracyPercent: 100}}), ShouldContain, Perfectionist)
		})

		Convey("Marathon Runner sums words across the whole history", func() {
			sessions := []model.SessionStats{
				{WordsTyped: 200},
				{WordsTyped: 200},
				{WordsTyped: 99},
			}
			So(Evaluate(sessions), ShouldNotContain, MarathonRunner)

			sessions = append(sessions, model.SessionStats{WordsTyped: 1})
			So(Evaluate(sessions), ShouldContain, MarathonRunner)
		})

		Convey("Survivor needs fifty words within a single survival run", func() {
			deep := []model.SessionStats{{Mode: model.ModeSurvival, WordsTyped: 50}}
			shallow := []model.SessionStats{{Mode: model.ModeSurvival, WordsTyped: 49}}
			otherMode := []model.SessionStats{{Mode: model.ModeTimeLimit, WordsTyped: 500}}

			So(Evaluate(deep), ShouldContain, Survivor)
			So(Evaluate(shallow), ShouldNotContain, Survivor)
			So(Evaluate(otherMode), ShouldNotContain, Survivor)
		})

		Convey("Daily Champion needs a completed daily challenge", func() {
			done := []model.SessionStats{{Mode: model.ModeDailyChallenge, Completed: true}}
			abandoned := []model.SessionStats{{Mode: model.ModeDailyChallenge, Completed: false}}

			So(Evaluate(done), ShouldContain, DailyChampion)
			So(Evaluate(abandoned), ShouldNotContain, DailyChampion)
		})

		Convey("Unlocked ids come back in definition order", func() {
			sessions := []model.SessionStats{
				{Mode: model.ModeDailyChallenge, Completed: true, WordsPerMinute: 90, AccuracyPercent: 100, WordsTyped: 600},
				{Mode: model.ModeSurvival, WordsTyped: 60},
			}
			So(Evaluate(sessions), ShouldResemble, []int{
				FirstSteps, SpeedDemon, Perfectionist, MarathonRunner, Survivor, DailyChampion,
			})
		})
	})
}

func TestMintable(t *testing.T) {
	Convey("Mintable subtracts the granted set from the unlocked set", t, func() {
		Convey("Nothing granted means everything unlocked is mintable", func() {
			So(Mintable([]int{1, 2, 3}, nil), ShouldResemble, []int{1, 2, 3})
		})

		Convey("Granted ids are never re-reported", func() {
			So(Mintable([]int{1, 2, 3}, []int{2}), ShouldResemble, []int{1, 3})
		})

		Convey("A fully granted set leaves nothing mintable", func() {
			So(Mintable([]int{1, 2}, []int{1, 2}), ShouldBeNil)
		})

		Convey("Grants for locked achievements are ignored", func() {
			So(Mintable([]int{1}, []int{5, 6}), ShouldResemble, []int{1})
		})
	})
}

func TestName(t *testing.T) {
	Convey("Name resolves known ids and rejects unknown ones", t, func() {
		So(Name(FirstSteps), ShouldEqual, "First Steps")
		So(Name(SpeedDemon), ShouldEqual, "Speed Demon")
		So(Name(DailyChampion), ShouldEqual, "Daily Champion")
		So(Name(0), ShouldBeEmpty)
		So(Name(7), ShouldBeEmpty)
	})
}
