package quality

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTiers(t *testing.T) {
	Convey("Tier ladder", t, func() {
		Convey("Is ordered by ascending height", func() {
			ladder := Tiers()
			for i := 1; i < len(ladder); i++ {
				So(ladder[i].Height, ShouldBeGreaterThan, ladder[i-1].Height)
			}
		})

		Convey("Available filters by ceiling", func() {
			So(len(Available(1080)), ShouldEqual, 3)
			So(len(Available(480)), ShouldEqual, 1)
			So(Available(200), ShouldBeEmpty)
		})

		Convey("TierIndex keys on height", func() {
			So(TierIndex(480), ShouldEqual, 0)
			So(TierIndex(2160), ShouldEqual, 4)
			So(TierIndex(1000), ShouldEqual, -1)
		})

		Convey("TierFor resolves names", func() {
			tier, ok := TierFor(4320)
			So(ok, ShouldBeTrue)
			So(tier.Name, ShouldEqual, "8K")

			_, ok = TierFor(999)
			So(ok, ShouldBeFalse)
		})
	})
}
