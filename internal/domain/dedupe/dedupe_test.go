package dedupe

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ormak/typerank/internal/domain/model"
)

func key(player string, ts int64) model.EntryKey {
	return model.EntryKey{PlayerAddress: player, Mode: model.ModeTimeLimit, Timestamp: ts}
}

func TestSeenAndRecord(t *testing.T) {
	Convey("Given a memory deduper", t, func() {
		ctx := context.Background()
		d := NewMemoryDeduper()

		Convey("A fresh key is recorded, not seen", func() {
			So(d.SeenAndRecord(ctx, key("0xabc", 1)), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 1)
		})

		Convey("A repeated key is reported as seen exactly once", func() {
			k := key("0xabc", 1)
			So(d.SeenAndRecord(ctx, k), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, k), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, k), ShouldBeTrue)
			So(d.Size(), ShouldEqual, 1)
		})

		Convey("Distinct keys are tracked independently", func() {
			So(d.SeenAndRecord(ctx, key("0xabc", 1)), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, key("0xabc", 2)), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, key("0xdef", 1)), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 3)
		})
	})
}

func TestUnrecord(t *testing.T) {
	Convey("Given a recorded key", t, func() {
		ctx := context.Background()
		d := NewMemoryDeduper()
		k := key("0xabc", 1)
		So(d.SeenAndRecord(ctx, k), ShouldBeFalse)

		Convey("Unrecord opens the key for retry", func() {
			d.Unrecord(ctx, k)
			So(d.Size(), ShouldEqual, 0)
			So(d.SeenAndRecord(ctx, k), ShouldBeFalse)
		})

		Convey("Unrecording an unknown key is a no-op", func() {
			d.Unrecord(ctx, key("0xnope", 99))
			So(d.Size(), ShouldEqual, 1)
			So(d.SeenAndRecord(ctx, k), ShouldBeTrue)
		})
	})
}

func TestEviction(t *testing.T) {
	Convey("Given a deduper bounded to three keys", t, func() {
		ctx := context.Background()
		d := NewMemoryDeduper(WithMaxSize(3))
		for i := int64(1); i <= 3; i++ {
			So(d.SeenAndRecord(ctx, key("0xabc", i)), ShouldBeFalse)
		}

		Convey("Recording a fourth key evicts the oldest", func() {
			So(d.SeenAndRecord(ctx, key("0xabc", 4)), ShouldBeFalse)
			So(d.Size(), ShouldEqual, 3)

			Convey("The evicted key reads as unseen again", func() {
				So(d.SeenAndRecord(ctx, key("0xabc", 1)), ShouldBeFalse)
			})

			Convey("The surviving keys are still seen", func() {
				So(d.SeenAndRecord(ctx, key("0xabc", 3)), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, key("0xabc", 4)), ShouldBeTrue)
			})
		})

		Convey("An unrecorded key does not count against later evictions", func() {
			d.Unrecord(ctx, key("0xabc", 1))
			So(d.SeenAndRecord(ctx, key("0xabc", 4)), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, key("0xabc", 2)), ShouldBeTrue)
			So(d.SeenAndRecord(ctx, key("0xabc", 3)), ShouldBeTrue)
		})
	})

	Convey("An unbounded deduper never evicts", t, func() {
		ctx := context.Background()
		d := NewMemoryDeduper(WithMaxSize(0))
		for i := int64(0); i < 1000; i++ {
			So(d.SeenAndRecord(ctx, key(fmt.Sprintf("0x%d", i), i)), ShouldBeFalse)
		}
		So(d.Size(), ShouldEqual, 1000)
		So(d.SeenAndRecord(ctx, key("0x0", 0)), ShouldBeTrue)
	})
}
