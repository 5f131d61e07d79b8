package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/tmarshall07/usau-rankings-algorithm/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("When recording new ids", func() {
			So(d.SeenAndRecord(ctx, "b"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
			So(d.SeenAndRecord(ctx, "c"), ShouldBeFalse)

			Convey("Then they should be returned in first-seen order", func() {
				So(d.Ordered(), ShouldResemble, []string{"b", "a", "c"})
				So(d.Size(), ShouldEqual, int64(3))
			})

			Convey("And recording a duplicate should report it as seen", func() {
				So(d.SeenAndRecord(ctx, "a"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, int64(3))
				So(d.Ordered(), ShouldResemble, []string{"b", "a", "c"})
			})

			Convey("And mutating the returned order should not affect the deduper", func() {
				out := d.Ordered()
				out[0] = "x"
				So(d.Ordered()[0], ShouldEqual, "b")
			})
		})

		Convey("When recording concurrently", func() {
			var wg sync.WaitGroup
			const workers, perWorker = 8, 100
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						d.SeenAndRecord(ctx, fmt.Sprintf("id-%d", i))
					}
				}()
			}
			wg.Wait()

			Convey("Then each id should be recorded once", func() {
				So(d.Size(), ShouldEqual, int64(perWorker))
				So(len(d.Ordered()), ShouldEqual, perWorker)
			})
		})

		Convey("When using an empty id", func() {
			Convey("Then it should be tracked like any other", func() {
				So(d.SeenAndRecord(ctx, ""), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, ""), ShouldBeTrue)
			})
		})
	})
}

func TestDedupeOptions(t *testing.T) {
	Convey("Given dedupe options", t, func() {
		Convey("When using WithCapacity", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(64))

			Convey("Then the deduper should start empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, int64(0))
				So(d.Ordered(), ShouldBeEmpty)
			})
		})

		Convey("When using a non-positive capacity", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithCapacity(-1))

			Convey("Then it should still work", func() {
				So(d.SeenAndRecord(context.Background(), "x"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, int64(1))
			})
		})
	})
}
