package segment_test

import (
	"context"
	"testing"

	"github.com/pciu/dutyfinder/internal/domain/extract"
	"github.com/pciu/dutyfinder/internal/domain/model"
	"github.com/pciu/dutyfinder/internal/domain/segment"
	. "github.com/smartystreets/goconvey/convey"
)

func block(text string) model.CourseBlock {
	return model.CourseBlock{Code: "CSE 101", Title: "Intro to CS", RawText: text}
}

func TestSegmenter_PairStrategy(t *testing.T) {
	Convey("Given the default segmenter", t, func() {
		s := segment.New(extract.New())
		ctx := context.Background()

		Convey("When the block has explicit room/invigilator pairs", func() {
			records := s.Segment(ctx, block("308 (20)3509803-822 ZBS+MNJ 415 (30)3509823-850 KDM+RHA"), "01/02/2024", "(09:00am - 12:00pm)")

			Convey("Then one record per pair is produced with its own list", func() {
				So(records, ShouldHaveLength, 2)
				So(records[0].Room, ShouldEqual, "308")
				So(records[0].Invigilators, ShouldResemble, []string{"ZBS", "MNJ"})
				So(records[1].Room, ShouldEqual, "415")
				So(records[1].Invigilators, ShouldResemble, []string{"KDM", "RHA"})
			})

			Convey("And the records carry the block and context metadata", func() {
				So(records[0].Course, ShouldEqual, "CSE 101")
				So(records[0].Title, ShouldEqual, "Intro to CS")
				So(records[0].Date, ShouldEqual, "01/02/2024")
				So(records[0].Time, ShouldEqual, "(09:00am - 12:00pm)")
			})
		})

		Convey("When a pair's run is bounded by a program-code token", func() {
			records := s.Segment(ctx, block("308 (20) ZBS MNJ KDM-47(35) 415 (30) RHA"), "01/02/2024", "(09:00am)")

			Convey("Then the run stops before the program code", func() {
				So(records, ShouldHaveLength, 2)
				So(records[0].Invigilators, ShouldResemble, []string{"ZBS", "MNJ"})
				So(records[1].Invigilators, ShouldResemble, []string{"RHA"})
			})
		})

		Convey("When an explicit pair exists, later strategies never run", func() {
			// The pair yields room 308 only; a flexible scan of the same text
			// would also surface 999 as a room candidate.
			records := s.Segment(ctx, block("308 (20) ZBS seat plan 999"), "01/02/2024", "(09:00am)")

			So(records, ShouldHaveLength, 1)
			So(records[0].Room, ShouldEqual, "308")
			So(records[0].Invigilators, ShouldResemble, []string{"ZBS"})
		})
	})
}

func TestSegmenter_MultiRoomFallback(t *testing.T) {
	Convey("Given the default segmenter", t, func() {
		s := segment.New(extract.New())
		ctx := context.Background()

		Convey("When no explicit pair matches but bare rooms exist", func() {
			records := s.Segment(ctx, block("BBA-47(35) 308 415 ZBS MNJ"), "01/02/2024", "(09:00am)")

			Convey("Then one record per room shares the same invigilator list", func() {
				So(records, ShouldHaveLength, 2)
				So(records[0].Room, ShouldEqual, "308")
				So(records[1].Room, ShouldEqual, "415")
				So(records[0].Invigilators, ShouldResemble, []string{"ZBS", "MNJ"})
				So(records[1].Invigilators, ShouldResemble, []string{"ZBS", "MNJ"})
			})
		})

		Convey("When a room has no recoverable invigilator text", func() {
			records := s.Segment(ctx, block("308 (20)3509803"), "01/02/2024", "(09:00am)")

			Convey("Then the record is kept with an empty invigilator list", func() {
				So(records, ShouldHaveLength, 1)
				So(records[0].Room, ShouldEqual, "308")
				So(records[0].Invigilators, ShouldBeEmpty)
			})
		})

		Convey("When whitespace is ragged across the joined block", func() {
			records := s.Segment(ctx, block("  308   (20)3509803-822\tZBS+MNJ  "), "01/02/2024", "(09:00am)")

			Convey("Then runs are collapsed before matching", func() {
				So(records, ShouldHaveLength, 1)
				So(records[0].Invigilators, ShouldResemble, []string{"ZBS", "MNJ"})
			})
		})
	})
}

func TestSegmenter_SingleRoomFallback(t *testing.T) {
	Convey("Given the default segmenter", t, func() {
		s := segment.New(extract.New())
		ctx := context.Background()

		Convey("When only a glued four-digit room token matches", func() {
			// The pair scan finds room 234 but no identifier run after it,
			// and "1234" is not a standalone 3-digit token, so neither of the
			// first two strategies yields a record.
			records := s.Segment(ctx, block("1234 (20)3509803"), "01/02/2024", "(09:00am)")

			So(records, ShouldHaveLength, 1)
			So(records[0].Room, ShouldEqual, "234")
			So(records[0].Invigilators, ShouldBeEmpty)
		})
	})
}

func TestSegmenter_NoMatch(t *testing.T) {
	Convey("Given the default segmenter", t, func() {
		s := segment.New(extract.New())

		Convey("When the block has no room at all", func() {
			records := s.Segment(context.Background(), block("no rooms were assigned"), "01/02/2024", "(09:00am)")

			Convey("Then the block yields zero records", func() {
				So(records, ShouldBeEmpty)
			})
		})
	})
}

type fixedStrategy struct {
	name    string
	records []model.DutyRecord
}

func (f *fixedStrategy) Name() string { return f.name }
func (f *fixedStrategy) Apply(_ model.CourseBlock, _, _ string) []model.DutyRecord {
	return f.records
}

func TestSegmenter_CustomChain(t *testing.T) {
	Convey("Given a segmenter with a custom strategy chain", t, func() {
		first := &fixedStrategy{name: "first"}
		second := &fixedStrategy{name: "second", records: []model.DutyRecord{{Room: "101"}}}
		s := segment.New(extract.New(), segment.WithStrategies(first, second))

		Convey("Then the first non-empty result wins", func() {
			records := s.Segment(context.Background(), block("anything"), "d", "t")
			So(records, ShouldHaveLength, 1)
			So(records[0].Room, ShouldEqual, "101")
		})
	})
}
