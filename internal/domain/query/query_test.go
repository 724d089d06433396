package query_test

import (
	"testing"

	"github.com/pciu/dutyfinder/internal/domain/model"
	"github.com/pciu/dutyfinder/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func records() []model.DutyRecord {
	return []model.DutyRecord{
		{Date: "01/02/2024", Room: "308", Invigilators: []string{"ZBS", "MNJ"}},
		{Date: "01/02/2024", Room: "415", Invigilators: []string{"KDM"}},
		{Date: "02/02/2024", Room: "512", Invigilators: []string{"ZBS", "ZBS", "TAH"}},
	}
}

func TestFindDuties(t *testing.T) {
	Convey("Given a set of duty records", t, func() {
		recs := records()

		Convey("When querying with a lowercase code", func() {
			matches := query.FindDuties(recs, "zbs")

			Convey("Then matching is case-insensitive and order-preserving", func() {
				So(matches, ShouldHaveLength, 2)
				So(matches[0].Room, ShouldEqual, "308")
				So(matches[1].Room, ShouldEqual, "512")
			})

			Convey("And a record with a repeated code counts once", func() {
				So(matches[1].Invigilators, ShouldResemble, []string{"ZBS", "ZBS", "TAH"})
			})
		})

		Convey("When the code appears in no record", func() {
			So(query.FindDuties(recs, "XYZ"), ShouldBeEmpty)
		})

		Convey("When the code is blank", func() {
			So(query.FindDuties(recs, "   "), ShouldBeEmpty)
		})
	})
}

func TestAllCodes(t *testing.T) {
	Convey("Given a set of duty records", t, func() {
		recs := records()

		Convey("Then the distinct codes come back sorted", func() {
			So(query.AllCodes(recs), ShouldResemble, []string{"KDM", "MNJ", "TAH", "ZBS"})
		})

		Convey("Then the sample is bounded", func() {
			So(query.SampleCodes(recs, 2), ShouldResemble, []string{"KDM", "MNJ"})
			So(query.SampleCodes(recs, 0), ShouldHaveLength, 4)
		})
	})
}

func TestOtherInvigilators(t *testing.T) {
	Convey("Given a record with several invigilators", t, func() {
		rec := model.DutyRecord{Invigilators: []string{"ZBS", "MNJ", "KDM"}}

		Convey("Then the queried code is removed case-insensitively", func() {
			So(query.OtherInvigilators(rec, "zbs"), ShouldResemble, []string{"MNJ", "KDM"})
		})
	})
}
