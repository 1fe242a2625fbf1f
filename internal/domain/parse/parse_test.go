package parse_test

import (
	"testing"

	parse "github.com/okian/joblens/internal/domain/parse"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNumber(t *testing.T) {
	Convey("Given the tolerant number parser", t, func() {
		Convey("When the value is already numeric", func() {
			Convey("Then floats pass through unchanged", func() {
				n, ok := parse.Number(85000.5)
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 85000.5)
			})

			Convey("And integers are widened", func() {
				n, ok := parse.Number(90000)
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 90000.0)
			})
		})

		Convey("When the value is a noisy currency string", func() {
			Convey("Then thousands separators are stripped", func() {
				n, ok := parse.Number("1,234.50")
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 1234.5)
			})

			Convey("And currency symbols and suffixes are stripped", func() {
				n, ok := parse.Number("$100,000 USD")
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, 100000.0)
			})

			Convey("And negative amounts survive", func() {
				n, ok := parse.Number("-5.5")
				So(ok, ShouldBeTrue)
				So(n, ShouldEqual, -5.5)
			})
		})

		Convey("When the value is unusable", func() {
			Convey("Then placeholder text is absent", func() {
				_, ok := parse.Number("N/A")
				So(ok, ShouldBeFalse)
			})

			Convey("And nil is absent", func() {
				_, ok := parse.Number(nil)
				So(ok, ShouldBeFalse)
			})

			Convey("And the empty string is absent", func() {
				_, ok := parse.Number("")
				So(ok, ShouldBeFalse)
			})

			Convey("And leftover garbage that is not a number is absent", func() {
				_, ok := parse.Number("1.2.3")
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestSkillList(t *testing.T) {
	Convey("Given the skill list parser", t, func() {
		Convey("When the list mixes every delimiter", func() {
			skills := parse.SkillList("Python, SQL; Excel and R")

			Convey("Then each skill is split and trimmed in order", func() {
				So(skills, ShouldResemble, []string{"Python", "SQL", "Excel", "R"})
			})
		})

		Convey("When skills are separated by pipes and slashes", func() {
			skills := parse.SkillList("Go | Kubernetes / Terraform")

			So(skills, ShouldResemble, []string{"Go", "Kubernetes", "Terraform"})
		})

		Convey("When a skill name contains the word and without spacing around it", func() {
			skills := parse.SkillList("Command line, Android")

			Convey("Then it is not split mid-word", func() {
				So(skills, ShouldResemble, []string{"Command line", "Android"})
			})
		})

		Convey("When the input is absent or empty", func() {
			So(parse.SkillList(nil), ShouldBeNil)
			So(parse.SkillList(""), ShouldBeNil)
			So(parse.SkillList("   "), ShouldBeNil)
		})

		Convey("When the input is only delimiters", func() {
			So(parse.SkillList(" , ; | "), ShouldBeNil)
		})

		Convey("When duplicates appear", func() {
			Convey("Then they are preserved for the aggregator to count", func() {
				So(parse.SkillList("SQL, SQL"), ShouldResemble, []string{"SQL", "SQL"})
			})
		})
	})
}

func TestMonthKey(t *testing.T) {
	Convey("Given the month key parser", t, func() {
		Convey("When the date is a calendar date", func() {
			Convey("Then ISO dates resolve to year and month", func() {
				key, ok := parse.MonthKey("2025-07-12")
				So(ok, ShouldBeTrue)
				So(key, ShouldEqual, "2025-07")
			})

			Convey("And RFC3339 timestamps resolve the same way", func() {
				key, ok := parse.MonthKey("2025-07-12T10:30:00Z")
				So(ok, ShouldBeTrue)
				So(key, ShouldEqual, "2025-07")
			})

			Convey("And long-form dates are recognized", func() {
				key, ok := parse.MonthKey("July 12, 2025")
				So(ok, ShouldBeTrue)
				So(key, ShouldEqual, "2025-07")
			})

			Convey("And a bare year-month is recognized", func() {
				key, ok := parse.MonthKey("2025-07")
				So(ok, ShouldBeTrue)
				So(key, ShouldEqual, "2025-07")
			})
		})

		Convey("When no layout matches but a year-month pattern is present", func() {
			Convey("Then the pattern is extracted and zero-padded", func() {
				key, ok := parse.MonthKey("not a date 2021/3")
				So(ok, ShouldBeTrue)
				So(key, ShouldEqual, "2021-03")
			})

			Convey("And dotted separators work", func() {
				key, ok := parse.MonthKey("2021.11")
				So(ok, ShouldBeTrue)
				So(key, ShouldEqual, "2021-11")
			})
		})

		Convey("When the value cannot yield a month", func() {
			Convey("Then free text is absent", func() {
				_, ok := parse.MonthKey("unknown")
				So(ok, ShouldBeFalse)
			})

			Convey("And an out-of-range month is absent", func() {
				_, ok := parse.MonthKey("2021/13")
				So(ok, ShouldBeFalse)
			})

			Convey("And a year glued to more digits is absent", func() {
				_, ok := parse.MonthKey("12021/3")
				So(ok, ShouldBeFalse)
			})

			Convey("And empty input is absent", func() {
				_, ok := parse.MonthKey("")
				So(ok, ShouldBeFalse)
			})

			Convey("And nil is absent", func() {
				_, ok := parse.MonthKey(nil)
				So(ok, ShouldBeFalse)
			})
		})
	})
}
