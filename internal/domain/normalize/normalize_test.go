package normalize_test

import (
	"testing"

	normalize "github.com/okian/joblens/internal/domain/normalize"
	"github.com/okian/joblens/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given the posting normalizer", t, func() {
		Convey("When a posting is fully populated", func() {
			rec := normalize.Normalize(record.Raw{
				"job_title":        "ML Engineer",
				"company_location": "US",
				"salary_usd":       "$100,000 USD",
				"required_skills":  "Python, SQL",
				"posting_date":     "2025-01-15",
			})

			Convey("Then every field is usable", func() {
				So(rec.Title, ShouldEqual, "ML Engineer")
				So(rec.Country, ShouldEqual, "US")
				So(rec.HasSalary, ShouldBeTrue)
				So(rec.Salary, ShouldEqual, 100000.0)
				So(rec.Skills, ShouldResemble, []string{"Python", "SQL"})
				So(rec.Year, ShouldEqual, 2025)
				So(rec.YearMonth, ShouldEqual, "2025-01")
				So(rec.HasTitle(), ShouldBeTrue)
				So(rec.HasCountry(), ShouldBeTrue)
				So(rec.HasMonth(), ShouldBeTrue)
			})
		})

		Convey("When the company location is missing", func() {
			Convey("Then the employee residence is the fallback", func() {
				rec := normalize.Normalize(record.Raw{
					"employee_residence": "DE",
				})
				So(rec.Country, ShouldEqual, "DE")
			})

			Convey("And a whitespace-only location also falls back", func() {
				rec := normalize.Normalize(record.Raw{
					"company_location":   "   ",
					"employee_residence": "NL",
				})
				So(rec.Country, ShouldEqual, "NL")
			})
		})

		Convey("When fields are malformed", func() {
			rec := normalize.Normalize(record.Raw{
				"job_title":       12345,
				"salary_usd":      "N/A",
				"required_skills": " , ; ",
				"posting_date":    "sometime soon",
			})

			Convey("Then each degrades to absent independently", func() {
				So(rec.HasTitle(), ShouldBeFalse)
				So(rec.HasSalary, ShouldBeFalse)
				So(rec.Skills, ShouldBeNil)
				So(rec.HasMonth(), ShouldBeFalse)
				So(rec.Year, ShouldEqual, 0)
			})
		})

		Convey("When one field is broken", func() {
			rec := normalize.Normalize(record.Raw{
				"job_title":    "Data Analyst",
				"salary_usd":   map[string]any{"amount": 1},
				"posting_date": "2024-06-01",
			})

			Convey("Then the rest of the record still normalizes", func() {
				So(rec.Title, ShouldEqual, "Data Analyst")
				So(rec.HasSalary, ShouldBeFalse)
				So(rec.YearMonth, ShouldEqual, "2024-06")
			})
		})

		Convey("When the posting is empty", func() {
			rec := normalize.Normalize(record.Raw{})

			Convey("Then every field is absent", func() {
				So(rec.HasTitle(), ShouldBeFalse)
				So(rec.HasCountry(), ShouldBeFalse)
				So(rec.HasSalary, ShouldBeFalse)
				So(rec.HasMonth(), ShouldBeFalse)
				So(rec.Skills, ShouldBeNil)
			})
		})
	})
}

func TestAll(t *testing.T) {
	Convey("Given a raw posting sequence", t, func() {
		Convey("When the sequence is nil", func() {
			recs := normalize.All(nil)

			Convey("Then the result is empty, not nil-prone", func() {
				So(recs, ShouldNotBeNil)
				So(recs, ShouldBeEmpty)
			})
		})

		Convey("When the sequence has postings", func() {
			recs := normalize.All([]record.Raw{
				{"job_title": "A"},
				{"job_title": "B"},
			})

			Convey("Then each is normalized in order", func() {
				So(len(recs), ShouldEqual, 2)
				So(recs[0].Title, ShouldEqual, "A")
				So(recs[1].Title, ShouldEqual, "B")
			})
		})
	})
}
