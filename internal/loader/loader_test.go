package loader_test

import (
	"context"
	"os"
	"testing"

	"github.com/okian/joblens/internal/loader"
	logging "github.com/okian/joblens/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func writeTempDataset(content string) string {
	tmpFile, err := os.CreateTemp("", "joblens-dataset-*.json")
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

func TestLoad(t *testing.T) {
	convey.Convey("Given the dataset loader", t, func() {
		// Initialize logging for tests
		_ = logging.Init()
		ctx := context.Background()

		convey.Convey("When the file is a top-level array", func() {
			path := writeTempDataset(`[
				{"job_title": "ML Engineer", "salary_usd": 100000},
				{"job_title": "Data Scientist"}
			]`)
			defer func() { _ = os.Remove(path) }()

			raws := loader.Load(ctx, path)

			convey.Convey("Then every object becomes a raw record", func() {
				convey.So(len(raws), convey.ShouldEqual, 2)
				convey.So(raws[0]["job_title"], convey.ShouldEqual, "ML Engineer")
			})
		})

		convey.Convey("When the records are wrapped in a container object", func() {
			path := writeTempDataset(`{"records": [{"job_title": "Data Engineer"}]}`)
			defer func() { _ = os.Remove(path) }()

			raws := loader.Load(ctx, path)

			convey.Convey("Then the wrapper is unwrapped", func() {
				convey.So(len(raws), convey.ShouldEqual, 1)
				convey.So(raws[0]["job_title"], convey.ShouldEqual, "Data Engineer")
			})
		})

		convey.Convey("When the wrapper uses an alternate key", func() {
			path := writeTempDataset(`{"jobs": [{"job_title": "Analyst"}, {"job_title": "Dev"}]}`)
			defer func() { _ = os.Remove(path) }()

			raws := loader.Load(ctx, path)

			convey.So(len(raws), convey.ShouldEqual, 2)
		})

		convey.Convey("When the list contains non-object elements", func() {
			path := writeTempDataset(`[{"job_title": "A"}, "garbage", 42, null, {"job_title": "B"}]`)
			defer func() { _ = os.Remove(path) }()

			raws := loader.Load(ctx, path)

			convey.Convey("Then the non-objects are skipped", func() {
				convey.So(len(raws), convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the file does not exist", func() {
			raws := loader.Load(ctx, "/non/existent/dataset.json")

			convey.Convey("Then the dataset degrades to empty", func() {
				convey.So(raws, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the file is not valid JSON", func() {
			path := writeTempDataset(`{not json`)
			defer func() { _ = os.Remove(path) }()

			raws := loader.Load(ctx, path)

			convey.So(raws, convey.ShouldBeEmpty)
		})

		convey.Convey("When the top level is an unrecognized shape", func() {
			path := writeTempDataset(`{"payload": [{"job_title": "A"}]}`)
			defer func() { _ = os.Remove(path) }()

			raws := loader.Load(ctx, path)

			convey.Convey("Then no records are extracted", func() {
				convey.So(raws, convey.ShouldBeEmpty)
			})
		})
	})
}

func TestFromAny(t *testing.T) {
	convey.Convey("Given already-decoded JSON payloads", t, func() {
		convey.Convey("When the payload is a bare scalar", func() {
			convey.So(loader.FromAny("text"), convey.ShouldBeNil)
			convey.So(loader.FromAny(42.0), convey.ShouldBeNil)
			convey.So(loader.FromAny(nil), convey.ShouldBeNil)
		})

		convey.Convey("When the payload is an empty array", func() {
			raws := loader.FromAny([]any{})
			convey.So(raws, convey.ShouldNotBeNil)
			convey.So(raws, convey.ShouldBeEmpty)
		})

		convey.Convey("When multiple wrapper keys are present", func() {
			payload := map[string]any{
				"data":    []any{map[string]any{"job_title": "FromData"}},
				"records": []any{map[string]any{"job_title": "FromRecords"}},
			}

			raws := loader.FromAny(payload)

			convey.Convey("Then the records key wins", func() {
				convey.So(len(raws), convey.ShouldEqual, 1)
				convey.So(raws[0]["job_title"], convey.ShouldEqual, "FromRecords")
			})
		})
	})
}
