package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/joblens/internal/adapters/http/api"
	"github.com/okian/joblens/internal/domain/insights"
	"github.com/okian/joblens/internal/domain/record"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockDependencies struct {
	acceptAll bool
	submitted []record.Raw
	result    insights.Insights
}

func (m *mockDependencies) Submit(ctx context.Context, raw record.Raw) bool {
	if !m.acceptAll {
		return false
	}
	m.submitted = append(m.submitted, raw)
	return true
}

func (m *mockDependencies) SubmitBatch(ctx context.Context, raws []record.Raw) int {
	accepted := 0
	for _, raw := range raws {
		if m.Submit(ctx, raw) {
			accepted++
		}
	}
	return accepted
}

func (m *mockDependencies) Insights(ctx context.Context) insights.Insights {
	return m.result
}

func (m *mockDependencies) Status(ctx context.Context) insights.Status {
	return m.result.Status
}

type mockStatsProvider struct {
	stats map[string]any
}

func (m *mockStatsProvider) GetStats() map[string]any {
	return m.stats
}

func sampleInsights() insights.Insights {
	return insights.Insights{
		TopRoles:      []insights.RoleCount{{Title: "ML Engineer", Count: 2}},
		SalaryByRole:  []insights.RoleSalary{{Role: "ML Engineer", AvgSalary: 110000}},
		SkillsDemand:  []insights.SkillCount{{Skill: "Python", Count: 2}},
		JobsByCountry: []insights.CountryCount{{Country: "US", Count: 2}},
		SalaryTrend:   []insights.MonthSalary{{Month: "2025-01", AvgSalary: 100000}},
		Status:        insights.Status{Rows: 2, TopRoles: 1, SalaryByRole: 1, SkillsDemand: 1, JobsByCountry: 1, SalaryTrend: 1},
	}
}

func newTestMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]any{"started": true}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{acceptAll: true, result: sampleInsights()}
		mux := newTestMux(deps)

		Convey("Then the health endpoint responds", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("And the stats endpoint responds", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("And the metrics endpoint responds", func() {
			req := httptest.NewRequest("GET", "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})
	})
}

func TestRecordsEndpoint(t *testing.T) {
	Convey("Given the records endpoint", t, func() {
		deps := &mockDependencies{acceptAll: true}
		mux := newTestMux(deps)

		Convey("When posting a single object", func() {
			body := `{"job_title": "ML Engineer", "salary_usd": "100,000"}`
			req := httptest.NewRequest("POST", "/records", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is accepted asynchronously", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)

				var ack struct {
					Status   string `json:"status"`
					Accepted int    `json:"accepted"`
					Rejected int    `json:"rejected"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.Accepted, ShouldEqual, 1)
				So(ack.Rejected, ShouldEqual, 0)
				So(len(deps.submitted), ShouldEqual, 1)
			})
		})

		Convey("When posting an array of objects", func() {
			body := `[{"job_title": "A"}, {"job_title": "B"}]`
			req := httptest.NewRequest("POST", "/records", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then every element is submitted", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.submitted), ShouldEqual, 2)
			})
		})

		Convey("When posting an empty array", func() {
			req := httptest.NewRequest("POST", "/records", strings.NewReader(`[]`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is still accepted with zero counts", func() {
				So(w.Code, ShouldEqual, http.StatusAccepted)
			})
		})

		Convey("When posting a body that is not JSON", func() {
			req := httptest.NewRequest("POST", "/records", strings.NewReader(`not json`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting a scalar body", func() {
			req := httptest.NewRequest("POST", "/records", strings.NewReader(`42`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting an array with non-object elements", func() {
			body := `[{"job_title": "A"}, "garbage"]`
			req := httptest.NewRequest("POST", "/records", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest("GET", "/records", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a service under backpressure", t, func() {
		deps := &mockDependencies{acceptAll: false}
		mux := newTestMux(deps)

		Convey("When posting records", func() {
			body := `[{"job_title": "A"}]`
			req := httptest.NewRequest("POST", "/records", strings.NewReader(body))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the request is rejected with 429", func() {
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)
			})
		})
	})
}

func TestInsightsEndpoint(t *testing.T) {
	Convey("Given the insights endpoints", t, func() {
		deps := &mockDependencies{acceptAll: true, result: sampleInsights()}
		mux := newTestMux(deps)

		Convey("When fetching the full insights", func() {
			req := httptest.NewRequest("GET", "/insights", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then all tables come back with the documented field names", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got insights.Insights
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.TopRoles[0].Title, ShouldEqual, "ML Engineer")
				So(got.SalaryByRole[0].AvgSalary, ShouldEqual, 110000)
				So(got.Status.Rows, ShouldEqual, 2)

				So(w.Body.String(), ShouldContainSubstring, `"topRoles"`)
				So(w.Body.String(), ShouldContainSubstring, `"salaryByRole"`)
				So(w.Body.String(), ShouldContainSubstring, `"skillsDemand"`)
				So(w.Body.String(), ShouldContainSubstring, `"jobsByCountry"`)
				So(w.Body.String(), ShouldContainSubstring, `"salaryTrend"`)
				So(w.Body.String(), ShouldContainSubstring, `"avgSalary"`)
			})
		})

		Convey("When fetching a single table", func() {
			for path, fragment := range map[string]string{
				"/insights/roles":     `"title":"ML Engineer"`,
				"/insights/salaries":  `"role":"ML Engineer"`,
				"/insights/skills":    `"skill":"Python"`,
				"/insights/countries": `"country":"US"`,
				"/insights/trend":     `"month":"2025-01"`,
			} {
				req := httptest.NewRequest("GET", path, nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, fragment)
			}
		})

		Convey("When fetching an unknown table", func() {
			req := httptest.NewRequest("GET", "/insights/bogus", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestStatusEndpoint(t *testing.T) {
	Convey("Given the status endpoint", t, func() {
		deps := &mockDependencies{result: sampleInsights()}
		mux := newTestMux(deps)

		Convey("When fetching the digest", func() {
			req := httptest.NewRequest("GET", "/status", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the digest rows are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var got insights.Status
				So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
				So(got.Rows, ShouldEqual, 2)
				So(got.TopRoles, ShouldEqual, 1)
			})
		})
	})
}
