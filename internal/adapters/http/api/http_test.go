package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wrapbrain/internal/adapters/ai"
	"github.com/okian/wrapbrain/internal/adapters/http/api"
	"github.com/okian/wrapbrain/internal/adapters/renderer"
	service "github.com/okian/wrapbrain/internal/app"
	"github.com/okian/wrapbrain/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// newTestServer spins up the full API over a started service with offline
// collaborators.
func newTestServer(t *testing.T, opts ...service.Option) *httptest.Server {
	t.Helper()

	base := []service.Option{
		service.WithAnalyzer(ai.NewStatic()),
		service.WithRenderer(renderer.NewStub()),
		service.WithWorkerCount(2),
		service.WithQueueSize(32),
	}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw)) //nolint:noctx // test helper
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx // test helper
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestAnalyzeEndpoint(t *testing.T) {
	Convey("Given the API over a started service", t, func() {
		srv := newTestServer(t)

		Convey("When posting a valid analyze request", func() {
			resp, body := postJSON(t, srv.URL+"/v1/analyze", map[string]any{
				"playback_url": "https://cdn.example.com/wrap.mp4",
			})

			Convey("Then the normalized analysis is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				scenes, ok := body["scenes"].([]any)
				So(ok, ShouldBeTrue)
				So(scenes, ShouldHaveLength, 3)
				So(body["energy_level"], ShouldNotBeEmpty)
			})
		})

		Convey("When the playback URL is missing", func() {
			resp, body := postJSON(t, srv.URL+"/v1/analyze", map[string]any{})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When the body is not JSON", func() {
			resp, err := http.Post(srv.URL+"/v1/analyze", "application/json", bytes.NewReader([]byte("{"))) //nolint:noctx // test
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using the wrong method", func() {
			resp, _ := getJSON(t, srv.URL+"/v1/analyze")

			Convey("Then the route does not exist", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAssembleEndpoint(t *testing.T) {
	Convey("Given the API over a started service", t, func() {
		srv := newTestServer(t)

		// A real analysis makes the round trip honest.
		analyzeResp, analysis := postJSON(t, srv.URL+"/v1/analyze", map[string]any{
			"playback_url": "https://cdn.example.com/wrap.mp4",
		})
		So(analyzeResp.StatusCode, ShouldEqual, http.StatusOK)

		Convey("When posting the analysis back for assembly", func() {
			resp, body := postJSON(t, srv.URL+"/v1/assemble", map[string]any{
				"analysis": analysis,
				"platform": "instagram",
				"voice":    map[string]any{"tone": "street", "brand_name": "Apex Wraps"},
			})

			Convey("Then a creative plan is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				creativeBody, ok := body["creative"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(creativeBody["hook"], ShouldNotBeEmpty)
				So(creativeBody["cta"], ShouldNotBeEmpty)
				So(creativeBody["format"], ShouldEqual, "reel")
			})
		})

		Convey("When asking for variants", func() {
			resp, body := postJSON(t, srv.URL+"/v1/assemble", map[string]any{
				"analysis":      analysis,
				"variant_count": 3,
			})

			Convey("Then three takes are returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				variants, ok := body["variants"].([]any)
				So(ok, ShouldBeTrue)
				So(variants, ShouldHaveLength, 3)
			})
		})

		Convey("When the variant count is out of range", func() {
			resp, _ := postJSON(t, srv.URL+"/v1/assemble", map[string]any{
				"analysis":      analysis,
				"variant_count": 99,
			})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestPipelineEndpoint(t *testing.T) {
	Convey("Given the API over a started service", t, func() {
		srv := newTestServer(t)

		Convey("When running the one-shot pipeline", func() {
			resp, body := postJSON(t, srv.URL+"/v1/pipeline", map[string]any{
				"playback_url": "https://cdn.example.com/wrap.mp4",
				"platform":     "tiktok",
			})

			Convey("Then all stage outputs are present", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body, ShouldContainKey, "analysis")
				So(body, ShouldContainKey, "creative")
				timeline, ok := body["timeline"].(map[string]any)
				So(ok, ShouldBeTrue)
				mods, ok := timeline["modifications"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(mods["Video.source"], ShouldEqual, "https://cdn.example.com/wrap.mp4")
			})
		})

		Convey("When the playback URL is missing", func() {
			resp, _ := postJSON(t, srv.URL+"/v1/pipeline", map[string]any{})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRenderJobsEndpoint(t *testing.T) {
	Convey("Given the API over a started service", t, func() {
		srv := newTestServer(t)

		submitBody := map[string]any{
			"request_id":   "req-http-1",
			"playback_url": "https://cdn.example.com/wrap.mp4",
			"platforms":    []string{"instagram", "facebook"},
		}

		Convey("When submitting render jobs", func() {
			resp, body := postJSON(t, srv.URL+"/v1/render/jobs", submitBody)

			Convey("Then the jobs are accepted", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				So(body["status"], ShouldEqual, "accepted")
				jobs, ok := body["jobs"].([]any)
				So(ok, ShouldBeTrue)
				So(jobs, ShouldHaveLength, 2)
			})

			Convey("And resubmitting the same request ID reports a duplicate", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				again, dupBody := postJSON(t, srv.URL+"/v1/render/jobs", submitBody)
				So(again.StatusCode, ShouldEqual, http.StatusOK)
				So(dupBody["status"], ShouldEqual, "duplicate")
				So(dupBody["duplicate"], ShouldBeTrue)
			})

			Convey("And a submitted job can be fetched by ID", func() {
				jobs := body["jobs"].([]any)
				first := jobs[0].(map[string]any)
				jobResp, jobBody := getJSON(t, srv.URL+"/v1/render/jobs/"+first["id"].(string))
				So(jobResp.StatusCode, ShouldEqual, http.StatusOK)
				So(jobBody["id"], ShouldEqual, first["id"])
			})

			Convey("And the listing contains the submitted jobs", func() {
				listResp, listBody := getJSON(t, srv.URL+"/v1/render/jobs?limit=10")
				So(listResp.StatusCode, ShouldEqual, http.StatusOK)
				jobs, ok := listBody["jobs"].([]any)
				So(ok, ShouldBeTrue)
				So(len(jobs), ShouldEqual, 2)
			})
		})

		Convey("When fetching an unknown job", func() {
			resp, body := getJSON(t, srv.URL+"/v1/render/jobs/nope")

			Convey("Then a 404 is returned", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				So(body["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When the limit parameter is invalid", func() {
			resp, _ := getJSON(t, srv.URL+"/v1/render/jobs?limit=zero")

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestStatsAndHealth(t *testing.T) {
	Convey("Given the API over a started service", t, func() {
		srv := newTestServer(t)

		Convey("When fetching stats", func() {
			resp, body := getJSON(t, srv.URL+"/stats")

			Convey("Then the service gauges are present", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["started"], ShouldBeTrue)
			})
		})

		Convey("When fetching health metrics", func() {
			resp, err := http.Get(srv.URL + "/healthz") //nolint:noctx // test
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the metrics endpoint responds", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
