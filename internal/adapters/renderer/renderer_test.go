package renderer_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/wrapbrain/internal/adapters/renderer"
	"github.com/okian/wrapbrain/internal/domain/render"
	"github.com/okian/wrapbrain/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func submittedJob() render.Job {
	return render.Job{
		ID: "job-1",
		Timeline: render.Timeline{
			TemplateID: "wrap-reel-baseline",
			Modifications: map[string]any{
				"Video.source": "https://cdn.example.com/clip.mp4",
				"Text-1.text":  "POV: Your car gets a new identity",
			},
			OutputFormat: render.OutputMP4,
			Width:        1080,
			Height:       1920,
			FrameRate:    30,
		},
	}
}

func TestHTTPClientSubmit(t *testing.T) {
	Convey("Given a renderer client against a fake rendering service", t, func() {
		ctx := context.Background()

		Convey("When the service accepts the render", func() {
			var gotAuth string
			var gotBody map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.WriteHeader(http.StatusAccepted)
				_ = json.NewEncoder(w).Encode([]map[string]any{
					{"id": "rm-1", "status": "planned", "url": "https://cdn.example.com/out.mp4"},
				})
			}))
			defer srv.Close()

			client := renderer.NewHTTPClient("test-key", renderer.WithBaseURL(srv.URL))
			sub, err := client.Submit(ctx, submittedJob())

			Convey("Then the submission carries the service's view", func() {
				So(err, ShouldBeNil)
				So(sub.RemoteID, ShouldEqual, "rm-1")
				So(sub.Status, ShouldEqual, "planned")
				So(sub.OutputURL, ShouldEqual, "https://cdn.example.com/out.mp4")
			})

			Convey("Then the request was authorized and shaped correctly", func() {
				So(gotAuth, ShouldEqual, "Bearer test-key")
				So(gotBody["template_id"], ShouldEqual, "wrap-reel-baseline")
				So(gotBody["width"], ShouldEqual, 1080)
				So(gotBody["height"], ShouldEqual, 1920)
			})
		})

		Convey("When the service rejects the render", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":"invalid template"}`, http.StatusBadRequest)
			}))
			defer srv.Close()

			client := renderer.NewHTTPClient("test-key", renderer.WithBaseURL(srv.URL))
			_, err := client.Submit(ctx, submittedJob())

			Convey("Then a submit error is returned", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, renderer.ErrSubmitFailed), ShouldBeTrue)
			})
		})

		Convey("When the service returns an empty render list", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode([]map[string]any{})
			}))
			defer srv.Close()

			client := renderer.NewHTTPClient("test-key", renderer.WithBaseURL(srv.URL))
			_, err := client.Submit(ctx, submittedJob())

			Convey("Then a bad response error is returned", func() {
				So(err, ShouldEqual, renderer.ErrBadResponse)
			})
		})

		Convey("When no API key is configured", func() {
			client := renderer.NewHTTPClient("")
			_, err := client.Submit(ctx, submittedJob())

			Convey("Then the submission is refused locally", func() {
				So(err, ShouldEqual, renderer.ErrMissingAPIKey)
			})
		})
	})
}

func TestStub(t *testing.T) {
	Convey("Given a stub renderer client", t, func() {
		stub := renderer.NewStub()

		Convey("When submitting jobs", func() {
			first, err1 := stub.Submit(context.Background(), submittedJob())
			second, err2 := stub.Submit(context.Background(), submittedJob())

			Convey("Then each submission gets a distinct remote ID", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(first.RemoteID, ShouldNotEqual, second.RemoteID)
				So(first.OutputURL, ShouldNotBeEmpty)
			})
		})
	})
}
