package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/internal/slogx"
	"github.com/goliatone/go-formbuilder/pkg/details"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

type testServer struct {
	t       *testing.T
	server  *Server
	handler http.Handler
}

func newTestServer(t *testing.T, funcs ...OptionFunc) *testServer {
	t.Helper()

	funcs = append([]OptionFunc{WithLogger(slogx.NewTestLogger(t))}, funcs...)
	srv := NewServer(funcs...)
	handler, err := srv.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return &testServer{t: t, server: srv, handler: handler}
}

func (ts *testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	ts.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) create(prefix string) string {
	ts.t.Helper()

	rec := ts.do(http.MethodGet, prefix+"/", nil)
	if rec.Code != http.StatusSeeOther {
		ts.t.Fatalf("create: expected 303, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, prefix+"/w/") {
		ts.t.Fatalf("unexpected location %q", location)
	}
	return strings.TrimPrefix(location, prefix+"/w/")
}

func (ts *testServer) post(id, action string, form url.Values) *httptest.ResponseRecorder {
	ts.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return ts.do(http.MethodPost, "/w/"+id+action, form)
}

func (ts *testServer) mustPost(id, action string, form url.Values) {
	ts.t.Helper()
	rec := ts.post(id, action, form)
	if rec.Code != http.StatusSeeOther {
		ts.t.Fatalf("POST %s: expected 303, got %d: %s", action, rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/w/"+id {
		ts.t.Fatalf("POST %s: unexpected redirect %q", action, got)
	}
}

func (ts *testServer) page(id string) string {
	ts.t.Helper()
	rec := ts.do(http.MethodGet, "/w/"+id, nil)
	if rec.Code != http.StatusOK {
		ts.t.Fatalf("GET page: expected 200, got %d", rec.Code)
	}
	return rec.Body.String()
}

func (ts *testServer) data(id string) dataResponse {
	ts.t.Helper()
	rec := ts.do(http.MethodGet, "/w/"+id+"/data.json", nil)
	if rec.Code != http.StatusOK {
		ts.t.Fatalf("GET data: expected 200, got %d", rec.Code)
	}
	var out dataResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		ts.t.Fatalf("decode data: %v", err)
	}
	return out
}

func fieldIDs(fields []model.Field) []string {
	ids := make([]string, 0, len(fields))
	for _, field := range fields {
		ids = append(ids, field.ID)
	}
	return ids
}

func TestServer_InvalidThenValidSubmit(t *testing.T) {
	display := &details.Recorder{}
	ts := newTestServer(t, WithDetailsDisplay(display))
	id := ts.create("")

	page := ts.page(id)
	for _, fragment := range []string{`name="values[1]"`, `name="values[2]"`, `action="/w/` + id + `/submit"`} {
		if !strings.Contains(page, fragment) {
			t.Fatalf("page missing %q", fragment)
		}
	}

	ts.mustPost(id, "/submit", nil)
	got := ts.data(id)
	if got.State != model.ViewEditing {
		t.Fatalf("expected editing after invalid submit, got %s", got.State)
	}
	wantErrors := model.ErrorMap{"1": "Name is required", "2": "Country is required"}
	if diff := cmp.Diff(wantErrors, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(ts.page(id), "Name is required") {
		t.Fatalf("expected inline error on page")
	}

	ts.mustPost(id, "/submit", url.Values{"values[1]": {"Alice"}, "values[2]": {"USA"}})
	got = ts.data(id)
	if got.State != model.ViewSubmitted || !got.Submitted {
		t.Fatalf("expected submitted, got %s (submitted=%v)", got.State, got.Submitted)
	}
	if diff := cmp.Diff(model.FormData{"1": "Alice", "2": "USA"}, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(got.Errors) != 0 {
		t.Fatalf("expected errors cleared, got %v", got.Errors)
	}

	last, ok := display.Last()
	if !ok || display.Count() != 1 || last.Data["1"] != "Alice" {
		t.Fatalf("expected the display to receive the submission once")
	}
	if !strings.Contains(ts.page(id), "Submitted Details") {
		t.Fatalf("expected details view after submit")
	}
}

func TestServer_AddAndRemoveFields(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create("")

	ts.mustPost(id, "/add-field/open", url.Values{"values[1]": {"Alice"}})
	if page := ts.page(id); !strings.Contains(page, `name="label"`) {
		t.Fatalf("expected new field title input")
	}

	ts.mustPost(id, "/fields", url.Values{"label": {"   "}})
	page := ts.page(id)
	if !strings.Contains(page, emptyLabelNotice) {
		t.Fatalf("expected blank title notice")
	}
	if strings.Contains(ts.page(id), emptyLabelNotice) {
		t.Fatalf("notice must only render once")
	}
	if diff := cmp.Diff([]string{"1", "2"}, fieldIDs(ts.data(id).Fields)); diff != "" {
		t.Fatalf("blank title must not add a field (-want +got):\n%s", diff)
	}

	ts.mustPost(id, "/fields", url.Values{"label": {"Email"}})
	got := ts.data(id)
	if diff := cmp.Diff([]string{"1", "2", "3"}, fieldIDs(got.Fields)); diff != "" {
		t.Fatalf("field ids mismatch (-want +got):\n%s", diff)
	}
	if got.Fields[2].Label != "Email" || got.Fields[2].Kind != model.FieldKindText {
		t.Fatalf("unexpected added field %+v", got.Fields[2])
	}
	if got.Values["1"] != "Alice" {
		t.Fatalf("values posted with an action must be kept, got %v", got.Values)
	}

	ts.mustPost(id, "/fields/1/delete", nil)
	ts.mustPost(id, "/fields/404/delete", nil)
	if diff := cmp.Diff([]string{"2", "3"}, fieldIDs(ts.data(id).Fields)); diff != "" {
		t.Fatalf("field ids mismatch after delete (-want +got):\n%s", diff)
	}

	ts.mustPost(id, "/fields", url.Values{"label": {"Phone"}})
	if diff := cmp.Diff([]string{"2", "3", "4"}, fieldIDs(ts.data(id).Fields)); diff != "" {
		t.Fatalf("ids must never be reused (-want +got):\n%s", diff)
	}

	ts.mustPost(id, "/values", url.Values{"values[2]": {"Nepal"}, "values[1]": {"ghost"}})
	got = ts.data(id)
	if got.Values["2"] != "Nepal" {
		t.Fatalf("expected value saved, got %v", got.Values)
	}
	if got.Values["1"] != "Alice" {
		t.Fatalf("values for removed fields must not be overwritten, got %v", got.Values)
	}
}

func TestServer_CancelAddFieldKeepsTitle(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create("")

	ts.mustPost(id, "/add-field/open", nil)
	ts.mustPost(id, "/add-field/cancel", url.Values{"label": {"Draft"}})
	if strings.Contains(ts.page(id), `name="label"`) {
		t.Fatalf("expected title input hidden after cancel")
	}
	ts.mustPost(id, "/add-field/open", nil)
	if !strings.Contains(ts.page(id), `name="label" value="Draft"`) {
		t.Fatalf("expected typed title kept")
	}
}

func TestServer_PreviewFlow(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create("")

	ts.mustPost(id, "/preview", url.Values{"values[1]": {"Alice"}})
	got := ts.data(id)
	if got.State != model.ViewPreviewing || got.Values["1"] != "Alice" {
		t.Fatalf("expected preview with saved values, got %s %v", got.State, got.Values)
	}
	if !strings.Contains(ts.page(id), "Edit Form") {
		t.Fatalf("expected preview view")
	}

	ts.mustPost(id, "/submit", url.Values{"values[2]": {"USA"}})
	got = ts.data(id)
	if got.State != model.ViewPreviewing {
		t.Fatalf("invalid confirm must stay in preview, got %s", got.State)
	}
	if diff := cmp.Diff(model.ErrorMap{"2": "Country is required"}, got.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	if rec := ts.post(id, "/fields", url.Values{"label": {"Email"}}); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 adding a field while previewing, got %d", rec.Code)
	}

	ts.mustPost(id, "/preview", nil)
	ts.mustPost(id, "/submit", url.Values{"values[2]": {"USA"}})
	if ts.data(id).State != model.ViewSubmitted {
		t.Fatalf("expected submitted")
	}
}

func TestServer_SubmittedIsTerminal(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create("")
	ts.mustPost(id, "/submit", url.Values{"values[1]": {"Alice"}, "values[2]": {"India"}})

	for _, action := range []string{"/submit", "/preview", "/fields", "/add-field/open", "/fields/1/delete"} {
		if rec := ts.post(id, action, url.Values{"label": {"x"}}); rec.Code != http.StatusConflict {
			t.Fatalf("POST %s after submit: expected 409, got %d", action, rec.Code)
		}
	}
	if ts.data(id).Values["1"] != "Alice" {
		t.Fatalf("submitted values must not change")
	}
}

func TestServer_UnknownInstance(t *testing.T) {
	ts := newTestServer(t)
	if rec := ts.do(http.MethodGet, "/w/missing", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := ts.post("missing", "/submit", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create("")
	ts.mustPost(id, "/submit", nil)
	ts.mustPost(id, "/fields", url.Values{"label": {"Email"}})

	if rec := ts.do(http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	rec := ts.do(http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, fragment := range []string{
		"formbuilder_instances_created_total 1",
		"formbuilder_instances_active 1",
		"formbuilder_fields_added_total 1",
		`formbuilder_submissions_total{outcome="invalid"} 1`,
	} {
		if !strings.Contains(body, fragment) {
			t.Errorf("metrics missing %q\n%s", fragment, body)
		}
	}
}

func TestServer_BaseURL(t *testing.T) {
	ts := newTestServer(t, WithBaseURL("/forms/"))
	id := ts.create("/forms")

	rec := ts.do(http.MethodGet, "/forms/w/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/forms/w/`+id+`/submit"`) {
		t.Fatalf("expected actions under the base url")
	}

	rec = ts.do(http.MethodPost, "/forms/w/"+id+"/preview", url.Values{})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/forms/w/"+id {
		t.Fatalf("unexpected redirect %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestServer_SubmitFromClosedRequestKeepsEditing(t *testing.T) {
	display := &details.Recorder{}
	ts := newTestServer(t, WithDetailsDisplay(display))
	id := ts.create("")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/w/"+id+"/submit", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ts.handler.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	got := ts.data(id)
	if got.State != model.ViewEditing || got.Submitted {
		t.Fatalf("expected editing without submission, got %s (submitted=%v)", got.State, got.Submitted)
	}
	if display.Count() != 0 {
		t.Fatalf("details display must not run")
	}
}
