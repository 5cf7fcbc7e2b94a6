package atlassian

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		BaseURL:  srv.URL,
		Username: "user@example.com",
		APIToken: "token",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, srv
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"complete", Config{BaseURL: "https://x.atlassian.net", Username: "u", APIToken: "t"}, true},
		{"missing url", Config{Username: "u", APIToken: "t"}, false},
		{"missing user", Config{BaseURL: "https://x", APIToken: "t"}, false},
		{"missing token", Config{BaseURL: "https://x", Username: "u"}, false},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok {
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("%s: err = %v, want ConfigError", c.name, err)
			}
		}
	}
}

func TestQueryPages(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/rest/api/content/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("cql"); got != `space = "ENG"` {
			t.Errorf("cql = %q", got)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Error("request missing basic auth")
		}
		fmt.Fprint(w, `{"results":[
			{"id":"1","title":"Runbook","type":"page",
			 "metadata":{"labels":{"results":[{"name":"ops"},{"name":"howto"}],"size":2}}},
			{"id":"2","title":"Roadmap","type":"page"}
		],"size":2}`)
	}))

	pages, err := client.QueryPages(`space = "ENG"`)
	if err != nil {
		t.Fatalf("QueryPages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if got := pages[0].Labels(); !reflect.DeepEqual(got, []string{"ops", "howto"}) {
		t.Errorf("labels = %v", got)
	}
	if pages[1].Labels() != nil {
		t.Errorf("page without metadata reported labels %v", pages[1].Labels())
	}
}

func TestQueryPagesError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad cql", http.StatusBadRequest)
	}))

	_, err := client.QueryPages("nonsense ===")
	var qErr *QueryError
	if !errors.As(err, &qErr) {
		t.Fatalf("err = %v, want QueryError", err)
	}
	if qErr.Status != http.StatusBadRequest || qErr.Query != "nonsense ===" {
		t.Errorf("QueryError = %+v", qErr)
	}
}

func TestListSpacesMixedIDFormats(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/rest/api/space" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"results":[
			{"id":123,"key":"ENG","name":"Engineering",
			 "description":{"plain":{"value":"Team docs"}}},
			{"id":"456","key":"DOCS","name":"Documentation"}
		],"size":2}`)
	}))

	spaces, err := client.ListSpaces()
	if err != nil {
		t.Fatalf("ListSpaces: %v", err)
	}
	if len(spaces) != 2 {
		t.Fatalf("got %d spaces, want 2", len(spaces))
	}
	if spaces[0].ID.String() != "123" || spaces[1].ID.String() != "456" {
		t.Errorf("ids = %q, %q", spaces[0].ID, spaces[1].ID)
	}
	if spaces[0].PlainDescription() != "Team docs" {
		t.Errorf("description = %q", spaces[0].PlainDescription())
	}
	if spaces[1].PlainDescription() != "" {
		t.Errorf("missing description rendered as %q", spaces[1].PlainDescription())
	}
}

func TestAddLabelsSendsGlobalPrefix(t *testing.T) {
	var gotBody string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/wiki/rest/api/content/42/label" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		fmt.Fprint(w, `[]`)
	}))

	if err := client.AddLabels("42", []string{"ops"}); err != nil {
		t.Fatalf("AddLabels: %v", err)
	}
	want := `[{"name":"ops","prefix":"global"}]`
	if gotBody != want {
		t.Errorf("body = %s, want %s", gotBody, want)
	}
}

func TestAddLabelsPageNotFound(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := client.AddLabels("999", []string{"ops"})
	var nf *PageNotFoundError
	if !errors.As(err, &nf) || nf.PageID != "999" {
		t.Errorf("err = %v, want PageNotFoundError for 999", err)
	}
}

func TestRemoveLabelsToleratesAbsent(t *testing.T) {
	var deletes []string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deletes = append(deletes, r.URL.Path)
		if len(deletes) == 1 {
			// First label already gone.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.RemoveLabels("42", []string{"gone", "ops"}); err != nil {
		t.Fatalf("RemoveLabels: %v", err)
	}
	if len(deletes) != 2 {
		t.Errorf("expected 2 delete calls, got %d", len(deletes))
	}
}

func TestBulkAddLabelsStopsOnFirstFailure(t *testing.T) {
	var calls int
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `[]`)
	}))

	err := client.BulkAddLabels([]string{"1", "2", "3"}, []string{"ops"})
	var lErr *LabelError
	if !errors.As(err, &lErr) {
		t.Fatalf("err = %v, want LabelError", err)
	}
	if calls != 2 {
		t.Errorf("expected the bulk loop to stop after 2 calls, made %d", calls)
	}
}

func TestUpdateLabelRemovesThenAdds(t *testing.T) {
	var trace []string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trace = append(trace, r.Method)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		fmt.Fprint(w, `[]`)
	}))

	if err := client.UpdateLabel("42", "old", "new"); err != nil {
		t.Fatalf("UpdateLabel: %v", err)
	}
	if !reflect.DeepEqual(trace, []string{http.MethodDelete, http.MethodPost}) {
		t.Errorf("call order = %v", trace)
	}
}
