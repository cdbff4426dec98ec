package netx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDoJSON(t *testing.T) {
	t.Run("posts json and returns body", func(t *testing.T) {
		var gotBody, gotCT, gotMethod, gotAuth string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("taken"))
		}))
		defer ts.Close()

		h := http.Header{}
		h.Set("Authorization", "tok")
		status, body, err := DoJSON(context.Background(), ts.Client(), http.MethodPost, ts.URL, map[string]string{"a": "b"}, h)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status != http.StatusConflict || string(body) != "taken" {
			t.Fatalf("got %d %q", status, body)
		}
		if gotMethod != http.MethodPost || gotCT != "application/json" || gotAuth != "tok" {
			t.Fatalf("method=%q ct=%q auth=%q", gotMethod, gotCT, gotAuth)
		}
		if gotBody != `{"a":"b"}` {
			t.Fatalf("body = %q", gotBody)
		}
	})

	t.Run("nil body sends nothing", func(t *testing.T) {
		var gotCT string
		var gotLen int64
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
			gotLen = r.ContentLength
		}))
		defer ts.Close()

		status, _, err := DoJSON(context.Background(), ts.Client(), http.MethodGet, ts.URL, nil, nil)
		if err != nil || status != http.StatusOK {
			t.Fatalf("status=%d err=%v", status, err)
		}
		if gotCT != "" || gotLen != 0 {
			t.Fatalf("unexpected body: ct=%q len=%d", gotCT, gotLen)
		}
	})

	t.Run("unencodable body", func(t *testing.T) {
		_, _, err := DoJSON(context.Background(), http.DefaultClient, http.MethodPost, "http://unused", make(chan int), nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		_, _, err := DoJSON(context.Background(), http.DefaultClient, http.MethodGet, ts.URL, nil, nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !isNetOpError(err) {
			t.Fatalf("got wrong kind of error: %v", err)
		}
	})
}

type netOpErrorLike interface {
	error
	Timeout() bool
	Temporary() bool
}

func isNetOpError(err error) bool {
	var target netOpErrorLike
	return errors.As(err, &target)
}
