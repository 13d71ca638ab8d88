package library_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"lexview/pkg/routes"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := &fakeRegistry{payload: []byte("%PDF-1.4 body")}
	sys, _ := newLibrary(t, reg, "1MB")

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandlerFetchStatusCodes(t *testing.T) {
	srv := newServer(t)

	body := bytes.NewBufferString(`{"title":"Konstytucja"}`)
	res, err := http.Post(srv.URL+"/library/DU/1997/483", "application/json", body)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Errorf("first fetch status = %d, want 201", res.StatusCode)
	}

	res, err = http.Post(srv.URL+"/library/DU/1997/483", "application/json", nil)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Errorf("reused fetch status = %d, want 200", res.StatusCode)
	}
}

func TestHandlerFetchRejectsUnknownPublisher(t *testing.T) {
	srv := newServer(t)

	res, err := http.Post(srv.URL+"/library/XX/1997/483", "application/json", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestHandlerContentHeaders(t *testing.T) {
	srv := newServer(t)

	res, err := http.Post(srv.URL+"/library/DU/1997/483", "application/json", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var doc struct {
		ID       string `json:"id"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		t.Fatalf("decode fetch response: %v", err)
	}
	res.Body.Close()

	res, err = http.Get(srv.URL + "/library/" + doc.ID + "/content")
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content-type = %s", ct)
	}
	if cd := res.Header.Get("Content-Disposition"); cd != `inline; filename="`+doc.Filename+`"` {
		t.Errorf("content-disposition = %s", cd)
	}
}

func TestHandlerDeleteUnknownDocument(t *testing.T) {
	srv := newServer(t)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/library/"+uuid.NewString(), nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", res.StatusCode)
	}
}

func TestHandlerDeleteReturnsNoContent(t *testing.T) {
	srv := newServer(t)

	res, err := http.Post(srv.URL+"/library/MP/2001/7", "application/json", nil)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	var doc struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		t.Fatalf("decode fetch response: %v", err)
	}
	res.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/library/"+doc.ID, nil)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", res.StatusCode)
	}
}
