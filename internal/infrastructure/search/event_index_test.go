package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

// fakeES answers like an Elasticsearch node; the client refuses servers without the product header.
func fakeES(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*EventIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewEventIndex(es, "events"), &reqs
}

func TestEventIndex_Index(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})

	e := &entity.Event{ID: "e-1", Name: "Jazz Night", Date: time.Date(2031, 1, 1, 20, 0, 0, 0, time.UTC), OrganizerID: "u-1"}
	require.NoError(t, idx.Index(context.Background(), e))

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/events/_doc/e-1", got.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.body), &doc))
	assert.Equal(t, "Jazz Night", doc["name"])
	assert.Equal(t, "u-1", doc["organizerId"])
}

func TestEventIndex_IndexErrorStatus(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"mapper_parsing_exception"}`))
	})
	err := idx.Index(context.Background(), &entity.Event{ID: "e-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapper_parsing_exception")
}

func TestEventIndex_RemoveMissingIsFine(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	assert.NoError(t, idx.Remove(context.Background(), "e-9"))
	assert.Equal(t, http.MethodDelete, (*reqs)[0].method)
}

func TestEventIndex_RemoveByOrganizer(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"deleted":2}`))
	})
	require.NoError(t, idx.RemoveByOrganizer(context.Background(), "u-1"))
	got := (*reqs)[0]
	assert.Equal(t, "/events/_delete_by_query", got.path)
	assert.Contains(t, got.body, `"organizerId":"u-1"`)
}

func TestEventIndex_Search(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_id":"e-1","_score":2.5,"_source":{"id":"e-1","name":"Jazz Night","venue":"Blue Room","price":15}},
			{"_id":"e-2","_score":1.1,"_source":{"name":"Jazz Brunch"}}
		]}}`))
	})

	hits, err := idx.Search(context.Background(), "jazz", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "Jazz Night", hits[0].Name)
	assert.Equal(t, 2.5, hits[0].Score)
	assert.Equal(t, "e-2", hits[1].ID)

	got := (*reqs)[0]
	assert.True(t, strings.HasSuffix(got.path, "/_search"))
	assert.Contains(t, got.body, `"size":5`)
}

func TestEventIndex_SearchMissingIndex(t *testing.T) {
	idx, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"}}`))
	})
	hits, err := idx.Search(context.Background(), "jazz", 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestEventIndex_EnsureIndexCreatesWhenMissing(t *testing.T) {
	idx, reqs := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"acknowledged":true}`))
	})
	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodPut, (*reqs)[1].method)
	assert.Contains(t, (*reqs)[1].body, `"organizerId"`)
}
