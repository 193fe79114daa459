// Package search mirrors events into Elasticsearch for the admin full-text search.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

const indexMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "keyword"},
      "name":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "description": {"type": "text"},
      "category":    {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "venue":       {"type": "text"},
      "date":        {"type": "date"},
      "price":       {"type": "double"},
      "image":       {"type": "keyword", "index": false},
      "organizerId": {"type": "keyword"},
      "updatedAt":   {"type": "date"}
    }
  }
}`

type EventIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewEventIndex(es *elasticsearch.Client, index string) *EventIndex {
	return &EventIndex{ES: es, IndexName: index}
}

type eventDoc struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	OrganizerID string    `json:"organizerId"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toDoc(e *entity.Event) eventDoc {
	return eventDoc{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		Venue:       e.Venue,
		Date:        e.Date.UTC(),
		Price:       e.Price,
		Image:       e.Image,
		OrganizerID: e.OrganizerID,
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	return fmt.Errorf("es %s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *EventIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Indices.Exists([]string{x.IndexName}, x.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("es index exists: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.ES.Indices.Create(x.IndexName,
		x.ES.Indices.Create.WithContext(c),
		x.ES.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))))
	if err != nil {
		return fmt.Errorf("es index create: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("index create", res)
	}
	return nil
}

func (x *EventIndex) Index(ctx context.Context, e *entity.Event) error {
	b, err := json.Marshal(toDoc(e))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: e.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return responseError("index", res)
	}
	return nil
}

// Remove deletes one document; a missing document is not an error.
func (x *EventIndex) Remove(ctx context.Context, eventID string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: eventID}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return fmt.Errorf("es delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete", res)
	}
	return nil
}

func (x *EventIndex) RemoveByOrganizer(ctx context.Context, organizerID string) error {
	q := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"organizerId": organizerID},
		},
	}
	b, _ := json.Marshal(q)
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.ES.DeleteByQuery([]string{x.IndexName}, bytes.NewReader(b), x.ES.DeleteByQuery.WithContext(c))
	if err != nil {
		return fmt.Errorf("es delete by query: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete by query", res)
	}
	return nil
}

// Search runs a multi_match over the text fields, name weighted highest.
func (x *EventIndex) Search(ctx context.Context, query string, size int) ([]application.EventSearchHit, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"name^3", "category^2", "description", "venue"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return []application.EventSearchHit{}, nil
		}
		return nil, responseError("search", res)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Score  float64  `json:"_score"`
				Source eventDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode es search: %w", err)
	}

	out := make([]application.EventSearchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		if d.ID == "" {
			d.ID = h.ID
		}
		out = append(out, application.EventSearchHit{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    d.Category,
			Venue:       d.Venue,
			Date:        d.Date,
			Price:       d.Price,
			Image:       d.Image,
			OrganizerID: d.OrganizerID,
			Score:       h.Score,
		})
	}
	return out, nil
}

var _ application.EventIndex = (*EventIndex)(nil)
