package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/tripgest/internal/trip"
)

// PathstoreClient communicates with the pathstore HTTP API.
type PathstoreClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPathstoreClient(baseURL, apiKey string) *PathstoreClient {
	return &PathstoreClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NodeRequest is the body for PUT /kv/{key}.
type NodeRequest struct {
	Value     any    `json:"value"`
	MergeMode string `json:"merge_mode,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Node is a single key/value pair returned by GET /kv/{key} or a prefix scan.
type Node struct {
	Key   string          `json:"key_path"`
	Value json.RawMessage `json:"value"`
}

func (c *PathstoreClient) do(ctx context.Context, method, u string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	return c.httpClient.Do(req)
}

func statusError(op, key string, resp *http.Response) error {
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%s %s: status %d: %s", op, key, resp.StatusCode, string(respBody))
}

// PutNode stores or replaces a node at the given path.
func (c *PathstoreClient) PutNode(ctx context.Context, key string, req NodeRequest) error {
	resp, err := c.do(ctx, http.MethodPut, c.baseURL+"/kv/"+key, req)
	if err != nil {
		return fmt.Errorf("put node: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusError("put node", key, resp)
	}
	return nil
}

// GetNode retrieves a node by key. A missing node is (nil, nil).
func (c *PathstoreClient) GetNode(ctx context.Context, key string) (*Node, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/kv/"+key, nil)
	if err != nil {
		return nil, fmt.Errorf("get node: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("get node", key, resp)
	}

	var node Node
	if err := json.NewDecoder(resp.Body).Decode(&node); err != nil {
		return nil, fmt.Errorf("decode node: %w", err)
	}
	return &node, nil
}

// DeleteNode deletes a node. It reports false when the node did not exist.
func (c *PathstoreClient) DeleteNode(ctx context.Context, key string) (bool, error) {
	resp, err := c.do(ctx, http.MethodDelete, c.baseURL+"/kv/"+key, nil)
	if err != nil {
		return false, fmt.Errorf("delete node: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}
	return false, statusError("delete node", key, resp)
}

// ListChildren does a prefix scan under the given key.
func (c *PathstoreClient) ListChildren(ctx context.Context, key string, limit int) ([]Node, error) {
	u := c.baseURL + "/kv/" + key + "/*"
	if limit > 0 {
		u += "?limit=" + url.QueryEscape(fmt.Sprintf("%d", limit))
	}
	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list children", key, resp)
	}

	var result struct {
		Nodes []Node `json:"nodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode children: %w", err)
	}
	return result.Nodes, nil
}

func (c *PathstoreClient) Close() {
	c.httpClient.CloseIdleConnections()
}

const tripPrefix = "trips"

func tripKey(id string) string {
	return tripPrefix + "/" + url.PathEscape(id)
}

// PathstoreStore keeps each trip as one JSON value at trips/{id}.
type PathstoreStore struct {
	client *PathstoreClient
}

func NewPathstoreStore(client *PathstoreClient) *PathstoreStore {
	return &PathstoreStore{client: client}
}

func (s *PathstoreStore) SaveTrip(ctx context.Context, t *trip.Trip) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	if t.Items == nil {
		t.Items = []trip.Item{}
	}
	return s.client.PutNode(ctx, tripKey(t.ID), NodeRequest{
		Value:     t,
		MergeMode: "replace",
		Source:    "tripgest",
	})
}

func (s *PathstoreStore) GetTrip(ctx context.Context, id string) (*trip.Trip, error) {
	node, err := s.client.GetNode(ctx, tripKey(id))
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, ErrNotFound
	}
	var t trip.Trip
	if err := json.Unmarshal(node.Value, &t); err != nil {
		return nil, fmt.Errorf("decode trip %s: %w", id, err)
	}
	return &t, nil
}

// ListTrips scans every trip node and sorts client side; pathstore has no
// ordering on values.
func (s *PathstoreStore) ListTrips(ctx context.Context, limit int) ([]trip.Trip, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	nodes, err := s.client.ListChildren(ctx, tripPrefix, 0)
	if err != nil {
		return nil, err
	}

	trips := make([]trip.Trip, 0, len(nodes))
	for _, n := range nodes {
		var t trip.Trip
		if err := json.Unmarshal(n.Value, &t); err != nil {
			return nil, fmt.Errorf("decode trip at %s: %w", n.Key, err)
		}
		t.Items = nil
		trips = append(trips, t)
	}
	sort.SliceStable(trips, func(i, j int) bool {
		if !trips[i].UpdatedAt.Equal(trips[j].UpdatedAt) {
			return trips[i].UpdatedAt.After(trips[j].UpdatedAt)
		}
		return trips[i].ID < trips[j].ID
	})
	if len(trips) > limit {
		trips = trips[:limit]
	}
	return trips, nil
}

func (s *PathstoreStore) DeleteTrip(ctx context.Context, id string) error {
	found, err := s.client.DeleteNode(ctx, tripKey(id))
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *PathstoreStore) Close() error {
	s.client.Close()
	return nil
}
