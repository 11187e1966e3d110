package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hyperjump/fsaptvis/internal/models"
)

// apiClient calls a running fsaptvis server.
type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Analyze calls POST /api/fsapt-analysis. A nil threshold leaves the server default in effect.
func (c *apiClient) Analyze(ligandID, proteinID string, threshold *float64) (*models.InteractionRecord, error) {
	body, err := json.Marshal(models.AnalysisRequest{LigandID: &ligandID, ProteinID: &proteinID, Threshold: threshold})
	if err != nil {
		return nil, err
	}
	var out struct {
		Success bool                     `json:"success"`
		Data    models.InteractionRecord `json:"data"`
		Message string                   `json:"message"`
	}
	if err := c.do(http.MethodPost, "/api/fsapt-analysis", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Summary calls GET /api/interaction-summary/{ligand_id}/{protein_id}.
func (c *apiClient) Summary(ligandID, proteinID string) (*models.SummaryStats, error) {
	path := "/api/interaction-summary/" + url.PathEscape(ligandID) + "/" + url.PathEscape(proteinID)
	var out struct {
		Success bool                `json:"success"`
		Summary models.SummaryStats `json:"summary"`
		Message string              `json:"message"`
	}
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.Summary, nil
}

// Pairs calls GET /api/available-pairs.
func (c *apiClient) Pairs() ([]string, error) {
	var out models.PairsResponse
	if err := c.do(http.MethodGet, "/api/available-pairs", nil, &out); err != nil {
		return nil, err
	}
	return out.Pairs, nil
}

func (c *apiClient) do(method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var env models.ErrorResponse
		b, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(b, &env) == nil && env.Message != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, env.Message)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
