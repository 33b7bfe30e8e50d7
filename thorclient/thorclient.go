// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package thorclient talks to the REST API of a VeChainThor node.
package thorclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/farming/thor"
)

var ErrNot200Status = errors.New("not 200 status code")

// Clause is one call in a batch inspection.
type Clause struct {
	To    *thor.Address         `json:"to"`
	Value *math.HexOrDecimal256 `json:"value"`
	Data  string                `json:"data"`
}

// BatchCallData is the body of POST /accounts/*.
type BatchCallData struct {
	Clauses []*Clause     `json:"clauses"`
	Gas     uint64        `json:"gas,omitempty"`
	Caller  *thor.Address `json:"caller,omitempty"`
}

// CallResult is the outcome of one inspected clause.
type CallResult struct {
	Data     string `json:"data"`
	GasUsed  uint64 `json:"gasUsed"`
	Reverted bool   `json:"reverted"`
	VMError  string `json:"vmError"`
}

// Client represents the HTTP client of a node.
type Client struct {
	url string
	c   *http.Client
}

func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{url: url, c: c}
}

// InspectClauses simulates calldata at revision without sending a
// transaction. An empty revision means best.
func (c *Client) InspectClauses(ctx context.Context, calldata *BatchCallData, revision string) ([]*CallResult, error) {
	target := c.url + "/accounts/*"
	if revision != "" {
		target += "?revision=" + url.QueryEscape(revision)
	}
	body, err := c.httpPOST(ctx, target, calldata)
	if err != nil {
		return nil, fmt.Errorf("unable to request inspect clauses - %w", err)
	}

	var results []*CallResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("unable to unmarshal inspection - %w", err)
	}
	return results, nil
}

func (c *Client) httpRequest(ctx context.Context, method, url string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", resp.StatusCode, bytes.TrimSpace(responseBody), ErrNot200Status)
	}
	return responseBody, nil
}

func (c *Client) httpPOST(ctx context.Context, url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	return c.httpRequest(ctx, http.MethodPost, url, bytes.NewReader(data))
}
