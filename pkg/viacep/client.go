// Package viacep wraps the ViaCEP address-resolution API.
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jeansstore/backend/pkg/cep"
	pkgerrors "github.com/jeansstore/backend/pkg/errors"
)

const (
	defaultBaseURL            = "https://viacep.com.br"
	errorBodyReadLimit  int64 = 1024
	defaultClientTimeout      = 10 * time.Second
)

// Address is the record returned for a resolved CEP. Field names follow
// the upstream payload (logradouro = street, bairro = neighborhood,
// localidade = city, uf = state).
type Address struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
}

// Client queries ViaCEP over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the ViaCEP base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout replaces the default HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a ViaCEP client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultClientTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// Resolve fetches the address for an 8-digit CEP. A CEP the upstream does
// not know yields a NOT_FOUND error; transport and decoding failures are
// reported as dependency errors.
func (c *Client) Resolve(ctx context.Context, code string) (*Address, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "viacep client not configured")
	}
	clean := cep.Normalize(code)
	if !cep.Valid(clean) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "CEP deve ter 8 dígitos")
	}

	url := fmt.Sprintf("%s/ws/%s/json/", strings.TrimRight(c.baseURL, "/"), clean)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build cep lookup request")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute cep lookup request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg))), "cep lookup request failed")
	}

	var apiResp struct {
		Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cep lookup response")
	}

	if apiResp.Erro {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "CEP não encontrado")
	}

	addr := apiResp.Address
	return &addr, nil
}
