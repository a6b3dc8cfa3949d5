package postgrest

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config contém os parâmetros de acesso à API REST do backend hospedado
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client encapsula o cliente resty configurado para a API PostgREST
type Client struct {
	http *resty.Client
}

// NewClient cria uma nova instância de Client
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.URL, "/")
	if !strings.HasSuffix(baseURL, "/rest/v1") {
		baseURL += "/rest/v1"
	}

	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		http.SetAuthToken(cfg.APIKey)
	}
	if cfg.Timeout > 0 {
		http.SetTimeout(cfg.Timeout)
	}

	return &Client{http: http}
}

// Error representa o corpo de erro devolvido pelo PostgREST
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("postgrest: status %d", e.Status)
	if e.Code != "" {
		msg += " code " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func responseError(resp *resty.Response) error {
	apiErr, ok := resp.Error().(*Error)
	if !ok || apiErr == nil {
		apiErr = &Error{Message: strings.TrimSpace(string(resp.Body()))}
	}
	apiErr.Status = resp.StatusCode()
	return apiErr
}
