package httpschema

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/chirino/graphql-jsonschema/errors"
	"github.com/chirino/graphql-jsonschema/schema"
	pe "github.com/pkg/errors"
)

// Client fetches the type system of a running GraphQL service.
type Client struct {
	URL           string
	HTTPClient    *http.Client
	RequestHeader http.Header
}

func NewClient(url string) *Client {
	return &Client{
		URL:           url,
		RequestHeader: http.Header{},
	}
}

// FetchIntrospection runs the introspection query against the service and returns the
// raw JSON response body.
func (client *Client) FetchIntrospection(ctx context.Context) ([]byte, error) {
	c := client.HTTPClient
	if c == nil {
		c = &http.Client{}
	}

	body, err := json.Marshal(map[string]string{"query": schema.IntrospectionQuery})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, client.URL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for name, values := range client.RequestHeader {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		return nil, pe.Wrapf(err, "fetching introspection from %s", client.URL)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return nil, errors.Errorf("invalid content type: %s", contentType)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var response struct {
		Errors []*errors.QueryError `json:"errors"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, pe.Wrap(err, "decoding introspection response")
	}
	if len(response.Errors) > 0 {
		errs := make([]error, len(response.Errors))
		for i, e := range response.Errors {
			errs[i] = e
		}
		return nil, errors.Multi(errs...)
	}
	return data, nil
}

// FetchSchema loads the input types of the service into a new schema.
func (client *Client) FetchSchema(ctx context.Context) (*schema.Schema, error) {
	data, err := client.FetchIntrospection(ctx)
	if err != nil {
		return nil, err
	}
	s := schema.New()
	if err := s.ParseIntrospection(data); err != nil {
		return nil, err
	}
	return s, nil
}
