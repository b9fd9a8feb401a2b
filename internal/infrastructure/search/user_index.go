package search

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-hris/internal/application"
	"github.com/oksasatya/go-hris/internal/domain/entity"
)

// NewClient creates an Elasticsearch client with bounded dial and header timeouts and optional basic auth.
func NewClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	}
	return elasticsearch.NewClient(cfg)
}

type userDoc struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	Name             string  `json:"name"`
	RoleID           int64   `json:"role_id"`
	OrganizationID   int64   `json:"organization_id"`
	RoleName         *string `json:"role_name,omitempty"`
	OrganizationName *string `json:"organization_name,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

func toDoc(u *entity.UserDetail) userDoc {
	return userDoc{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		RoleID:           u.RoleID,
		OrganizationID:   u.OrganizationID,
		RoleName:         u.RoleName,
		OrganizationName: u.OrganizationName,
		CreatedAt:        u.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (d userDoc) detail() entity.UserDetail {
	out := entity.UserDetail{
		ID:               d.ID,
		Email:            d.Email,
		Name:             d.Name,
		RoleID:           d.RoleID,
		OrganizationID:   d.OrganizationID,
		RoleName:         d.RoleName,
		OrganizationName: d.OrganizationName,
	}
	if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
		out.CreatedAt = t
	}
	return out
}

// UserIndex mirrors directory rows into an Elasticsearch index keyed by user id.
type UserIndex struct {
	es      *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewUserIndex(es *elasticsearch.Client, index string, timeout time.Duration) *UserIndex {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &UserIndex{es: es, index: index, timeout: timeout}
}

func (x *UserIndex) Index(ctx context.Context, u *entity.UserDetail) error {
	b, err := json.Marshal(toDoc(u))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Remove deletes the document; a missing document is not an error.
func (x *UserIndex) Remove(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	req := esapi.DeleteRequest{Index: x.index, DocumentID: strconv.FormatInt(id, 10)}
	res, err := req.Do(ctx, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source userDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a multi_match over email (boosted) and name.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]entity.UserDetail, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, x.timeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(ctx),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusNotFound {
		return []entity.UserDetail{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	out := make([]entity.UserDetail, 0, len(body.Hits.Hits))
	for _, h := range body.Hits.Hits {
		out = append(out, h.Source.detail())
	}
	return out, nil
}

var _ application.UserIndex = (*UserIndex)(nil)
