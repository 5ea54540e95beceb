package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/visualvc/versionlog/pkg/store"
	"github.com/visualvc/versionlog/pkg/versions"
)

type VersionService struct {
	client *Client
}

func (c *Client) Versions() *VersionService {
	return &VersionService{client: c}
}

type VersionListOptions struct {
	Page   int
	Search string
}

func (s *VersionService) List(ctx context.Context, opts VersionListOptions) (*versions.ListResponse, error) {
	endpoint := "api/versions"
	params := url.Values{}
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if encoded := params.Encode(); encoded != "" {
		endpoint = fmt.Sprintf("%s?%s", endpoint, encoded)
	}
	var page versions.ListResponse
	if err := s.client.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *VersionService) Create(ctx context.Context, req versions.CreateRequest) (*store.VersionEntry, error) {
	var entry store.VersionEntry
	if err := s.client.do(ctx, http.MethodPost, "api/versions", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *VersionService) Delete(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("api/versions/%d", id)
	return s.client.do(ctx, http.MethodDelete, endpoint, nil, nil)
}
