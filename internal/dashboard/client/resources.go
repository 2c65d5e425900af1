package client

import (
	"context"
	"net/http"
	"net/url"

	msgdomain "github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

// MessagesAPI is the /api/messages resource.
type MessagesAPI struct{ c *Client }

func (c *Client) Messages() *MessagesAPI { return &MessagesAPI{c: c} }

func (m *MessagesAPI) List(ctx context.Context) ([]msgdomain.Message, error) {
	resp, err := m.c.doJSON(ctx, http.MethodGet, "/api/messages", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[msgdomain.Message](resp)
}

func (m *MessagesAPI) Create(ctx context.Context, req msgdomain.CreateRequest) (string, error) {
	return create(ctx, m.c, "/api/messages", req)
}

func (m *MessagesAPI) Update(ctx context.Context, id string, fields map[string]any) error {
	resp, err := m.c.doJSON(ctx, http.MethodPatch, "/api/messages/"+url.PathEscape(id), fields)
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func (m *MessagesAPI) Delete(ctx context.Context, id string) error {
	resp, err := m.c.doJSON(ctx, http.MethodDelete, "/api/messages/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return expectOK(resp)
}

// ProjectsAPI is the /api/projects resource.
type ProjectsAPI struct{ c *Client }

func (c *Client) Projects() *ProjectsAPI { return &ProjectsAPI{c: c} }

func (p *ProjectsAPI) List(ctx context.Context) ([]projdomain.Project, error) {
	return p.ListByCategory(ctx, "")
}

func (p *ProjectsAPI) ListByCategory(ctx context.Context, category string) ([]projdomain.Project, error) {
	path := "/api/projects"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	resp, err := p.c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[projdomain.Project](resp)
}

func (p *ProjectsAPI) Categories(ctx context.Context) ([]string, error) {
	resp, err := p.c.doJSON(ctx, http.MethodGet, "/api/projects/categories", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[string](resp)
}

func (p *ProjectsAPI) Create(ctx context.Context, req projdomain.CreateRequest) (string, error) {
	return create(ctx, p.c, "/api/projects", req)
}

func (p *ProjectsAPI) Update(ctx context.Context, id string, fields map[string]any) error {
	resp, err := p.c.doJSON(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(id), fields)
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func (p *ProjectsAPI) Delete(ctx context.Context, id string) error {
	resp, err := p.c.doJSON(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return expectOK(resp)
}

func create(ctx context.Context, c *Client, path string, body any) (string, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}
	out, err := decodeResponse[struct {
		ID string `json:"id"`
	}](resp)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}
