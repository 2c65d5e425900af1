package domain

import (
	"strings"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
	"github.com/portfolio-hub/portfolio-backend/internal/resource"
)

// Collection is the store collection holding portfolio projects.
const Collection = "projects"

// AllCategories is the pseudo-category that disables category filtering.
const AllCategories = "All"

// Project is a portfolio entry shown on the public site.
type Project struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"imageUrl"`
	ImageHint    string   `json:"imageHint"`
	GithubLink   *string  `json:"githubLink"`
	LiveLink     *string  `json:"liveLink"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt,omitempty"`
}

func (p Project) EntityID() string { return p.ID }

// FromDocument decodes a stored project. Missing lists decode as empty slices
// and empty links as nil.
func FromDocument(d docstore.Document) Project {
	return Project{
		ID:           d.ID,
		Title:        resource.String(d.Fields, "title"),
		Description:  resource.String(d.Fields, "description"),
		Category:     resource.String(d.Fields, "category"),
		Technologies: resource.Strings(d.Fields, "technologies"),
		Tags:         resource.Strings(d.Fields, "tags"),
		ImageURL:     resource.String(d.Fields, "imageUrl"),
		ImageHint:    resource.String(d.Fields, "imageHint"),
		GithubLink:   resource.OptionalString(d.Fields, "githubLink"),
		LiveLink:     resource.OptionalString(d.Fields, "liveLink"),
		CreatedAt:    resource.String(d.Fields, resource.FieldCreatedAt),
		UpdatedAt:    resource.String(d.Fields, resource.FieldUpdatedAt),
	}
}

// CreateRequest is the body of a new project.
type CreateRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Technologies []string `json:"technologies"`
	Tags         []string `json:"tags"`
	ImageURL     string   `json:"imageUrl"`
	ImageHint    string   `json:"imageHint"`
	GithubLink   *string  `json:"githubLink"`
	LiveLink     *string  `json:"liveLink"`
}

func (r *CreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
	r.ImageHint = strings.TrimSpace(r.ImageHint)
	r.GithubLink = link(r.GithubLink)
	r.LiveLink = link(r.LiveLink)
}

func (r CreateRequest) Validate() error {
	if r.Title == "" || r.Category == "" {
		return apperr.Invalid("", "Title and category are required")
	}
	return nil
}

// Fields is the stored document. Optional attributes get their defaults.
func (r CreateRequest) Fields() map[string]any {
	return map[string]any{
		"title":        r.Title,
		"description":  r.Description,
		"category":     r.Category,
		"technologies": nonNil(r.Technologies),
		"tags":         nonNil(r.Tags),
		"imageUrl":     r.ImageURL,
		"imageHint":    r.ImageHint,
		"githubLink":   linkValue(r.GithubLink),
		"liveLink":     linkValue(r.LiveLink),
	}
}

// Patch is a partial project update. Links use a double pointer so a JSON
// null can clear a link while an absent key leaves it alone.
type Patch struct {
	Title        *string
	Description  *string
	Category     *string
	Technologies *[]string
	Tags         *[]string
	ImageURL     *string
	ImageHint    *string
	GithubLink   **string
	LiveLink     **string
}

// ParsePatch builds a Patch from a decoded JSON object, rejecting values of the
// wrong type.
func ParsePatch(raw map[string]any) (Patch, error) {
	var p Patch

	for _, f := range []struct {
		key string
		dst **string
	}{
		{"title", &p.Title},
		{"description", &p.Description},
		{"category", &p.Category},
		{"imageUrl", &p.ImageURL},
		{"imageHint", &p.ImageHint},
	} {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		s, isString := v.(string)
		if !isString {
			return Patch{}, apperr.Invalid(f.key, "must be a string")
		}
		s = strings.TrimSpace(s)
		*f.dst = &s
	}

	for _, f := range []struct {
		key string
		dst **[]string
	}{
		{"technologies", &p.Technologies},
		{"tags", &p.Tags},
	} {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		list, err := stringList(f.key, v)
		if err != nil {
			return Patch{}, err
		}
		*f.dst = &list
	}

	for _, f := range []struct {
		key string
		dst ***string
	}{
		{"githubLink", &p.GithubLink},
		{"liveLink", &p.LiveLink},
	} {
		v, ok := raw[f.key]
		if !ok {
			continue
		}
		var l *string
		switch t := v.(type) {
		case nil:
		case string:
			l = link(&t)
		default:
			return Patch{}, apperr.Invalid(f.key, "must be a string or null")
		}
		*f.dst = &l
	}
	return p, nil
}

func (p Patch) Validate() error {
	empty := p == Patch{}
	if empty {
		return apperr.Invalid("", "No fields to update.")
	}
	if p.Title != nil && *p.Title == "" {
		return apperr.Invalid("title", "Title cannot be empty.")
	}
	if p.Category != nil && *p.Category == "" {
		return apperr.Invalid("category", "Category cannot be empty.")
	}
	return nil
}

// Fields holds only the supplied attributes.
func (p Patch) Fields() map[string]any {
	f := map[string]any{}
	set := func(key string, v *string) {
		if v != nil {
			f[key] = *v
		}
	}
	set("title", p.Title)
	set("description", p.Description)
	set("category", p.Category)
	set("imageUrl", p.ImageURL)
	set("imageHint", p.ImageHint)
	if p.Technologies != nil {
		f["technologies"] = nonNil(*p.Technologies)
	}
	if p.Tags != nil {
		f["tags"] = nonNil(*p.Tags)
	}
	if p.GithubLink != nil {
		f["githubLink"] = linkValue(*p.GithubLink)
	}
	if p.LiveLink != nil {
		f["liveLink"] = linkValue(*p.LiveLink)
	}
	return f
}

// FilterByCategory keeps projects whose category equals category exactly.
// An empty category or AllCategories returns items unchanged.
func FilterByCategory(items []Project, category string) []Project {
	if category == "" || category == AllCategories {
		return items
	}
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns AllCategories followed by each distinct category in
// first-seen order.
func Categories(items []Project) []string {
	out := []string{AllCategories}
	seen := map[string]bool{AllCategories: true}
	for _, p := range items {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func stringList(key string, v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, apperr.Invalid(key, "must be a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	case []string:
		return append([]string{}, t...), nil
	default:
		return nil, apperr.Invalid(key, "must be a list of strings")
	}
}

func link(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func linkValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
