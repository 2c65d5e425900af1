// Package form holds the admin project editor state.
package form

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

const (
	// NewCategory is the picker entry that switches to a free-text category.
	NewCategory = "New Category"

	DefaultImageURL  = "https://placehold.co/600x400.png"
	DefaultImageHint = "project image"

	MaxTagLength = 50
)

// ProjectForm is the create/edit dialog for a project. Fields hold raw input;
// list fields are comma separated.
type ProjectForm struct {
	Title        string
	Description  string
	Category     string
	NewCategory  string
	Technologies string
	Tags         string
	ImageURL     string
	ImageHint    string
	GithubLink   string
	LiveLink     string

	original   *domain.Project
	categories []string
	now        func() time.Time
}

// New opens the form. A nil project means create mode. categories are the
// known categories used by the picker.
func New(project *domain.Project, categories []string) *ProjectForm {
	f := &ProjectForm{
		ImageURL:   DefaultImageURL,
		ImageHint:  DefaultImageHint,
		categories: knownCategories(categories),
		now:        time.Now,
	}
	if project == nil {
		return f
	}

	p := *project
	f.original = &p
	f.Title = p.Title
	f.Description = p.Description
	f.Technologies = strings.Join(p.Technologies, ", ")
	f.Tags = strings.Join(p.Tags, ", ")
	if p.ImageURL != "" {
		f.ImageURL = p.ImageURL
	}
	if p.ImageHint != "" {
		f.ImageHint = p.ImageHint
	}
	f.GithubLink = deref(p.GithubLink)
	f.LiveLink = deref(p.LiveLink)

	if p.Category != "" && !f.known(p.Category) {
		f.Category = NewCategory
		f.NewCategory = p.Category
	} else {
		f.Category = p.Category
	}
	return f
}

// WithClock overrides the clock used for placeholder ids.
func (f *ProjectForm) WithClock(now func() time.Time) *ProjectForm {
	f.now = now
	return f
}

func (f *ProjectForm) IsEdit() bool { return f.original != nil }

// CreatingCategory reports whether the free-text category input is shown.
func (f *ProjectForm) CreatingCategory() bool { return f.Category == NewCategory }

// Options lists the picker entries: known categories then the sentinel.
func (f *ProjectForm) Options() []string {
	out := make([]string, 0, len(f.categories)+1)
	out = append(out, f.categories...)
	return append(out, NewCategory)
}

// SelectCategory handles a picker change. Choosing the sentinel clears the
// free-text input; anything else mirrors the choice into it.
func (f *ProjectForm) SelectCategory(value string) {
	f.Category = value
	if value == NewCategory {
		f.NewCategory = ""
		return
	}
	f.NewCategory = value
}

// ResolvedCategory is the category that would be saved.
func (f *ProjectForm) ResolvedCategory() string {
	if f.CreatingCategory() {
		return strings.TrimSpace(f.NewCategory)
	}
	return strings.TrimSpace(f.Category)
}

func (f *ProjectForm) Validate() error {
	category := f.ResolvedCategory()
	if strings.TrimSpace(f.Title) == "" || category == "" {
		return apperr.Invalid("", "Title and Category are required.")
	}
	if f.CreatingCategory() && category == NewCategory {
		return apperr.Invalid("category", "Please enter a valid name for the new category, or select an existing one.")
	}
	for _, tag := range ParseList(f.Tags) {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return apperr.Invalid("tags", "Tags should not exceed 50 characters.")
		}
	}
	return nil
}

// Submission is a validated candidate ready to be saved.
type Submission struct {
	Project domain.Project
	Create  bool
}

// Submit validates the form and builds the candidate. It does no I/O.
func (f *ProjectForm) Submit() (Submission, error) {
	if err := f.Validate(); err != nil {
		return Submission{}, err
	}

	id := strconv.FormatInt(f.now().UnixMilli(), 10)
	if f.original != nil && f.original.ID != "" {
		id = f.original.ID
	}

	return Submission{
		Create: f.original == nil,
		Project: domain.Project{
			ID:           id,
			Title:        strings.TrimSpace(f.Title),
			Description:  f.Description,
			Category:     f.ResolvedCategory(),
			Technologies: ParseList(f.Technologies),
			Tags:         ParseList(f.Tags),
			ImageURL:     f.ImageURL,
			ImageHint:    f.ImageHint,
			GithubLink:   optional(f.GithubLink),
			LiveLink:     optional(f.LiveLink),
		},
	}, nil
}

// CreateRequest is the POST body for the submission.
func (s Submission) CreateRequest() domain.CreateRequest {
	p := s.Project
	return domain.CreateRequest{
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Technologies: p.Technologies,
		Tags:         p.Tags,
		ImageURL:     p.ImageURL,
		ImageHint:    p.ImageHint,
		GithubLink:   p.GithubLink,
		LiveLink:     p.LiveLink,
	}
}

// Fields is the PATCH body for the submission. Every editable attribute is sent.
func (s Submission) Fields() map[string]any {
	p := s.Project
	return map[string]any{
		"title":        p.Title,
		"description":  p.Description,
		"category":     p.Category,
		"technologies": p.Technologies,
		"tags":         p.Tags,
		"imageUrl":     p.ImageURL,
		"imageHint":    p.ImageHint,
		"githubLink":   p.GithubLink,
		"liveLink":     p.LiveLink,
	}
}

// ParseList splits a comma-separated input into trimmed, non-empty entries,
// keeping order and duplicates.
func ParseList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (f *ProjectForm) known(category string) bool {
	for _, c := range f.categories {
		if c == category {
			return true
		}
	}
	return false
}

func knownCategories(in []string) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		if c == "" || c == domain.AllCategories || c == NewCategory {
			continue
		}
		out = append(out, c)
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
