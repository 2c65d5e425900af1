package dashboard

import (
	"context"
	"strings"

	"github.com/portfolio-hub/portfolio-backend/internal/dashboard/form"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

// ProjectResource adds creation to the projects collection.
type ProjectResource interface {
	Resource[projdomain.Project]
	Create(ctx context.Context, req projdomain.CreateRequest) (string, error)
}

// Projects is the project management screen. Its filter is a category, with
// "" or "All" meaning no filter.
type Projects struct {
	*Controller[projdomain.Project]
	create ProjectResource
}

func NewProjects(res ProjectResource, notify Notifier) *Projects {
	return &Projects{
		Controller: newController[projdomain.Project](res, matchProject, notify, Labels{
			DeletedTitle: "Project Deleted",
			DeletedBody:  "The project has been successfully removed.",
			DeleteFailed: "Failed to delete project.",
		}),
		create: res,
	}
}

// Categories lists "All" then every category in the loaded projects.
func (p *Projects) Categories() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return projdomain.Categories(p.items)
}

// NewForm opens the editor for id, or an empty one when id is "".
func (p *Projects) NewForm(id string) (*form.ProjectForm, error) {
	cats := p.Categories()
	if id == "" {
		return form.New(nil, cats), nil
	}
	p.mu.Lock()
	i := p.indexLocked(id)
	var proj projdomain.Project
	if i >= 0 {
		proj = p.items[i]
	}
	p.mu.Unlock()
	if i < 0 {
		return nil, ErrUnknownEntity
	}
	return form.New(&proj, cats), nil
}

// Save creates or updates the submitted project and reloads the list. On
// failure the list is untouched and the error is returned so the form can
// stay open.
func (p *Projects) Save(ctx context.Context, sub form.Submission) (string, error) {
	key := sub.Project.ID
	if err := p.begin(key); err != nil {
		return "", err
	}

	var (
		id  = sub.Project.ID
		err error
	)
	if sub.Create {
		id, err = p.create.Create(ctx, sub.CreateRequest())
	} else {
		err = p.res.Update(ctx, id, sub.Fields())
	}
	if !p.end(key) {
		return "", ErrClosed
	}
	if err != nil {
		p.notify.Notify(Failure("Failed to save project.", err))
		return "", err
	}

	if sub.Create {
		p.notify.Notify(Success("Project Added", "Project saved successfully."))
	} else {
		p.notify.Notify(Success("Project Updated", "Project saved successfully."))
	}
	_ = p.Load(ctx)
	return id, nil
}

func matchProject(p projdomain.Project, term, filter string) bool {
	if filter != "" && filter != projdomain.AllCategories && p.Category != filter {
		return false
	}
	return containsFold(term,
		p.Title,
		p.Description,
		p.Category,
		strings.Join(p.Technologies, " "),
		strings.Join(p.Tags, " "),
	)
}
