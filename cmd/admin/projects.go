package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio-hub/portfolio-backend/internal/dashboard"
	"github.com/portfolio-hub/portfolio-backend/internal/dashboard/form"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Manage portfolio projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(),
		newProjectsSaveCmd("create", "Create a project"),
		newProjectsSaveCmd("edit <id>", "Edit a project"),
		newProjectsDeleteCmd(),
	)
	return cmd
}

func loadProjects(cmd *cobra.Command) (*dashboard.Projects, error) {
	p := dashboard.NewProjects(api.Projects(), notifier(cmd))
	if err := p.Load(cmd.Context()); err != nil {
		p.Close()
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	return p, nil
}

func newProjectsListCmd() *cobra.Command {
	var search, category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProjects(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			p.SetSearch(search)
			p.SetFilter(category)
			visible := p.Visible()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderProjectTable(visible))
			fmt.Fprintf(out, "Showing %d of %d projects\n", len(visible), len(p.State().Items))
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "search title, description, category, technologies and tags")
	cmd.Flags().StringVar(&category, "category", projdomain.AllCategories, "only show this category")
	return cmd
}

// projectFlags maps command-line flags onto form fields. Only flags the user
// set are applied, so edit keeps the current values for the rest.
type projectFlags struct {
	title, description, category, newCategory string
	technologies, tags                        string
	imageURL, imageHint, github, live         string
}

func (pf *projectFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pf.title, "title", "", "project title")
	f.StringVar(&pf.description, "description", "", "project description")
	f.StringVar(&pf.category, "category", "", "existing category")
	f.StringVar(&pf.newCategory, "new-category", "", "create and use a new category")
	f.StringVar(&pf.technologies, "technologies", "", "comma-separated technologies")
	f.StringVar(&pf.tags, "tags", "", "comma-separated tags")
	f.StringVar(&pf.imageURL, "image-url", "", "image URL")
	f.StringVar(&pf.imageHint, "image-hint", "", "image hint")
	f.StringVar(&pf.github, "github", "", "GitHub link")
	f.StringVar(&pf.live, "live", "", "live demo link")
}

func (pf *projectFlags) apply(cmd *cobra.Command, f *form.ProjectForm) {
	changed := cmd.Flags().Changed
	set := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	set("title", &f.Title, pf.title)
	set("description", &f.Description, pf.description)
	set("technologies", &f.Technologies, pf.technologies)
	set("tags", &f.Tags, pf.tags)
	set("image-url", &f.ImageURL, pf.imageURL)
	set("image-hint", &f.ImageHint, pf.imageHint)
	set("github", &f.GithubLink, pf.github)
	set("live", &f.LiveLink, pf.live)

	switch {
	case changed("new-category"):
		f.SelectCategory(form.NewCategory)
		f.NewCategory = pf.newCategory
	case changed("category"):
		f.SelectCategory(pf.category)
	}
}

func newProjectsSaveCmd(use, short string) *cobra.Command {
	var pf projectFlags
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			editing := cmd.Name() == "edit"
			if editing && len(args) != 1 {
				return fmt.Errorf("edit requires a project id")
			}
			if !editing && len(args) != 0 {
				return fmt.Errorf("create takes no arguments")
			}

			p, err := loadProjects(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			id := ""
			if editing {
				id = args[0]
			}
			f, err := p.NewForm(id)
			if err != nil {
				return err
			}
			pf.apply(cmd, f)

			sub, err := f.Submit()
			if err != nil {
				return err
			}
			saved, err := p.Save(cmd.Context(), sub)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved project %s (%s)\n", sub.Project.Title, saved)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProjects(cmd)
			if err != nil {
				return err
			}
			defer p.Close()
			return p.Delete(cmd.Context(), args[0])
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := api.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStats(s))
			return nil
		},
	}
}
