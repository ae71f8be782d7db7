package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/todosync/todosync/internal/app"
	"github.com/todosync/todosync/internal/model"
)

func newProjectsCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects in their current order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, sess *app.Session) error {
				projects, err := sess.Engine.Projects(ctx)
				if err != nil {
					return err
				}
				sorted := projects.SortStable(func(a, b *model.Project) bool { return a.Order() < b.Order() })
				printTable(cmd.OutOrStdout(), projectHeaders, projectRows(sorted))
				return nil
			})
		},
	}
}

// loadTasks returns every task, or only those of projectRef when it is set.
func loadTasks(ctx context.Context, sess *app.Session, projectRef string) (model.Tasks, error) {
	tasks, err := sess.Engine.Tasks(ctx)
	if err != nil {
		return model.Tasks{}, err
	}
	if projectRef == "" {
		return tasks, nil
	}
	return model.FilterByProject(tasks, projectRef)
}
