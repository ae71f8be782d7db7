package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/todosync/todosync/internal/app"
	"github.com/todosync/todosync/internal/recurrence"
	"github.com/todosync/todosync/internal/ui"
)

func newBrowseCommand(opts *globalOptions) *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse tasks in an interactive table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, sess *app.Session) error {
				tasks, err := loadTasks(ctx, sess, project)
				if err != nil {
					return err
				}
				// Annotate recurrence counts for the repeat column.
				recurrence.Filter(tasks, recurrence.AnyFrequency)
				return ui.Run(ctx, ui.Options{
					Tasks:     tasks,
					Title:     project,
					Prefs:     sess.Prefs,
					PrefsPath: sess.PrefsPath,
				})
			})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "limit to a project (id or name)")
	return cmd
}
