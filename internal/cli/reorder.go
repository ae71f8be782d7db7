package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/todosync/todosync/internal/app"
	"github.com/todosync/todosync/internal/reorder"
	"github.com/todosync/todosync/internal/template"
)

func newReorderCommand(opts *globalOptions) *cobra.Command {
	var (
		templatePath string
		unknown      string
		pinned       string
	)
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Align project order, indent and color with a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, sess *app.Session) error {
				path := templatePath
				if path == "" {
					path = sess.Config.Template
				}
				if path == "" {
					return fmt.Errorf("no template given: pass --template or set template in the config")
				}
				tmpl, err := template.Load(path)
				if err != nil {
					return err
				}

				modeName := unknown
				if !cmd.Flags().Changed("unknown") {
					modeName = sess.Prefs.UnknownMode
				}
				mode, err := reorder.ParseUnknownMode(modeName)
				if err != nil {
					return err
				}

				live, err := sess.Engine.Projects(ctx)
				if err != nil {
					return err
				}
				result, err := reorder.Sync(ctx, live, tmpl, reorder.Options{Unknown: mode, PinnedName: pinned})
				printTable(cmd.OutOrStdout(), projectHeaders, projectRows(result))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&templatePath, "template", "", "template file (default from config)")
	cmd.Flags().StringVar(&unknown, "unknown", "ignore", "placement of projects missing from the template: top, bottom or ignore")
	cmd.Flags().StringVar(&pinned, "pinned", reorder.DefaultPinnedName, "project that keeps its place at the top")
	return cmd
}
