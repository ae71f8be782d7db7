package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/todosync/todosync/internal/app"
	"github.com/todosync/todosync/internal/inherit"
	"github.com/todosync/todosync/internal/model"
	"github.com/todosync/todosync/internal/recurrence"
	"github.com/todosync/todosync/internal/tasksort"
)

func newRecurrenceCommand(opts *globalOptions) *cobra.Command {
	var project string
	bounds := recurrence.AnyFrequency
	cmd := &cobra.Command{
		Use:   "recurrence",
		Short: "List tasks whose estimated yearly repeat count is within bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if bounds.Min > bounds.Max {
				return fmt.Errorf("--min %d is greater than --max %d", bounds.Min, bounds.Max)
			}
			return withSession(cmd, opts, func(ctx context.Context, sess *app.Session) error {
				tasks, err := loadTasks(ctx, sess, project)
				if err != nil {
					return err
				}
				kept := recurrence.Filter(tasks, bounds)
				printTable(cmd.OutOrStdout(), append(taskHeaders, "Per year"), taskRows(kept, func(t *model.Task) string {
					if n, ok := t.Recurrence(); ok {
						return strconv.Itoa(n)
					}
					return "-"
				}))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "limit to a project (id or name)")
	cmd.Flags().IntVar(&bounds.Min, "min", bounds.Min, "minimum occurrences per year (inclusive)")
	cmd.Flags().IntVar(&bounds.Max, "max", bounds.Max, "maximum occurrences per year (inclusive)")
	return cmd
}

func newInheritCommand(opts *globalOptions) *cobra.Command {
	var (
		project   string
		apply     string
		strip     string
		delimiter string
		maxLength int
		save      bool
	)
	cmd := &cobra.Command{
		Use:   "inherit",
		Short: "Fuse each nested task's parent content into its own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyMode, err := inherit.ParseApply(apply)
			if err != nil {
				return err
			}
			stripMode, err := inherit.ParseStrip(strip)
			if err != nil {
				return err
			}
			return withSession(cmd, opts, func(ctx context.Context, sess *app.Session) error {
				tasks, err := loadTasks(ctx, sess, project)
				if err != nil {
					return err
				}
				changed := inherit.Run(tasks, sess.Engine, inherit.Options{
					Apply:            applyMode,
					Strip:            stripMode,
					Delimiter:        delimiter,
					MaxContentLength: maxLength,
				})
				printTable(cmd.OutOrStdout(), taskHeaders, taskRows(changed, nil))
				if !save {
					fmt.Fprintf(cmd.OutOrStdout(), "%d tasks would change; pass --save to send them\n", changed.Len())
					return nil
				}
				return changed.Each(func(_ int, t *model.Task) error {
					if err := t.Save(ctx); err != nil {
						return fmt.Errorf("save task %s: %w", t.ID(), err)
					}
					return nil
				})
			})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "limit to a project (id or name)")
	cmd.Flags().StringVar(&apply, "apply", string(inherit.Prepend), "where the parent goes: prepend or append")
	cmd.Flags().StringVar(&strip, "strip", string(inherit.StripNone), "trim the parent at a colon: none, pre or post")
	cmd.Flags().StringVar(&delimiter, "delimiter", inherit.DefaultDelimiter, "text between parent and child")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "skip tasks already longer than this many characters (0 = no limit)")
	cmd.Flags().BoolVar(&save, "save", false, "save the rewritten tasks")
	return cmd
}

func newSortCommand(opts *globalOptions) *cobra.Command {
	var (
		project string
		field   string
	)
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "List tasks sorted by a field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, sess *app.Session) error {
				tasks, err := loadTasks(ctx, sess, project)
				if err != nil {
					return err
				}
				name := field
				if name == "" {
					name = sess.Prefs.SortField
				}
				sorted := tasksort.Sort(tasks, name)
				printTable(cmd.OutOrStdout(), append(taskHeaders, name), taskRows(sorted, func(t *model.Task) string {
					return t.String(name)
				}))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "limit to a project (id or name)")
	cmd.Flags().StringVar(&field, "field", "", "field to sort by (default from prefs, item_order)")
	return cmd
}
