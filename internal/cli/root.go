package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/todosync/todosync/internal/app"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	prefsPath  string
	queue      bool
	batchSize  int
}

// NewRootCommand builds the todosync command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "todosync",
		Short: "Reconcile Todoist projects and tasks from the command line",
		Long: `todosync loads every project and task once, applies list operations
(reorder against a template, recurrence filtering, parent inheritance,
sorting) and sends the resulting changes back in batches.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/todosync/config.toml)")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/todosync/prefs.toml)")
	flags.BoolVar(&opts.queue, "queue", false, "queue saves and send them in batches when the command finishes")
	flags.IntVar(&opts.batchSize, "batch-size", 0, "commands per request (default from config, 50)")
	// glog registers -v, -logtostderr and friends on the standard flag set.
	flags.AddGoFlagSet(flag.CommandLine)

	root.AddCommand(
		newProjectsCommand(opts),
		newReorderCommand(opts),
		newRecurrenceCommand(opts),
		newInheritCommand(opts),
		newSortCommand(opts),
		newBrowseCommand(opts),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	root := NewRootCommand()
	root.Version = version
	return root.ExecuteContext(ctx)
}

// withSession opens a session, runs fn and always closes the session so
// queued commands are flushed even when fn fails part way.
func withSession(cmd *cobra.Command, opts *globalOptions, fn func(context.Context, *app.Session) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sess, err := app.Open(ctx, app.Options{
		ConfigPath: opts.configPath,
		PrefsPath:  opts.prefsPath,
		Queue:      opts.queue,
		BatchSize:  opts.batchSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		report, closeErr := sess.Close(ctx)
		if report.Batches > 0 {
			printFlush(cmd.OutOrStdout(), report.Applied(), len(report.Outcomes), report.Remaining)
		}
		err = multierr.Append(err, closeErr)
	}()
	return fn(ctx, sess)
}

func printFlush(w io.Writer, applied, sent, remaining int) {
	fmt.Fprintf(w, "flushed %d/%d commands", applied, sent)
	if remaining > 0 {
		fmt.Fprintf(w, ", %d left queued", remaining)
	}
	fmt.Fprintln(w)
	glog.V(1).Infof("flush: applied=%d sent=%d remaining=%d", applied, sent, remaining)
}
