package cmd

import (
	"io"

	"artemisctl/internal/orchestrator"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newStatusCmd(f *provisionFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which install steps are already done",
		Long: `Checks the filesystem for the result of every install step and prints
a table of them. Nothing is changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			renderStatus(cmd.OutOrStdout(), orchestrator.New(orchestrator.Options{Config: cfg}).Status())
			return nil
		},
	}
}

func renderStatus(w io.Writer, checkpoints []orchestrator.Checkpoint) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("STEP"),
		text.FgHiCyan.Sprint("CHECKPOINT"),
		text.FgHiCyan.Sprint("STATE"),
		text.FgHiCyan.Sprint("PATH"),
	})

	for _, cp := range checkpoints {
		state := text.FgYellow.Sprint("missing")
		switch {
		case cp.Done:
			state = text.FgGreen.Sprint("done")
		case cp.Detail != "":
			state = text.FgYellow.Sprint(cp.Detail)
		}
		t.AppendRow(table.Row{cp.Step, cp.Name, state, cp.Path})
	}

	t.Render()
}
