package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/horizon/internal/export"
	"github.com/dusk-indust/horizon/internal/horizon"
)

// viewFlags select the levels a view covers. Unset flags fall back to the
// configured limits.
type viewFlags struct {
	Ancestors   int
	Descendants int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Ancestors, "ancestors", 0, "ancestor levels to include (default from config)")
	cmd.Flags().IntVar(&f.Descendants, "descendants", 0, "descendant levels to include (default from config)")
}

func (f *viewFlags) limits(cmd *cobra.Command, ix *horizon.Index[Key]) (horizon.Limits, error) {
	limits := ix.Limits()
	if cmd.Flags().Changed("ancestors") {
		if f.Ancestors < 0 {
			return limits, fmt.Errorf("--ancestors must not be negative")
		}
		limits.MaxAncestorLevel = f.Ancestors
	}
	if cmd.Flags().Changed("descendants") {
		if f.Descendants < 0 {
			return limits, fmt.Errorf("--descendants must not be negative")
		}
		limits.MaxDescendantLevel = f.Descendants
	}
	return limits, nil
}

// buildView resolves the center argument and computes its view.
func (a *app) buildView(cmd *cobra.Command, arg string, vf *viewFlags) (*horizon.View[Key], error) {
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	ix, err := a.loadIndex()
	if err != nil {
		return nil, err
	}
	limits, err := vf.limits(cmd, ix)
	if err != nil {
		return nil, err
	}
	v, err := ix.ViewWithLimits(id, limits)
	if err != nil {
		return nil, err
	}
	if len(v.Truncated) > 0 {
		a.logger.Debug("view truncated", "center", id, "boundary", v.Truncated)
	}
	return v, nil
}

func newViewCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Print the nodes and edges around a record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.buildView(cmd, args[0], &vf)
			if err != nil {
				return err
			}
			return export.WriteJSON(a.stdout, v, pretty)
		},
	}
	vf.register(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}

func newDiagramCmd(a *app) *cobra.Command {
	var (
		vf     viewFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "diagram <id>",
		Short: "Render the view around a record as a Mermaid or DOT graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var render func(*horizon.View[Key]) string
			switch format {
			case "mermaid":
				render = export.GenerateMermaid[Key]
			case "dot":
				render = export.GenerateDOT[Key]
			default:
				return fmt.Errorf("unknown diagram format %q (want mermaid or dot)", format)
			}
			v, err := a.buildView(cmd, args[0], &vf)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.stdout, render(v))
			return err
		},
	}
	vf.register(cmd)
	cmd.Flags().StringVar(&format, "format", "mermaid", "diagram format: mermaid or dot")
	return cmd
}

func newChildrenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "children <id>",
		Short: "Print the direct children of a record as a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.loadIndex()
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, ix.Children(id))
		},
	}
}

type parentOutput struct {
	ID       Key  `json:"id"`
	ParentID *Key `json:"parent_id"`
}

func newParentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parent <id>",
		Short: "Print the parent key of a record (null for roots)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.loadIndex()
			if err != nil {
				return err
			}
			parent, ok, err := ix.Parent(id)
			if err != nil {
				return err
			}
			out := parentOutput{ID: id}
			if ok {
				out.ParentID = &parent
			}
			return writeJSON(a.stdout, out)
		},
	}
}

type countOutput struct {
	ID    Key `json:"id"`
	Count int `json:"count"`
}

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count <id>",
		Short: "Print the number of direct children of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ix, err := a.loadIndex()
			if err != nil {
				return err
			}
			return writeJSON(a.stdout, countOutput{ID: id, Count: ix.CountChildren(id)})
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarise the indexed forest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ix, err := a.loadIndex()
			if err != nil {
				return err
			}
			st := ix.Stats()
			limits := ix.Limits()
			fmt.Fprintf(a.stdout, "Records:  %d\n", st.Records)
			fmt.Fprintf(a.stdout, "Roots:    %d\n", st.Roots)
			fmt.Fprintf(a.stdout, "Orphans:  %d\n", st.Orphans)
			fmt.Fprintf(a.stdout, "Leaves:   %d\n", st.Leaves)
			fmt.Fprintf(a.stdout, "Levels:   %d up, %d down\n", limits.MaxAncestorLevel, limits.MaxDescendantLevel)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
