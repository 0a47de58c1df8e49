package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"anime-tracker/core/media"
	"anime-tracker/core/reconcile"
	"anime-tracker/feature/catalog"

	"github.com/spf13/cobra"
)

// enrichOutput is the dry-run report printed by the enrich command.
type enrichOutput struct {
	Kind     string                      `json:"kind"`
	Existing *uint                       `json:"existing_id"`
	Fields   reconcile.Fields            `json:"fields"`
	Genres   []string                    `json:"genres"`
	Sources  map[string]reconcile.Source `json:"sources"`
}

// enrichCmd represents the enrich command
var enrichCmd = &cobra.Command{
	Use:   "enrich <series|movie> <title>",
	Short: "Show what enrichment would store for a title",
	Long: `Runs the create-time reconciliation for a title against the live providers and
prints the merged record with the source of every field. Nothing is stored unless --save is set.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := media.ParseKind(args[0])
		if err != nil {
			return err
		}
		name := strings.Join(args[1:], " ")

		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		svc := a.catalogService()
		ctx := cmd.Context()

		if save, _ := cmd.Flags().GetBool("save"); save {
			in := catalog.TitleInput{Name: &name}
			if kind == media.KindMovie {
				in = catalog.TitleInput{MovieName: &name}
			}
			t, err := svc.Create(ctx, kind, in)
			if err != nil {
				return err
			}
			return printJSON(catalog.Serialize(t))
		}

		res, existing, err := svc.Preview(ctx, kind, name)
		if err != nil {
			return err
		}

		out := enrichOutput{
			Kind:    kind.String(),
			Fields:  res.Fields,
			Genres:  make([]string, 0, len(res.Genres)),
			Sources: res.Sources,
		}
		if existing != nil {
			out.Existing = &existing.ID
		}
		for _, g := range res.Genres {
			out.Genres = append(out.Genres, g.Name)
		}
		return printJSON(out)
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	return nil
}

func init() {
	enrichCmd.Flags().Bool("save", false, "store the title instead of printing a dry run")
	RootCmd.AddCommand(enrichCmd)
}
