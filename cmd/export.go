package cmd

import (
	"fmt"

	"anime-tracker/core/media"
	"anime-tracker/feature/export"

	"github.com/spf13/cobra"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <series|movie>",
	Short: "Write a JSON snapshot of the catalog to object storage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := media.ParseKind(args[0])
		if err != nil {
			return err
		}

		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		client := a.storageClient()
		if client == nil {
			return fmt.Errorf("object storage is not configured (set STORAGE_ENABLED=true)")
		}

		svc := export.NewService(client, a.cfg.Storage, a.catalogService(), a.logger)

		if list, _ := cmd.Flags().GetBool("list"); list {
			objects, err := svc.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return printJSON(objects)
		}

		res, err := svc.Export(cmd.Context(), kind)
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

func init() {
	exportCmd.Flags().Bool("list", false, "list stored snapshots instead of writing one")
	RootCmd.AddCommand(exportCmd)
}
