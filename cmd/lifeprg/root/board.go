package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wenci-bit/LifePRG-sub002/internal/storage"
	"github.com/wenci-bit/LifePRG-sub002/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive progression dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, storage.MainUserKey)
		},
	}
	return cmd
}
