package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

func newPingCommand(st *state, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured backend is reachable.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := openBackend(ctx, st.settings.Backend, st.log)
			if err != nil {
				return err
			}
			defer b.close()

			start := time.Now()
			if err := b.health(ctx); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout, "%s: ok (%s)\n", st.settings.Backend, time.Since(start).Round(time.Millisecond))
			return err
		},
	}
}
