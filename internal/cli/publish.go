package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
)

// publishCommand creates the publish command, which compiles a spec, uploads
// the artifact to the configured store and prints a signed URL.
func (c *CLI) publishCommand() *cobra.Command {
	format := pipeline.FormatSVG

	cmd := &cobra.Command{
		Use:   "publish [spec.json]",
		Short: "Compile a chart and upload it to the artifact store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			spec, err := readSpec(args[0])
			if err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newStoreRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			spin := newSpinnerWithContext(ctx, "Compiling "+args[0]+"...")
			spin.Start()
			art, err := runner.Compile(ctx, spec, format)
			if err != nil {
				spin.StopWithError(errors.UserMessage(err))
				return err
			}
			spin.Update("Uploading to " + cfg.Store.Backend + " store...")
			pub, err := runner.Publish(ctx, spec, format)
			if err != nil {
				spin.StopWithError(errors.UserMessage(err))
				return err
			}
			spin.StopWithSuccess("Published " + args[0])

			printKeyValue("Key", pub.Key)
			printKeyValue("Expires", pub.ExpiresAt.Local().Format(time.DateTime))
			printKeyValue("Cache", cacheStatus(art.CacheHit))
			printNewline()
			fmt.Fprintln(uiOut, StyleLink.Render(pub.URL))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: svg, png, pdf")
	return cmd
}

func cacheStatus(hit bool) string {
	if hit {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}
