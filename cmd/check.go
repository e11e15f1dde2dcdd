package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kelhaddad/folio/internal/config"
	"github.com/kelhaddad/folio/internal/post"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that every referenced image loads",
	Long:  `Probes each banner and gallery image referenced by the posts. Images that fail to load within the timeout are reported; the command exits non-zero when any fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		prober, closeCache, err := buildProber(cfg)
		if err != nil {
			return err
		}
		defer closeCache()

		ctx := cmd.Context()
		loader := &post.Loader{Dir: cfg.DataDir, MaxConcurrency: cfg.MaxConcurrency}
		posts := loader.Load(ctx)
		if len(posts) == 0 {
			fmt.Println("No posts found, nothing to check.")
			return nil
		}

		type ref struct {
			postID string
			src    string
		}
		var refs []ref
		for _, p := range posts {
			if p.Image != "" {
				refs = append(refs, ref{p.ID, p.Image})
			}
			for _, g := range p.Gallery {
				if g.Src != "" {
					refs = append(refs, ref{p.ID, g.Src})
				}
			}
		}
		if len(refs) == 0 {
			fmt.Println("No images referenced, nothing to check.")
			return nil
		}

		bar := progressbar.Default(int64(len(refs)), "probing images")

		var failed []ref
		start := time.Now()
		for _, r := range refs {
			if !prober.Verify(ctx, r.src) {
				failed = append(failed, r)
			}
			bar.Add(1)
		}

		fmt.Printf("\nChecked %d images in %s\n", len(refs), time.Since(start).Round(time.Millisecond))
		if len(failed) == 0 {
			fmt.Println("All images load.")
			return nil
		}

		fmt.Printf("%d failed:\n", len(failed))
		for _, r := range failed {
			fmt.Printf("  %s: %s\n", r.postID, r.src)
		}
		os.Exit(1)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
