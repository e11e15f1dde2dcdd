package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .folio.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to folio! Let's set up your site.")
	fmt.Println()

	cfg := DefaultConfig()

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Title = title

	authorPrompt := promptui.Prompt{
		Label: "Author name",
	}
	author, err := authorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}
	cfg.Author = author

	taglinePrompt := promptui.Prompt{
		Label: "Tagline (shown under the title, optional)",
	}
	tagline, err := taglinePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("tagline: %w", err)
	}
	cfg.Tagline = tagline

	dataPrompt := promptui.Prompt{
		Label:   "Data directory (posts/ and timeline.json live here)",
		Default: cfg.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dataDir

	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	orderPrompt := promptui.Select{
		Label: "Accomplishment timeline order",
		Items: []string{
			"newest — most recent accomplishments first",
			"oldest — chronological, oldest first",
		},
	}
	orderIdx, _, err := orderPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("timeline order: %w", err)
	}
	if orderIdx == 1 {
		cfg.AccomplishmentOrder = SortOldestFirst
	}

	// Seed the data layout so serve has something to render.
	postsDir := filepath.Join(cfg.DataDir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", postsDir, err)
	}

	configPath := ".folio.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Printf("Drop post files into %s and run `folio reindex` then `folio serve`.\n", postsDir)
	return cfg, nil
}
