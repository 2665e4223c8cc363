package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/komotile/internal/config"
)

// runConfigure walks a first-run wizard for the two choices that most affect
// day-to-day tiling: the default layout and one float-on-open rule. It
// loads whatever configuration already exists so re-running it only tweaks
// these fields rather than resetting the file.
func runConfigure() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	layoutOptions := make([]huh.Option[string], 0, len(config.BuiltinLayoutNames()))
	for _, name := range config.BuiltinLayoutNames() {
		layoutOptions = append(layoutOptions, huh.NewOption(name, name))
	}

	var floatClass string
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default layout").
				Description("Used for any workspace that doesn't override it").
				Options(layoutOptions...).
				Value(&cfg.DefaultLayout),
			huh.NewInput().
				Title("Always-float window class (optional)").
				Description("e.g. a launcher or picture-in-picture player; leave blank to skip").
				Value(&floatClass),
			huh.NewConfirm().
				Title("Save this configuration?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration wizard cancelled: %v\n", err)
		return 1
	}

	if !confirmed {
		fmt.Println("not saved")
		return 0
	}

	if floatClass != "" {
		cfg.ApplicationRules = append(cfg.ApplicationRules, config.ApplicationRule{
			Name:     "configure-float-" + floatClass,
			Matches:  []config.MatchRule{{Kind: config.MatchClass, Value: floatClass}},
			Floating: true,
		})
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to save configuration: %v\n", err)
		return 1
	}

	path, _ := config.DefaultConfigPath()
	fmt.Printf("saved to %s\n", path)
	return 0
}
