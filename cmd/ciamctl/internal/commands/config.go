package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/wolfeidau/ciamctl/internal/config"
	"github.com/wolfeidau/ciamctl/internal/endpoints"
)

// ConfigCmd manages the persisted region/environment/store selection.
type ConfigCmd struct {
	Use  ConfigUseCmd  `cmd:"" help:"Set current region/environment/store"`
	Get  ConfigGetCmd  `cmd:"" help:"Show current configuration"`
	List ConfigListCmd `cmd:"" help:"List valid regions/environments and current config"`
}

// ConfigUseCmd sets configuration values, either via a region-env
// shorthand (e.g. "us-qa") or explicit flags.
type ConfigUseCmd struct {
	Shorthand string `arg:"" optional:"" help:"Shorthand format: \"us-qa\" (region-env)"`
	Region    string `help:"Region (us, uk, can, anz)"`
	Env       string `help:"Environment (dev, qa, uat, prod)"`
	StoreID   string `name:"store-id" help:"Default store ID"`
}

func (c *ConfigUseCmd) Run(ctx context.Context, globals *Globals) error {
	region := c.Region
	env := c.Env

	if c.Shorthand != "" {
		parts := strings.SplitN(c.Shorthand, "-", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid shorthand %q: use 'region-env' (e.g. 'us-qa')", c.Shorthand)
		}
		region, env = parts[0], parts[1]
	}

	if region == "" || env == "" {
		return fmt.Errorf("both region and environment are required")
	}

	store, err := config.NewStore("")
	if err != nil {
		return err
	}

	if _, err := store.Set(region, env, c.StoreID); err != nil {
		return err
	}

	opStart("set config")
	step("Region: "+region, 2)
	step("Environment: "+env, 2)
	if c.StoreID != "" {
		step("Store ID: "+c.StoreID, 2)
	}
	opEnd("set config", true)

	return nil
}

// ConfigGetCmd prints the current configuration.
type ConfigGetCmd struct{}

func (c *ConfigGetCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := config.NewStore("")
	if err != nil {
		return err
	}

	printSettings(store.Load())
	return nil
}

// ConfigListCmd prints the valid option sets and the current configuration.
type ConfigListCmd struct{}

func (c *ConfigListCmd) Run(ctx context.Context, globals *Globals) error {
	store, err := config.NewStore("")
	if err != nil {
		return err
	}

	regions := make([]string, 0, 4)
	for _, r := range endpoints.Regions() {
		regions = append(regions, string(r))
	}
	envs := make([]string, 0, 4)
	for _, e := range endpoints.Environments() {
		envs = append(envs, string(e))
	}

	fmt.Println("Valid Regions: " + strings.Join(regions, ", "))
	fmt.Println("Valid Envs:    " + strings.Join(envs, ", "))
	fmt.Println()
	printSettings(store.Load())

	return nil
}

func printSettings(settings config.Settings) {
	orNotSet := func(v string) string {
		if v == "" {
			return "(not set)"
		}
		return v
	}

	fmt.Println("Current Configuration:")
	fmt.Printf("  Region:   %s\n", orNotSet(settings.Region))
	fmt.Printf("  Env:      %s\n", orNotSet(settings.Env))
	fmt.Printf("  Store ID: %s\n", orNotSet(settings.StoreID))
}
