package commands

import (
	"context"
)

// StoresCmd manages stores. Store operations address the store itself,
// so no X-Store-Id header is sent and no default store is required.
type StoresCmd struct {
	List   StoresListCmd   `cmd:"" help:"List stores"`
	Get    StoresGetCmd    `cmd:"" help:"Get stores by ID"`
	Create StoresCreateCmd `cmd:"" help:"Create a store"`
	Update StoresUpdateCmd `cmd:"" help:"Update a store"`
	Delete StoresDeleteCmd `cmd:"" help:"Delete a store"`
	Apply  StoresApplyCmd  `cmd:"" help:"Apply a store definition from file"`
	Diff   StoresDiffCmd   `cmd:"" help:"Diff a store definition against the live state"`
}

var storeSpec = resourceSpec{
	singular:        "store",
	plural:          "stores",
	path:            "/stores",
	skipStoreHeader: true,
	summary: func(data map[string]any) string {
		return stringField(data, "name", "N/A")
	},
	detail: func(data map[string]any) string {
		if typ := stringField(data, "type", ""); typ != "" {
			return "Type: " + typ
		}
		return ""
	},
}

// StoresListCmd lists stores.
type StoresListCmd struct{}

func (c *StoresListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("list stores")
	return nil
}

// StoresGetCmd fetches one or more stores by id.
type StoresGetCmd struct {
	IDs []string `arg:"" help:"Store ID(s)"`
}

func (c *StoresGetCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	getByIDs(ctx, globals, rt, storeSpec, c.IDs)
	return nil
}

// StoresCreateCmd creates a store.
type StoresCreateCmd struct{}

func (c *StoresCreateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("create store")
	return nil
}

// StoresUpdateCmd updates a store.
type StoresUpdateCmd struct {
	ID string `arg:"" help:"Store ID"`
}

func (c *StoresUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("update store")
	return nil
}

// StoresDeleteCmd deletes a store.
type StoresDeleteCmd struct {
	ID string `arg:"" help:"Store ID"`
}

func (c *StoresDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("delete store")
	return nil
}

// StoresApplyCmd applies a declarative store definition.
type StoresApplyCmd struct {
	File string `arg:"" help:"Definition file"`
}

func (c *StoresApplyCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("apply store",
		"Intended behavior: reconcile the definition in "+c.File+" against the live store")
	return nil
}

// StoresDiffCmd diffs a definition file against the live store.
type StoresDiffCmd struct {
	File string `arg:"" help:"Definition file"`
}

func (c *StoresDiffCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, "", false)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("diff store",
		"Intended behavior: show the changes applying "+c.File+" would make")
	return nil
}
