package commands

import (
	"context"
)

// OrgsCmd manages organizations.
type OrgsCmd struct {
	List   OrgsListCmd   `cmd:"" help:"List organizations"`
	Get    OrgsGetCmd    `cmd:"" help:"Get organizations by ID"`
	Create OrgsCreateCmd `cmd:"" help:"Create an organization"`
	Update OrgsUpdateCmd `cmd:"" help:"Update an organization"`
	Delete OrgsDeleteCmd `cmd:"" help:"Delete an organization"`
	Apply  OrgsApplyCmd  `cmd:"" help:"Apply an organization definition from file"`
	Diff   OrgsDiffCmd   `cmd:"" help:"Diff an organization definition against the live state"`
}

var orgSpec = resourceSpec{
	singular: "organization",
	plural:   "organizations",
	path:     "/organizations",
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

// OrgsListCmd lists organizations.
type OrgsListCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *OrgsListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("list organizations")
	return nil
}

// OrgsGetCmd fetches one or more organizations by id.
type OrgsGetCmd struct {
	IDs     []string `arg:"" help:"Organization ID(s)"`
	StoreID string   `name:"store-id" help:"Store ID"`
}

func (c *OrgsGetCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	getByIDs(ctx, globals, rt, orgSpec, c.IDs)
	return nil
}

// OrgsCreateCmd creates an organization.
type OrgsCreateCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *OrgsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("create organization")
	return nil
}

// OrgsUpdateCmd updates an organization.
type OrgsUpdateCmd struct {
	ID      string `arg:"" help:"Organization ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *OrgsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("update organization")
	return nil
}

// OrgsDeleteCmd deletes an organization.
type OrgsDeleteCmd struct {
	ID      string `arg:"" help:"Organization ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *OrgsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("delete organization")
	return nil
}

// OrgsApplyCmd applies a declarative organization definition.
type OrgsApplyCmd struct {
	File    string `arg:"" help:"Definition file"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *OrgsApplyCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("apply organization",
		"Intended behavior: reconcile the definition in "+c.File+" against the live organization")
	return nil
}

// OrgsDiffCmd diffs a definition file against the live organization.
type OrgsDiffCmd struct {
	File    string `arg:"" help:"Definition file"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *OrgsDiffCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("diff organization",
		"Intended behavior: show the changes applying "+c.File+" would make")
	return nil
}
