package commands

import (
	"context"
)

// GroupsCmd manages groups.
type GroupsCmd struct {
	List   GroupsListCmd   `cmd:"" help:"List groups"`
	Get    GroupsGetCmd    `cmd:"" help:"Get groups by ID"`
	Create GroupsCreateCmd `cmd:"" help:"Create a group"`
	Update GroupsUpdateCmd `cmd:"" help:"Update a group"`
	Delete GroupsDeleteCmd `cmd:"" help:"Delete a group"`
}

var groupSpec = resourceSpec{
	singular: "group",
	plural:   "groups",
	path:     "/groups",
	summary: func(data map[string]any) string {
		return stringField(data, "name", "N/A")
	},
	detail: func(data map[string]any) string {
		if desc := stringField(data, "description", ""); desc != "" {
			return "Description: " + desc
		}
		return ""
	},
}

// GroupsListCmd lists groups.
type GroupsListCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *GroupsListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("list groups")
	return nil
}

// GroupsGetCmd fetches one or more groups by id.
type GroupsGetCmd struct {
	IDs     []string `arg:"" help:"Group ID(s)"`
	StoreID string   `name:"store-id" help:"Store ID"`
}

func (c *GroupsGetCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	getByIDs(ctx, globals, rt, groupSpec, c.IDs)
	return nil
}

// GroupsCreateCmd creates a group.
type GroupsCreateCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *GroupsCreateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("create group")
	return nil
}

// GroupsUpdateCmd updates a group.
type GroupsUpdateCmd struct {
	ID      string `arg:"" help:"Group ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *GroupsUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("update group")
	return nil
}

// GroupsDeleteCmd deletes a group.
type GroupsDeleteCmd struct {
	ID      string `arg:"" help:"Group ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *GroupsDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("delete group")
	return nil
}
