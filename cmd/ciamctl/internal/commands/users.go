package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wolfeidau/ciamctl/internal/audit"
)

// UsersCmd manages users.
type UsersCmd struct {
	List   UsersListCmd   `cmd:"" help:"List users"`
	Get    UsersGetCmd    `cmd:"" help:"Get users by ID"`
	Create UsersCreateCmd `cmd:"" help:"Create a user"`
	Update UsersUpdateCmd `cmd:"" help:"Update a user"`
	Delete UsersDeleteCmd `cmd:"" help:"Delete a user"`
	Import UsersImportCmd `cmd:"" help:"Import users from file(s)"`
}

var userSpec = resourceSpec{
	singular: "user",
	plural:   "users",
	path:     "/users",
	summary: func(data map[string]any) string {
		return stringField(data, "email", "N/A")
	},
	detail: func(data map[string]any) string {
		if name := stringField(data, "name", ""); name != "" {
			return "Details: " + name
		}
		return ""
	},
}

// UsersListCmd lists users.
type UsersListCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("list users")
	return nil
}

// UsersGetCmd fetches one or more users by id.
type UsersGetCmd struct {
	IDs     []string `arg:"" help:"User ID(s)"`
	StoreID string   `name:"store-id" help:"Store ID"`
}

func (c *UsersGetCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	getByIDs(ctx, globals, rt, userSpec, c.IDs)
	return nil
}

// UsersCreateCmd creates a user.
type UsersCreateCmd struct {
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *UsersCreateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("create user")
	return nil
}

// UsersUpdateCmd updates a user.
type UsersUpdateCmd struct {
	ID      string `arg:"" help:"User ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *UsersUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("update user")
	return nil
}

// UsersDeleteCmd deletes a user.
type UsersDeleteCmd struct {
	ID      string `arg:"" help:"User ID"`
	StoreID string `name:"store-id" help:"Store ID"`
}

func (c *UsersDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	notSupported("delete user")
	return nil
}

// UsersImportCmd parses and validates user import files. The upload
// itself is not supported until the endpoint is confirmed upstream.
type UsersImportCmd struct {
	Files   []string `arg:"" help:"JSON or YAML file(s) to import"`
	StoreID string   `name:"store-id" help:"Store ID"`
}

func (c *UsersImportCmd) Run(ctx context.Context, globals *Globals) error {
	rt, err := newRuntime(globals, c.StoreID, true)
	if err != nil {
		return err
	}
	defer rt.flush()

	opStart("import users")

	var total int
	var errCount int

	for _, file := range c.Files {
		step("Parsing file: "+file, 2)

		users, err := readUserImportFile(file)
		if err != nil {
			errCount++
			step(fmt.Sprintf("✗ %v", err), 4)
			continue
		}

		step(fmt.Sprintf("Found %d user(s)", len(users)), 4)
		total += len(users)

		rt.audit.Log("import users from "+filepath.Base(file),
			&audit.RequestMeta{Body: map[string]any{"file": file}},
			&audit.ResponseMeta{Body: map[string]any{"users_count": len(users)}},
			"")
	}

	step(fmt.Sprintf("Parsed %d total user(s) from %d file(s)", total, len(c.Files)), 2)
	if total > 0 {
		step("Would import to CIAM (not yet supported)", 2)
	}

	opEnd("import users", errCount == 0)
	return nil
}

// userImportFile is the expected document shape: {type: "users", users: [...]}.
type userImportFile struct {
	Type  string           `json:"type" yaml:"type"`
	Users []map[string]any `json:"users" yaml:"users"`
}

func readUserImportFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc userImportFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	}

	if doc.Type != "users" {
		return nil, fmt.Errorf("expected type %q, got %q", "users", doc.Type)
	}

	return doc.Users, nil
}
