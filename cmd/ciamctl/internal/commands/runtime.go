package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/ciamctl/internal/audit"
	"github.com/wolfeidau/ciamctl/internal/auth"
	"github.com/wolfeidau/ciamctl/internal/client"
	"github.com/wolfeidau/ciamctl/internal/config"
	"github.com/wolfeidau/ciamctl/internal/endpoints"
)

var errStoreIDRequired = errors.New("store ID is required: provide --store-id or set a default with 'config use'")

// runtime wires the services one API-touching command needs: the audit
// logger shared by the token manager and the client, and the client
// itself. One runtime per command invocation.
type runtime struct {
	region  endpoints.Region
	env     endpoints.Environment
	storeID string

	audit  *audit.Logger
	tokens *auth.Manager
	client *client.Client
}

// newRuntime resolves the configured region/environment and builds the
// service graph. When requireStore is set, storeID falls back to the
// configured default and its absence is an error. Store-level commands
// pass requireStore=false.
func newRuntime(globals *Globals, storeID string, requireStore bool) (*runtime, error) {
	cfgStore, err := config.NewStore("")
	if err != nil {
		return nil, err
	}

	region, env, err := cfgStore.RequireRegionEnv()
	if err != nil {
		return nil, err
	}

	if requireStore {
		if storeID == "" {
			storeID = cfgStore.Load().StoreID
		}
		if storeID == "" {
			return nil, errStoreIDRequired
		}
	} else {
		storeID = ""
	}

	auditLogger := audit.New(globals.Verbose)
	tokens := auth.NewManager(auditLogger)

	apiClient, err := client.New(client.Config{
		Region:      region,
		Env:         env,
		StoreID:     storeID,
		Credentials: string(auth.KindGeneral),
		Verbose:     globals.Verbose,
	}, tokens, auditLogger)
	if err != nil {
		return nil, err
	}

	return &runtime{
		region:  region,
		env:     env,
		storeID: storeID,
		audit:   auditLogger,
		tokens:  tokens,
		client:  apiClient,
	}, nil
}

// flush writes the audit artifact for this invocation and prints its
// path. No entries means no file and no output.
func (r *runtime) flush() {
	path, err := r.audit.WriteToFile()
	if err != nil {
		log.Warn().Err(err).Msg("failed to write audit file")
		return
	}
	if path != "" {
		fmt.Printf("\nOutput written to: %s\n", path)
	}
}

// notSupported prints the placeholder for operations whose upstream
// endpoints are not confirmed yet.
func notSupported(title string, extra ...string) {
	opStart(title)
	step("Not supported at this time", 2)
	for _, line := range extra {
		step(line, 2)
	}
	opEnd(title, false)
}
