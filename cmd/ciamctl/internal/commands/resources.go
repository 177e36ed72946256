package commands

import (
	"context"
	"fmt"

	"github.com/wolfeidau/ciamctl/internal/client"
)

// resourceSpec describes one API resource family for the shared get loop.
type resourceSpec struct {
	singular string
	plural   string
	path     string

	// skipStoreHeader is set for store-level resources, which must be
	// called without the tenant-scoping header.
	skipStoreHeader bool

	// summary picks the field shown next to a retrieved id.
	summary func(data map[string]any) string

	// detail supplies an extra line in verbose mode. Optional.
	detail func(data map[string]any) string
}

// getByIDs fetches each id independently, collecting successes and
// failures rather than aborting the batch on the first error.
func getByIDs(ctx context.Context, globals *Globals, rt *runtime, spec resourceSpec, ids []string) {
	title := "get " + spec.plural
	opStart(title)

	var retrieved int
	var errCount int

	for _, id := range ids {
		step(fmt.Sprintf("Fetching %s: %s", spec.singular, id), 2)

		// TODO: Confirm exact endpoint paths once published upstream.
		result, err := rt.client.Get(ctx, spec.path+"/"+id, &client.RequestOptions{
			SkipStoreHeader: spec.skipStoreHeader,
		})
		if err != nil {
			errCount++
			if globals.Verbose {
				step(fmt.Sprintf("Error: %v", err), 4)
			}
			continue
		}

		retrieved++
		data, _ := result.Data.(map[string]any)
		step(fmt.Sprintf("✓ Retrieved %s %s: %s", spec.singular, id, spec.summary(data)), 4)

		if globals.Verbose && spec.detail != nil {
			if line := spec.detail(data); line != "" {
				step(line, 4)
			}
		}
	}

	step(fmt.Sprintf("Retrieved %d %s(s), %d error(s)", retrieved, spec.singular, errCount), 2)
	opEnd(title, errCount == 0)
}

// stringField reads a string field from a decoded body, with a fallback
// for absent or non-object data.
func stringField(data map[string]any, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
