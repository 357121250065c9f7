package ruleset

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ruleset-combiner/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// PruneAction is one planned removal of a published object.
type PruneAction struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// PrunePlan lists the published objects that no longer belong to the combined ruleset.
type PrunePlan struct {
	Kept    int           `json:"kept"`
	Actions []PruneAction `json:"actions"`
}

// PruneOptions guard ApplyPrune.
type PruneOptions struct {
	// DryRun prevents any removal.
	DryRun bool
	// Confirmed must be set for removals to run.
	Confirmed bool
}

// PlanPrune compares the objects below prefix with the names just published and plans the
// removal of every other object. Folder placeholders are kept. It does not remove anything.
func PlanPrune(ctx context.Context, client storage.Client, bucket, prefix string, published []string) (*PrunePlan, error) {
	expected := make(map[string]struct{}, len(published))
	for _, name := range published {
		expected[storage.ObjectKey(prefix, name)] = struct{}{}
	}

	listPrefix := storage.ObjectKey(prefix)
	if listPrefix != "" {
		listPrefix += "/"
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	plan := &PrunePlan{}
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: listPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("listing %s: %w", listPrefix, obj.Err)
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if _, ok := expected[obj.Key]; ok {
			plan.Kept++
			continue
		}
		plan.Actions = append(plan.Actions, PruneAction{Key: obj.Key, Reason: "not in combined output"})
	}

	sort.Slice(plan.Actions, func(i, j int) bool { return plan.Actions[i].Key < plan.Actions[j].Key })
	return plan, nil
}

// ApplyPrune removes the objects of a plan. Nothing runs unless opts.Confirmed is set
// and opts.DryRun is not.
func ApplyPrune(ctx context.Context, client storage.Client, bucket string, plan *PrunePlan, opts PruneOptions, logger *zap.Logger) (int, error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	removed := 0
	for _, action := range plan.Actions {
		if err := client.RemoveObject(ctx, bucket, action.Key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("removing %s: %w", action.Key, err)
		}
		logger.Info("Removed stale object", zap.String("key", action.Key))
		removed++
	}
	return removed, nil
}
