package ruleset

import (
	"context"
	"errors"
	"testing"
	"time"

	"ruleset-combiner/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlanPrune(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "rulesets", listPrefix("Combined/")).Return(mocks.Objects(
		"Combined/jsons/",
		"Combined/jsons/Units.json",
		"Combined/jsons/Eras.json",
		"Combined/Images/Units/Old.png",
		"Combined/manifest.json",
	))

	plan, err := PlanPrune(context.Background(), client, "rulesets", "Combined", []string{"jsons/Units.json", ManifestFile})
	require.NoError(t, err)

	assert.Equal(t, 2, plan.Kept)
	assert.Equal(t, []PruneAction{
		{Key: "Combined/Images/Units/Old.png", Reason: "not in combined output"},
		{Key: "Combined/jsons/Eras.json", Reason: "not in combined output"},
	}, plan.Actions)
}

func TestPlanPrune_ListError(t *testing.T) {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "rulesets", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := PlanPrune(context.Background(), client, "rulesets", "", nil)
	assert.ErrorContains(t, err, "access denied")
}

func TestPlanPrune_ListErrorStopsListing(t *testing.T) {
	var listCtx context.Context
	stopped := make(chan struct{})

	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "rulesets", mock.Anything).
		Run(func(args mock.Arguments) { listCtx = args.Get(0).(context.Context) }).
		Return(func() <-chan minio.ObjectInfo {
			ch := make(chan minio.ObjectInfo)
			go func() {
				defer close(stopped)
				defer close(ch)
				ch <- minio.ObjectInfo{Err: errors.New("access denied")}
				for {
					select {
					case ch <- minio.ObjectInfo{Key: "Combined/jsons/Units.json"}:
					case <-listCtx.Done():
						return
					}
				}
			}()
			return ch
		}())

	_, err := PlanPrune(context.Background(), client, "rulesets", "Combined", nil)
	assert.ErrorContains(t, err, "access denied")

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("listing kept running after PlanPrune returned")
	}
}

func TestApplyPrune(t *testing.T) {
	plan := &PrunePlan{Actions: []PruneAction{{Key: "a.json"}, {Key: "b.json"}}}

	tests := []struct {
		name    string
		opts    PruneOptions
		removed int
	}{
		{"Not confirmed", PruneOptions{}, 0},
		{"Dry run", PruneOptions{Confirmed: true, DryRun: true}, 0},
		{"Confirmed", PruneOptions{Confirmed: true}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("RemoveObject", mock.Anything, "rulesets", mock.Anything, mock.Anything).Return(nil)

			removed, err := ApplyPrune(context.Background(), client, "rulesets", plan, tt.opts, zap.NewNop())
			require.NoError(t, err)
			assert.Equal(t, tt.removed, removed)
			client.AssertNumberOfCalls(t, "RemoveObject", tt.removed)
		})
	}
}

func TestApplyPrune_Error(t *testing.T) {
	client := new(mocks.Client)
	client.On("RemoveObject", mock.Anything, "rulesets", "a.json", mock.Anything).Return(errors.New("locked"))

	plan := &PrunePlan{Actions: []PruneAction{{Key: "a.json"}, {Key: "b.json"}}}
	removed, err := ApplyPrune(context.Background(), client, "rulesets", plan, PruneOptions{Confirmed: true}, zap.NewNop())
	assert.Error(t, err)
	assert.Equal(t, 0, removed)
}
