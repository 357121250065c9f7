package loader

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("SkipsDisabled", func(t *testing.T) {
		on := &fakeFeature{name: "ruleset", enabled: true}
		off := &fakeFeature{name: "legacy"}
		mgr := NewManager()
		mgr.Register(on)
		mgr.Register(off)

		assert.NoError(t, mgr.LoadAll(fiber.New()))
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Len(t, mgr.Features(), 2)
	})

	t.Run("StopsOnError", func(t *testing.T) {
		bad := &fakeFeature{name: "bad", enabled: true, err: errors.New("boom")}
		after := &fakeFeature{name: "after", enabled: true}
		mgr := NewManager()
		mgr.Register(bad)
		mgr.Register(after)

		err := mgr.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "bad")
		assert.False(t, after.loaded)
	})
}
