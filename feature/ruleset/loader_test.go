package ruleset

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	// nil db: manifests are not persisted
	feature := NewFeature(testConfig(), &staticReader{sets: testSets()}, testOptions(), zap.NewNop(), nil)

	assert.Equal(t, "ruleset", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
