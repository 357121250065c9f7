package ruleset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ruleset-combiner/core/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewSourceSet_StripsComments(t *testing.T) {
	set := NewSourceSet("Mod", map[string][]byte{
		"Units.json": []byte(`[
			// a comment
			{"name": "Warrior", /* inline */ "strength": 6,},
		]`),
	})

	units, err := set.Entities(entity.KindUnit)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "Warrior", units[0].Name())
	assert.Equal(t, 6.0, units[0]["strength"])
}

func TestSourceSet_Entities(t *testing.T) {
	set := NewSourceSet("Mod", map[string][]byte{
		"Buildings.json": []byte(`[{"name": "Monument"}, {"name": "Shrine"}]`),
		"Units.json":     []byte(`{"name": "Warrior"}`),
	})

	buildings, err := set.Entities(entity.KindBuilding)
	require.NoError(t, err)
	assert.Len(t, buildings, 2)

	improvements, err := set.Entities(entity.KindImprovement)
	require.NoError(t, err)
	assert.Nil(t, improvements)

	_, err = set.Entities(entity.KindUnit)
	assert.Error(t, err)
}

func TestSourceSet_ListAndObject(t *testing.T) {
	set := NewSourceSet("Mod", map[string][]byte{
		"Techs.json":         []byte(techTree),
		"GlobalUniques.json": []byte(`{"name": "Global uniques", "uniques": ["[+1] Sight"]}`),
	})

	list, ok, err := set.List("Techs.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, list, 2)

	_, ok, err = set.List("Missing.json")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = set.List("GlobalUniques.json")
	assert.Error(t, err, "an object is not a list")

	obj, ok, err := set.Object("GlobalUniques.json")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Global uniques", obj.Name())

	assert.Equal(t, []string{"GlobalUniques.json", "Techs.json"}, set.FileNames())
}

func TestDirReader_Read(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Mod B", "jsons", "Units.json"), `[{"name": "Pathfinder"}]`)
	writeFile(t, filepath.Join(root, "Mod A", "jsons", "Buildings.json"), `[{"name": "Ger"},]`)
	writeFile(t, filepath.Join(root, "Mod A", "jsons", "ModOptions.json"), `{"isBaseRuleset": false}`)
	writeFile(t, filepath.Join(root, "Mod A", "jsons", "notes.txt"), `not json`)
	writeFile(t, filepath.Join(root, "Mod A", "Images", "Ger.png"), `png`)
	writeFile(t, filepath.Join(root, "Empty", "README.md"), `no jsons here`)
	writeFile(t, filepath.Join(root, "stray.json"), `[]`)

	sets, err := NewDirReader(root, zap.NewNop()).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "Mod A", sets[0].Name)
	assert.Equal(t, []string{"Buildings.json"}, sets[0].FileNames())
	assert.Equal(t, "Mod B", sets[1].Name)

	buildings, err := sets[0].Entities(entity.KindBuilding)
	require.NoError(t, err)
	assert.Equal(t, "Ger", buildings[0].Name())
}

func TestDirReader_MissingRoot(t *testing.T) {
	_, err := NewDirReader(filepath.Join(t.TempDir(), "missing"), zap.NewNop()).Read(context.Background())
	assert.Error(t, err)
}

func TestDirReader_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Mod", "jsons", "Units.json"), `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDirReader(root, zap.NewNop()).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
