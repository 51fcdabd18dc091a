package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasforge/atlasforge/internal/model"
)

func testProfiles() []model.Profile {
	small := model.DefaultSettings()
	small.CharHeight = 16

	big := model.DefaultSettings()
	big.CharHeight = 96
	big.AutoHeight = true

	return []model.Profile{
		model.NewProfile("UI Small", small),
		model.NewProfile("Title Large", big),
	}
}

func TestSaveAndLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	profiles := testProfiles()

	require.NoError(t, SaveProfiles(path, profiles))

	loaded, err := LoadProfiles(path)
	require.NoError(t, err)
	assert.Equal(t, profiles, loaded)
}

func TestLoadProfiles_MissingFile(t *testing.T) {
	loaded, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestFindProfile(t *testing.T) {
	profiles := testProfiles()

	p, ok := FindProfile(profiles, "Title Large")
	require.True(t, ok)
	assert.Equal(t, 96, p.Settings.CharHeight)

	p, ok = FindProfile(profiles, profiles[0].ID)
	require.True(t, ok)
	assert.Equal(t, "UI Small", p.Name)

	_, ok = FindProfile(profiles, "nope")
	assert.False(t, ok)
}

func TestExportAndImportProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	profile := testProfiles()[0]

	require.NoError(t, ExportProfile(path, profile))

	imported, err := ImportProfile(path)
	require.NoError(t, err)
	assert.Equal(t, profile, imported)
}

func TestImportProfile_NoName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"abc"}`), 0644))

	_, err := ImportProfile(path)
	assert.Error(t, err)
}
