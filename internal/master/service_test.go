package master

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swissfort-mfg/entrydesk/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	svc := NewService(DefaultCatalog())

	assert.Len(t, svc.ByKind(model.OptionMaster), 3)
	assert.Len(t, svc.ByKind(model.OptionParty), 2)

	for _, form := range []model.FormKind{model.FormFabricEntry, model.FormCuttingEntry, model.FormWorkEntry} {
		assert.NotEmpty(t, svc.Categories(form), "form %s has no categories", form)
	}
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultCatalog())

	opt, ok := svc.Get(model.OptionMaster, "MasterOption2")
	require.True(t, ok)
	assert.Equal(t, "M Option 2", opt.Label)

	assert.True(t, svc.Exists(model.OptionParty, "Party1"))
	assert.False(t, svc.Exists(model.OptionParty, "Party9"))
	assert.False(t, svc.Exists(model.OptionMaster, "Party1"))
}

func TestIsCategory(t *testing.T) {
	svc := NewService(DefaultCatalog())

	assert.True(t, svc.IsCategory(model.FormFabricEntry, "Fabric1"))
	assert.False(t, svc.IsCategory(model.FormCuttingEntry, "Fabric1"))
	assert.False(t, svc.IsCategory(model.FormFabricEntry, "Silk"))
}

func TestSaveLoad(t *testing.T) {
	svc := NewService(DefaultCatalog())
	path := filepath.Join(t.TempDir(), "data", "master.csv")
	require.NoError(t, svc.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, svc.All(), got.All())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
