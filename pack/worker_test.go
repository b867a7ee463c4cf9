package pack

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KatelynHaworth/gbl-helper/config"
	"github.com/KatelynHaworth/gbl-helper/gbl"
	"github.com/KatelynHaworth/gbl-helper/gbl/container"
	"github.com/KatelynHaworth/gbl-helper/gbl/tags"
	"github.com/KatelynHaworth/gbl-helper/storage"
)

type memoryStore struct {
	lock    sync.Mutex
	objects map[string][]byte
	err     error
}

func (store *memoryStore) Store(_ context.Context, location string, data []byte) error {
	store.lock.Lock()
	defer store.lock.Unlock()

	if store.err != nil {
		return store.err
	}

	store.objects[location] = data
	return nil
}

func TestWorker_Assemble(t *testing.T) {
	image := config.Image{
		Output: "app.gbl",
		Tags: []config.TagSpec{
			{Type: "header_v3", Version: 0x03010000, ImageType: 1},
			{Type: "application", AppType: 1, Version: 0x01020304, Capabilities: 0xffffffff, ProductID: 42},
			{Type: "prog", Address: 0x08000000, Data: "00010203"},
		},
	}

	wkr, err := NewWorker(image, t.TempDir(), &memoryStore{objects: map[string][]byte{}}, zerolog.Nop())
	require.NoError(t, err)

	data, err := wkr.Assemble()
	require.NoError(t, err)

	parsed, err := gbl.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	assert.Equal(t, tags.NewHeader(0x03010000, 1), parsed[0])
	assert.Equal(t, tags.NewApplication(1, 0x01020304, 0xffffffff, 42, nil), parsed[1])
	assert.Equal(t, tags.NewProg(0x08000000, []byte{0, 1, 2, 3}), parsed[2])
	assert.NoError(t, gbl.VerifyEndTag(parsed))
}

func TestWorker_ProtectedTags(t *testing.T) {
	image := config.Image{
		Output: "bad.gbl",
		Tags: []config.TagSpec{
			{Type: "metadata"},
			{Type: "end"},
		},
	}

	wkr, err := NewWorker(image, "", &memoryStore{objects: map[string][]byte{}}, zerolog.Nop())
	require.NoError(t, err)

	_, err = wkr.Assemble()
	assert.ErrorIs(t, err, container.ErrProtectedTag)
}

func TestNewWorker_Errors(t *testing.T) {
	_, err := NewWorker(config.Image{}, "", nil, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewWorker(config.Image{Output: "x.gbl", Tags: []config.TagSpec{{Type: "bogus"}}}, "", nil, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrUnknownTagType)
}

func TestWorker_Run_StoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	wkr, err := NewWorker(config.Image{Output: "x.gbl"}, "", &memoryStore{err: storeErr}, zerolog.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, wkr.Run(context.Background()), storeErr)
	assert.Empty(t, wkr.ImageHash())
}

func TestRun_Manifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "boot.bin"), []byte{0xaa, 0xbb}, 0644))
	manifest := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
config_version: 2
images:
  - output: `+filepath.Join(dir, "app.gbl")+`
    tags:
      - type: metadata
        data: "6d657461"
  - output: `+filepath.Join(dir, "boot.gbl")+`
    tags:
      - type: bootloader
        bootloader_version: 2
        address: 0x4000
        data_file: boot.bin
`), 0644))

	cfg, err := config.LoadConfigurationFromFile(manifest, config.FormatForFile(manifest))
	require.NoError(t, err)

	wkrs, err := Run(context.Background(), cfg, storage.New(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, wkrs, 2)

	for _, wkr := range wkrs {
		assert.NotEmpty(t, wkr.ImageHash())
		assert.NotZero(t, wkr.ImageSize())
	}

	data, err := os.ReadFile(filepath.Join(dir, "boot.gbl"))
	require.NoError(t, err)

	parsed, err := gbl.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, tags.NewBootloader(2, 0x4000, []byte{0xaa, 0xbb}), parsed[1])

	data, err = os.ReadFile(filepath.Join(dir, "app.gbl"))
	require.NoError(t, err)

	parsed, err = gbl.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, tags.NewMetadata([]byte("meta")), parsed[1])
}

func TestRun_InvalidManifest(t *testing.T) {
	_, err := Run(context.Background(), &config.ConfigurationV2{}, storage.New(), zerolog.Nop())
	assert.Error(t, err)
}
