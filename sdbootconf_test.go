package sdbootconf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/efikit/sdbootconf"
	"github.com/efikit/sdbootconf/entry"
	"github.com/efikit/sdbootconf/kcmdline"
	"github.com/efikit/sdbootconf/loader"
)

// setupESP builds a minimal EFI system partition layout and returns
// its root.
func setupESP(t *testing.T, loaderConf string, entries map[string]string) string {
	t.Helper()
	esp := t.TempDir()
	entriesDir := filepath.Join(esp, "loader", "entries")
	require.NoError(t, os.MkdirAll(entriesDir, 0755))
	if loaderConf != "" {
		require.NoError(t, os.WriteFile(filepath.Join(esp, "loader", "loader.conf"), []byte(loaderConf), 0644))
	}
	for name, content := range entries {
		require.NoError(t, os.WriteFile(filepath.Join(entriesDir, name), []byte(content), 0644))
	}
	return esp
}

func TestNew(t *testing.T) {
	esp := setupESP(t, "default arch\ntimeout 5\n", map[string]string{
		"arch.conf":   "title Arch Linux\nlinux /vmlinuz-linux\ninitrd /initramfs-linux.img\noptions root=/dev/sda1 rw\n",
		"fedora.conf": "title Fedora\nlinux /vmlinuz\n",
		"notes.txt":   "not an entry\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	require.Equal(t, "arch", conf.Loader.Default)
	require.NotNil(t, conf.Loader.Timeout)
	require.Equal(t, uint(5), *conf.Loader.Timeout)

	require.Len(t, conf.Entries, 2)
	assert.Equal(t, "arch", conf.Entries[0].ID)
	assert.Equal(t, "fedora", conf.Entries[1].ID)
	assert.Equal(t, []string{"root=/dev/sda1", "rw"}, conf.Entries[0].Options)
}

func TestNewMissingLoaderConf(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)
	require.Equal(t, loader.Conf{}, conf.Loader)
	require.Len(t, conf.Entries, 1)
}

func TestLoadEntriesAbortsOnMalformed(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"good.conf": "title Good\nlinux /vmlinuz\n",
		"bad.conf":  "linux /vmlinuz\n",
	})

	_, err := sdbootconf.New(esp)
	require.Error(t, err)

	var entryErr *sdbootconf.EntryError
	require.ErrorAs(t, err, &entryErr)
	assert.Equal(t, filepath.Join(esp, "loader", "entries", "bad.conf"), entryErr.Path)
	assert.ErrorIs(t, err, entry.ErrMissingTitle)
}

func TestLoadEntriesSkipsDirectories(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\n",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(esp, "loader", "entries", "snapshots.conf"), 0755))

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)
	require.Len(t, conf.Entries, 1)
}

func TestDefaultEntryState(t *testing.T) {
	entries := map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\n",
	}

	tests := []struct {
		name       string
		loaderConf string
		want       sdbootconf.DefaultState
	}{
		{name: "not defined", loaderConf: "timeout 5\n", want: sdbootconf.NotDefined},
		{name: "exists", loaderConf: "default arch\n", want: sdbootconf.Exists},
		{name: "does not exist", loaderConf: "default gentoo\n", want: sdbootconf.DoesNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := sdbootconf.New(setupESP(t, tt.loaderConf, entries))
			require.NoError(t, err)
			assert.Equal(t, tt.want, conf.DefaultEntryState())
		})
	}
}

func TestGetAndEntryExists(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	require.True(t, conf.EntryExists("arch"))
	require.False(t, conf.EntryExists("gentoo"))

	e := conf.Get("arch")
	require.NotNil(t, e)
	require.Equal(t, "Arch Linux", e.Title)
	require.Nil(t, conf.Get("gentoo"))
}

func TestCurrent(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf":   "title Arch Linux\nlinux /vmlinuz-linux\ninitrd /initramfs-linux.img\noptions rw quiet\n",
		"fedora.conf": "title Fedora\nlinux /vmlinuz\ninitrd /initramfs.img\noptions ro\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	cmdlinePath := filepath.Join(t.TempDir(), "cmdline")
	require.NoError(t, os.WriteFile(cmdlinePath, []byte(`initrd=\initramfs-linux.img rw quiet`), 0644))

	e := conf.Current(kcmdline.New(cmdlinePath))
	require.NotNil(t, e)
	require.Equal(t, "arch", e.ID)
}

func TestCurrentNoMatch(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\ninitrd /initramfs-linux.img\noptions rw\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	cmdlinePath := filepath.Join(t.TempDir(), "cmdline")
	require.NoError(t, os.WriteFile(cmdlinePath, []byte(`root=/dev/sda1 initrd=\initramfs-linux.img rw`), 0644))

	// The positional comparison starts at token zero, so the
	// kernel-prepended root= defeats the match.
	require.Nil(t, conf.Current(kcmdline.New(cmdlinePath)))
}

func TestOverwriteLoaderConf(t *testing.T) {
	esp := setupESP(t, "default arch\n", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	timeout := uint(10)
	conf.Loader.Timeout = &timeout
	require.NoError(t, conf.OverwriteLoaderConf())

	data, err := os.ReadFile(conf.LoaderPath)
	require.NoError(t, err)
	require.Equal(t, "default arch\ntimeout 10\n", string(data))

	require.NoError(t, conf.LoadConf())
	require.Equal(t, uint(10), *conf.Loader.Timeout)
}

func TestOverwriteEntryConf(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\ninitrd /initramfs-linux.img\noptions rw\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	conf.Get("arch").Title = "Arch Linux LTS"
	require.NoError(t, conf.OverwriteEntryConf("arch"))

	data, err := os.ReadFile(filepath.Join(esp, "loader", "entries", "arch.conf"))
	require.NoError(t, err)
	want := "title Arch Linux LTS\n" +
		"linux /vmlinuz-linux\n" +
		"initrd /initramfs-linux.img\n" +
		"options: rw\n"
	require.Equal(t, want, string(data))
}

func TestOverwriteEntryConfNotFound(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf": "title Arch Linux\nlinux /vmlinuz-linux\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)
	require.ErrorIs(t, conf.OverwriteEntryConf("gentoo"), sdbootconf.ErrNotFound)
}

func TestRemoveEntryConf(t *testing.T) {
	esp := setupESP(t, "", map[string]string{
		"arch.conf":   "title Arch Linux\nlinux /vmlinuz-linux\n",
		"fedora.conf": "title Fedora\nlinux /vmlinuz\n",
	})

	conf, err := sdbootconf.New(esp)
	require.NoError(t, err)

	require.NoError(t, conf.RemoveEntryConf("arch"))
	require.False(t, conf.EntryExists("arch"))
	require.Len(t, conf.Entries, 1)

	_, err = os.Stat(filepath.Join(esp, "loader", "entries", "arch.conf"))
	require.True(t, os.IsNotExist(err))

	require.ErrorIs(t, conf.RemoveEntryConf("arch"), sdbootconf.ErrNotFound)
}

func TestDefaultStateString(t *testing.T) {
	assert.Equal(t, "not defined", sdbootconf.NotDefined.String())
	assert.Equal(t, "exists", sdbootconf.Exists.String())
	assert.Equal(t, "does not exist", sdbootconf.DoesNotExist.String())
}
