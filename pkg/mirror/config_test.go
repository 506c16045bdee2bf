package mirror

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfigLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mirror.yaml")
	content := "dialect: gray\nstale_ms: 2000\nbrightness: 128\nbanner: [READY]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	conf := NewConfig()
	conf.File = path
	require.NoError(t, conf.LoadFile())
	require.Equal(t, "gray", conf.Dialect)
	require.Equal(t, 2000, conf.StaleMs)
	require.Equal(t, 128, conf.Brightness)
	require.Equal(t, []string{"READY"}, conf.Banner)
	require.Equalf(t, "screen", conf.Driver, "fields absent from the file keep their defaults")
}

func TestConfigNewDevice(t *testing.T) {
	conf := NewConfig()
	conf.Dialect = "gray"
	conf.Driver = "capture"
	conf.StaleMs = 2000
	conf.Banner = []string{"READY"}
	dev, err := conf.NewDevice(nil)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, dev.StaleAfter)
	require.Equal(t, []string{"READY"}, dev.Banner)

	conf.Dialect = "morse"
	_, err = conf.NewDevice(nil)
	require.Errorf(t, err, "unknown dialect should fail")

	conf.Dialect = "panel"
	conf.Driver = "teletype"
	_, err = conf.NewDevice(nil)
	require.Errorf(t, err, "unknown driver should fail")
}
