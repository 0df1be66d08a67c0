package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLayoutPaths(t *testing.T) {
	l := DefaultLayout(200)

	require.Equal(t, "/etc/selinux/targeted/modules/active", l.OldStore("targeted"))
	require.Equal(t, "/etc/selinux/targeted/modules/active/modules", l.OldModules("targeted"))
	require.Equal(t, "/var/lib/selinux/targeted/active", l.NewStore("targeted"))
	require.Equal(t, "/var/lib/selinux/targeted/active/modules", l.NewModules("targeted"))
	require.Equal(t, "/var/lib/selinux/targeted/active/modules/200", l.BottomDir("targeted"))
}

func TestLayoutReproducible(t *testing.T) {
	a := Layout{OldRoot: "/old", NewRoot: "/new", Priority: 100}
	b := Layout{OldRoot: "/old", NewRoot: "/new", Priority: 100}
	require.Equal(t, a.BottomDir("mls"), b.BottomDir("mls"))
	require.Equal(t, "/new/mls/active/modules/100", a.BottomDir("mls"))
}

func TestIsTopPath(t *testing.T) {
	require.True(t, IsTopPath("file_contexts"))
	require.True(t, IsTopPath("disable_dontaudit"))
	require.True(t, IsTopPath("seusers.final"))
	require.False(t, IsTopPath("File_Contexts"))
	require.False(t, IsTopPath("netfilter_contexts.local"))
	require.False(t, IsTopPath(""))
	require.Len(t, TopPaths, 17)
}
