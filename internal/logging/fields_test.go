package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithCommonAppendsServiceAndVersion(t *testing.T) {
	attrs := WithCommon(nil, "bglist", "v1")
	require.Len(t, attrs, 2)
	require.Equal(t, FieldService, attrs[0].Key)
	require.Equal(t, "bglist", attrs[0].Value.String())
	require.Equal(t, FieldVersion, attrs[1].Key)
	require.Equal(t, "v1", attrs[1].Value.String())
}

func TestWithCommonSkipsEmpty(t *testing.T) {
	attrs := WithCommon([]slog.Attr{slog.String(FieldPath, "/usr/share/bg-list.txt")}, "", "")
	require.Len(t, attrs, 1)
	require.Equal(t, FieldPath, attrs[0].Key)
}
