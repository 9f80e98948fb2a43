package common

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetENVValue(t *testing.T) {
	key := "MINIDAO_TEST_GET_ENV_VALUE"
	os.Unsetenv(key)
	require.Equal(t, "default", GetENVValue(key, "default"))

	os.Setenv(key, "showme")
	defer os.Unsetenv(key)
	require.Equal(t, "showme", GetENVValue(key, "default"))
}

func TestJSONMarshalWithoutEscapeHTML(t *testing.T) {
	b, err := JSONMarshalWithoutEscapeHTML(map[string]string{"title": "<a & b>"})
	require.NoError(t, err)
	require.Equal(t, `{"title":"<a & b>"}`, string(b))
}

func TestParseBoolQueryString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes"} {
		b, err := ParseBoolQueryString(v)
		require.NoError(t, err)
		require.True(t, b, v)
	}
	for _, v := range []string{"", "0", "false", "no"} {
		b, err := ParseBoolQueryString(v)
		require.NoError(t, err)
		require.False(t, b, v)
	}

	_, err := ParseBoolQueryString("killme")
	require.Error(t, err)
}

func TestGetUniqueIDFromUUID(t *testing.T) {
	a := GetUniqueIDFromUUID()
	b := GetUniqueIDFromUUID()
	require.NotEqual(t, a, b)
	require.Len(t, a, 36)
	require.True(t, a < b)
}

func TestInStringArray(t *testing.T) {
	i, found := InStringArray([]string{"a", "b"}, "b")
	require.True(t, found)
	require.Equal(t, 1, i)

	i, found = InStringArray([]string{"a", "b"}, "c")
	require.False(t, found)
	require.Equal(t, -1, i)
}
