package utils_test

import (
	"testing"

	"github.com/jrsteele09/quickserve-session/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestMergeMaps(t *testing.T) {
	t.Run("src wins", func(t *testing.T) {
		dst := map[string]any{"email": "a@b.com", "phone": "1"}
		out := utils.MergeMaps(dst, map[string]any{"phone": "123"})
		require.Equal(t, map[string]any{"email": "a@b.com", "phone": "123"}, out)
		require.Equal(t, "1", dst["phone"], "dst must not be mutated")
	})

	t.Run("nil dst", func(t *testing.T) {
		out := utils.MergeMaps(nil, map[string]any{"phone": "123"})
		require.Equal(t, map[string]any{"phone": "123"}, out)
	})
}

func TestCloneMap(t *testing.T) {
	require.Nil(t, utils.CloneMap[string, any](nil))

	src := map[string]any{"a": 1}
	c := utils.CloneMap(src)
	c["a"] = 2
	require.Equal(t, 1, src["a"])
}

func TestPtrValue(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, "x", utils.Value(utils.Ptr("x")))
}
