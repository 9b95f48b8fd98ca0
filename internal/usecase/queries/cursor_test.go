//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"library-lending/internal/pkg/errs"
	"library-lending/internal/usecase/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAfterCursor(t *testing.T) {
	t.Run("round trip keeps microseconds and the id", func(t *testing.T) {
		at := time.Date(2024, 5, 1, 9, 30, 15, 123456789, time.UTC)
		id := "01HXYZABCDEFGHJKMNPQRSTVWX"

		gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

		require.NoError(t, err)
		assert.True(t, gotAt.Equal(at.Truncate(time.Microsecond)))
		assert.Equal(t, time.UTC, gotAt.Location())
		assert.Equal(t, id, gotID)
	})

	invalid := map[string]string{
		"empty":          "",
		"not base64":     "%%%",
		"legacy format":  base64.URLEncoding.EncodeToString([]byte("1714555815000000-abc")),
		"missing id":     base64.URLEncoding.EncodeToString([]byte("v1:1714555815000000-")),
		"bad timestamp":  base64.URLEncoding.EncodeToString([]byte("v1:yesterday-abc")),
		"no separator":   base64.URLEncoding.EncodeToString([]byte("v1:1714555815000000")),
		"future version": base64.URLEncoding.EncodeToString([]byte("v2:1714555815000000-abc")),
	}
	for name, cursor := range invalid {
		t.Run("rejects "+name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(cursor)
			require.Error(t, err)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(0))
	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-5))
	assert.Equal(t, 7, queries.ValidateLimit(7))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
}
