package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDateRange(t *testing.T) {
	ten := utc(2023, 6, 15, 10, 0, 0, 0)
	nine := utc(2023, 6, 15, 9, 0, 0, 0)

	err := CheckDateRange(ten, nine)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, OrderMessage, err.Error())

	assert.NoError(t, CheckDateRange(ten, ten))
	assert.NoError(t, CheckDateRange(nine, ten))
}

func TestCheckOptionalDateRange(t *testing.T) {
	ten := utc(2023, 6, 15, 10, 0, 0, 0)
	nine := utc(2023, 6, 15, 9, 0, 0, 0)

	tests := []struct {
		name       string
		begin, end *time.Time
		want       string
	}{
		{"both unset", nil, nil, ""},
		{"begin unset", nil, &nine, PresenceMessage},
		{"end unset", &ten, nil, PresenceMessage},
		{"reversed", &ten, &nine, OrderMessage},
		{"equal", &ten, &ten, ""},
		{"ordered", &nine, &ten, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckOptionalDateRange(tt.begin, tt.end)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestApplyLength(t *testing.T) {
	now := utc(2023, 6, 15, 12, 0, 0, 0)
	begin := utc(2023, 6, 1, 0, 0, 0, 0)
	end := utc(2023, 6, 10, 0, 0, 0, 0)

	t.Run("begin and length", func(t *testing.T) {
		b, e, err := ApplyLength(&begin, nil, 2, now)
		require.NoError(t, err)
		assert.Equal(t, begin, *b)
		assert.True(t, utc(2023, 6, 3, 0, 0, 0, 0).Equal(*e))
	})

	t.Run("end and length", func(t *testing.T) {
		b, e, err := ApplyLength(nil, &end, 36*time.Hour, now)
		require.NoError(t, err)
		assert.True(t, utc(2023, 6, 8, 12, 0, 0, 0).Equal(*b))
		assert.Equal(t, end, *e)
	})

	t.Run("length only ends now", func(t *testing.T) {
		b, e, err := ApplyLength(nil, nil, 1, now)
		require.NoError(t, err)
		assert.True(t, now.Equal(*e))
		assert.True(t, utc(2023, 6, 14, 12, 0, 0, 0).Equal(*b))
	})

	t.Run("no length", func(t *testing.T) {
		b, e, err := ApplyLength(&begin, &end, nil, now)
		require.NoError(t, err)
		assert.Same(t, &begin, b)
		assert.Same(t, &end, e)
	})

	t.Run("overspecified", func(t *testing.T) {
		_, _, err := ApplyLength(&begin, &end, 1, now)
		require.Error(t, err)
		assert.Equal(t, OverspecifiedMsg, err.Error())
	})

	t.Run("bad length", func(t *testing.T) {
		_, _, err := ApplyLength(&begin, nil, "forever", now)
		assert.True(t, errors.Is(err, ErrTypeConversion))
	})
}

func TestValidationErrorMessages(t *testing.T) {
	assert.Equal(t, "validation failed", NewValidationError().Error())
	assert.Equal(t, "a", NewValidationError("a").Error())
	assert.Equal(t, "2 validation problems: a; b", NewValidationError("a", "b").Error())
}
