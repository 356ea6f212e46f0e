package slowcrawl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/slowcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := slowcrawl.Errorf(slowcrawl.ENOTFOUND, "url %q not found", "https://example.com/")

	assert.Equal(t, slowcrawl.ENOTFOUND, slowcrawl.ErrorCode(err))
	assert.Equal(t, "url \"https://example.com/\" not found", slowcrawl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, slowcrawl.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, slowcrawl.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, slowcrawl.EINTERNAL, slowcrawl.ErrorCode(err))
	assert.Equal(t, "Internal error", slowcrawl.ErrorMessage(err))
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	t.Run("unwraps duplicate cause", func(t *testing.T) {
		t.Parallel()

		var err error = &slowcrawl.FetchError{URL: "https://a/", Err: slowcrawl.ErrDuplicateURL}

		assert.ErrorIs(t, err, slowcrawl.ErrDuplicateURL)
		assert.Equal(t, slowcrawl.ECONFLICT, slowcrawl.ErrorCode(err))
		assert.Contains(t, err.Error(), "https://a/")
	})

	t.Run("is matched through wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("batch: %w", &slowcrawl.FetchError{URL: "https://a/", Err: errors.New("timeout")})

		var fetchErr *slowcrawl.FetchError
		assert.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "https://a/", fetchErr.URL)
	})
}

func TestParseError_UnwrapsDuplicateContent(t *testing.T) {
	t.Parallel()

	var err error = &slowcrawl.ParseError{URL: "https://b/", Err: slowcrawl.ErrDuplicateContent}

	assert.ErrorIs(t, err, slowcrawl.ErrDuplicateContent)
	assert.NotErrorIs(t, err, slowcrawl.ErrDuplicateURL)
}
