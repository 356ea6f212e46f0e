package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentWriter_WriteDocument(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteDocumentFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *slowcrawl.Document
		w := &mock.DocumentWriter{
			WriteDocumentFn: func(_ context.Context, doc *slowcrawl.Document) error {
				calledWith = doc
				return nil
			},
		}

		doc := &slowcrawl.Document{
			URL:     "https://example.com/doc",
			Content: "<html></html>",
			Hash:    "0123456789abcdef",
		}

		err := w.WriteDocument(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, doc, calledWith)
	})
}
