package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/formview/internal/application/port"
	"github.com/bnema/formview/internal/application/port/mocks"
	"github.com/bnema/formview/internal/domain/entity"
)

func TestSwappableSynthesizer(t *testing.T) {
	first := mocks.NewMockDocumentSynthesizer(t)
	second := mocks.NewMockDocumentSynthesizer(t)
	first.EXPECT().Synthesize(mock.Anything, mock.Anything).Return("first", nil).Once()
	second.EXPECT().Synthesize(mock.Anything, mock.Anything).Return("second", nil).Once()

	desc, err := entity.NewFormDescriptor(`{}`)
	require.NoError(t, err)

	sw := NewSwappableSynthesizer(first)
	doc, err := sw.Synthesize(desc, port.DocumentOptions{})
	require.NoError(t, err)
	assert.Equal(t, "first", doc)

	sw.Swap(second)
	doc, err = sw.Synthesize(desc, port.DocumentOptions{})
	require.NoError(t, err)
	assert.Equal(t, "second", doc)
}
