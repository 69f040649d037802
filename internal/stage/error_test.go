package stage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDisplay(t *testing.T) {
	err := New(Fetch, KindTool, "yt-dlp exited with %d", 1)
	assert.Equal(t, "Error: yt-dlp exited with 1", err.Error())
	assert.Equal(t, Fetch, err.Stage)
	assert.Equal(t, KindTool, err.Kind)
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     Kind
		wantKind Kind
	}{
		{"plain error keeps kind", errors.New("boom"), KindModel, KindModel},
		{"deadline becomes timeout", fmt.Errorf("call: %w", context.DeadlineExceeded), KindModel, KindTimeout},
		{"canceled becomes canceled", context.Canceled, KindTool, KindCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(Transcribe, tt.kind, tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, Transcribe, got.Stage)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestWrapKeepsExisting(t *testing.T) {
	orig := New(Fetch, KindTool, "exit 1")
	got := Wrap(Transcribe, KindModel, fmt.Errorf("outer: %w", orig))
	assert.Same(t, orig, got)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(Fetch, KindTool, nil))
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(New(Answer, KindValidation, "empty"), KindValidation))
	assert.False(t, IsKind(errors.New("x"), KindValidation))
}
