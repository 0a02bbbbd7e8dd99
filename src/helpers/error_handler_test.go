package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/arbstatistix/financial-engineering/src/logger"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorMessage(t *testing.T) {
	err := NewMappingError("export", "unexpected value type for codec", errors.New("boom"))
	err.Source = "config.json"
	assert.Equal(t, "mapping error in config.json (domain=export): unexpected value type for codec: boom", err.Error())

	assert.Equal(t, "io error in x.json: failed to read config: file does not exist",
		NewIOError("x.json", fs.ErrNotExist).Error())
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("startup: %w", NewIOError("x.json", fs.ErrNotExist))

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindIO, kind)
	assert.True(t, IsKind(err, KindIO))
	assert.False(t, IsKind(err, KindSyntax))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorHandlerLogsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	h := NewErrorHandler(logger.NewLoggerTo(&buf, nil, "ErrorHandler"))

	assert.False(t, h.Handle(nil, "load"))
	assert.True(t, h.Handle(NewSyntaxError("", errors.New("bad")), "load"))
	assert.True(t, h.Handle(errors.New("other"), "load"))

	assert.Equal(t, 2, h.ErrorCount)
	assert.Contains(t, buf.String(), "Error in load [syntax]")
	assert.Contains(t, buf.String(), "Error in load: other")

	h.ResetErrorCount()
	assert.Equal(t, 0, h.ErrorCount)
}
