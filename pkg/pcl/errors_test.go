package pcl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pclgo/pcl-go/pkg/pcl/internal/backend"
)

func TestRemapError(t *testing.T) {
	assert.NoError(t, remapError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, remapError(plain))

	tests := []struct {
		code int
		want error
	}{
		{backend.CodeNull, ErrReleased},
		{backend.CodeNotShared, ErrNotShared},
		{backend.CodeRange, ErrIndexOutOfRange},
		{backend.CodeType, ErrTypeMismatch},
	}
	for _, tt := range tests {
		ne := &NativeError{Op: "op", Code: tt.code, Message: "m"}
		err := remapError(ne)
		assert.ErrorIs(t, err, tt.want)

		var got *NativeError
		if assert.ErrorAs(t, err, &got) {
			assert.Equal(t, tt.code, got.Code)
		}
	}

	io := &NativeError{Op: "loadPCDFile", Code: backend.CodeIO, Message: "no such file"}
	assert.Equal(t, error(io), remapError(io))
	assert.Equal(t, "loadPCDFile: no such file (code -6)", io.Error())
}
