package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnunite/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")

	tests := []struct {
		name    string
		err     error
		code    gn.ErrorCode
		path    string
		errText string
	}{
		{
			name:    "CreateDirError",
			err:     CreateDirError("/test/dir", originalErr),
			code:    errcode.CreateDirError,
			path:    "/test/dir",
			errText: "cannot create",
		},
		{
			name:    "CopyFileError",
			err:     CopyFileError("/test/config.yaml", originalErr),
			code:    errcode.CopyFileError,
			path:    "/test/config.yaml",
			errText: "cannot copy",
		},
		{
			name:    "ReadFileError",
			err:     ReadFileError("/test/data.yaml", originalErr),
			code:    errcode.ReadFileError,
			path:    "/test/data.yaml",
			errText: "cannot read /test/data.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.err.(*gn.Error)
			require.True(t, ok,
				"Error should be of type *gn.Error")

			assert.Equal(t, tt.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s",
				"Message should contain format placeholder")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, tt.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
			assert.Contains(t, gnErr.Err.Error(), tt.errText)
			assert.Contains(t, gnErr.Err.Error(), "iofs",
				"Error should mention the calling package")
		})
	}
}
