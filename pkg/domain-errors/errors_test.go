package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesChain(t *testing.T) {
	root := errors.New("dial tcp: connection refused")
	wrapped := Wrap(root, CodeUnavailable, "liveness scorer unreachable")

	require.Error(t, wrapped)
	assert.True(t, errors.Is(wrapped, root))
	assert.Equal(t, CodeUnavailable, CodeOf(wrapped))
	assert.Equal(t, "liveness scorer unreachable", MessageOf(wrapped))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
}

func TestHasCodeWalksChain(t *testing.T) {
	inner := New(CodePolicyRejection, "spoof suspected")
	outer := Wrap(inner, CodeInternal, "verification failed")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodePolicyRejection))
	assert.False(t, HasCode(outer, CodeNotFound))
}

func TestHasCodeUncodedError(t *testing.T) {
	assert.False(t, HasCode(fmt.Errorf("plain"), CodeInternal))
}

func TestCodeOfUncodedDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidInput:         http.StatusBadRequest,
		CodeBadRequest:           http.StatusBadRequest,
		CodeUnauthorized:         http.StatusUnauthorized,
		CodePolicyRejection:      http.StatusForbidden,
		CodeNotFound:             http.StatusNotFound,
		CodeConsistencyViolation: http.StatusConflict,
		CodeUnavailable:          http.StatusServiceUnavailable,
		CodeInternal:             http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), string(code))
	}
}
