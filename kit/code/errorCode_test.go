package code

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	errorCodeNotFound := CreateErrorCode(http.StatusNotFound)
	assert.Equal(t, errorCodeNotFound, ParseErrorCode(errorCodeNotFound))

	for _, testCase := range []struct {
		message          string
		errString        string
		isExistCallStack bool
		errorCode        *errorCode
	}{
		{
			message:          "bad request",
			errString:        `{"code":0,"message":"bad request"}`,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusBadRequest),
		},
		{
			message:          "link expired",
			errString:        `{"code":0,"message":"link expired"}`,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusGone),
		},
		{
			message:          "short code already exists",
			errString:        `{"code":7,"message":"short code already exists"}`,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusConflict).AddCode(DuplicateCode),
		},
		{
			message:          "rate limit error. expiry: 3",
			errString:        `{"code":1,"message":"rate limit error. expiry: 3"}`,
			isExistCallStack: false,
			errorCode:        CreateErrorCode(http.StatusTooManyRequests).AddCode(RateLimit, 3),
		},
		{
			message:          "internal error",
			errString:        `{"code":0,"message":"internal error"}`,
			isExistCallStack: true,
			errorCode:        ParseErrorCode(errors.New("unknown error")),
		},
	} {
		assert.Equal(t, testCase.message, testCase.errorCode.Message)
		assert.Equal(t, testCase.errString, testCase.errorCode.Error())
		assert.Equal(t, testCase.isExistCallStack, len(testCase.errorCode.CallStack) != 0)
	}

	assert.Equal(t, http.StatusGone, CreateHTTPError(CreateErrorCode(http.StatusGone)).HTTPCode)

	wrapped := errors.Wrap(CreateErrorCode(http.StatusForbidden), "ownership check failed")
	assert.Equal(t, http.StatusForbidden, ParseErrorCode(wrapped).GeneralCode)
}
