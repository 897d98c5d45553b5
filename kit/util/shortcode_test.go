package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateShortCode(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code := GenerateShortCode("")
		assert.Len(t, code, 9)
		assert.True(t, strings.HasPrefix(code, "hse"))
		for _, c := range code[3:] {
			assert.Contains(t, shortCodeAlphabet, string(c))
		}
	}
}

func TestGenerateShortCodeCustomAlias(t *testing.T) {
	assert.Equal(t, "abc", GenerateShortCode("abc"))
	assert.Equal(t, "my-custom-alias", GenerateShortCode("my-custom-alias"))
}
