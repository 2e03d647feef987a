package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), want)
}
