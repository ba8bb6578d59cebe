package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRun_GenerateThenCheck(t *testing.T) {
	hash, ok := run("123456", "", bcrypt.MinCost)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	out, ok := run("123456", hash, 0)
	assert.True(t, ok)
	assert.Equal(t, "Hash doğru!", out)

	out, ok = run("654321", hash, 0)
	assert.False(t, ok)
	assert.True(t, strings.HasPrefix(out, "Hash yanlış"))
}

func TestReadPassword(t *testing.T) {
	pw, err := readPassword([]string{"fromArg"}, strings.NewReader("ignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "fromArg", pw)

	pw, err = readPassword(nil, strings.NewReader("fromStdin\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "fromStdin", pw)

	_, err = readPassword(nil, strings.NewReader(""))
	assert.Error(t, err)
}
