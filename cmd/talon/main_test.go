package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Version(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	os.Args = []string{"talon", "version"}
	assert.Equal(t, 0, run())
}

func TestRun_UnknownCommand(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
	}()

	os.Args = []string{"talon", "frobnicate"}
	assert.Equal(t, 1, run())
}
