package cmd_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/controller/cmd"
)

func TestFlags(t *testing.T) {
	// Detecting flags conflicts
	testCases := []struct {
		subCommand string
	}{
		{"sync"},
		{"count"},
		{"ids"},
		{"load"},
		{"schema"},
	}

	for _, tc := range testCases {
		t.Run(tc.subCommand, func(t *testing.T) {
			gt.NoError(t, cmd.Run([]string{"bqnvd", tc.subCommand, "--help"}))
		})
	}
}
