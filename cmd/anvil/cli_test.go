// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/devnode/anvil/internal/node"

	"github.com/rogpeppe/go-internal/testscript"
)

// envStubFail makes the stub node fail with the variable's value.
const envStubFail = "ANVIL_STUB_FAIL"

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"anvil": func() int {
			return Run(context.Background(), os.Args[1:], Dependencies{})
		},
		"anvil-stub": func() int {
			return Run(context.Background(), os.Args[1:], Dependencies{Runner: node.RunnerFunc(stubNode)})
		},
	}))
}

// stubNode prints the configuration it was started with instead of serving.
func stubNode(_ context.Context, cfg *node.Config) error {
	block := "latest"
	if b := cfg.Fork.PinnedBlock(); b != nil {
		block = fmt.Sprint(*b)
	}
	fmt.Printf("node run: port=%d hosts=%s fork=%s block=%s\n",
		cfg.Server.Port, strings.Join(cfg.Server.Hosts, ","), cfg.Fork.URL, block)
	if msg := os.Getenv(envStubFail); msg != "" {
		return errors.New(msg)
	}
	return nil
}

// TestScripts runs the testscript scenarios in testdata/script.
func TestScripts(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv(EnvLogLevel, "error")
			return nil
		},
		ContinueOnError: true,
	})
}
