package checks

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squatchystacks/stacksmith/pkg/cmdexec"
	"github.com/squatchystacks/stacksmith/pkg/config"
)

// checkCall records one command execution observed by the mock executor.
type checkCall struct {
	commands string
	env      map[string]string
	dir      string
	timeout  int
	expanded string
}

// mockExecutor swaps the shell step runner for a fake and records calls.
func mockExecutor(t *testing.T, respond func(call checkCall) ([]byte, error)) *[]checkCall {
	t.Helper()

	calls := &[]checkCall{}
	prev := cmdexec.Execute
	cmdexec.Execute = func(commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
		call := checkCall{
			commands: commands,
			env:      env,
			dir:      dir,
			timeout:  timeoutSeconds,
			expanded: cmdexec.Expand(commands, replacements),
		}
		*calls = append(*calls, call)
		return respond(call)
	}
	t.Cleanup(func() { cmdexec.Execute = prev })
	return calls
}

func checksConfig(commands string) *config.Config {
	return &config.Config{
		Checks: &config.ChecksCfg{Commands: commands},
	}
}

func TestRunner_HasChecks(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		expected bool
	}{
		{
			name:     "nil config",
			cfg:      nil,
			expected: false,
		},
		{
			name:     "no checks block",
			cfg:      &config.Config{},
			expected: false,
		},
		{
			name:     "empty commands",
			cfg:      checksConfig(""),
			expected: false,
		},
		{
			name:     "only comments and blanks",
			cfg:      checksConfig("# validate the page\n\n   \n"),
			expected: false,
		},
		{
			name:     "has a command",
			cfg:      checksConfig("tidy -q -e {{page}}"),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(tt.cfg, "/tmp")
			assert.Equal(t, tt.expected, runner.HasChecks())
		})
	}
}

func TestRunner_ContinueOnFail(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *config.Config
		expected bool
	}{
		{
			name:     "nil config",
			cfg:      nil,
			expected: false,
		},
		{
			name:     "no checks block",
			cfg:      &config.Config{},
			expected: false,
		},
		{
			name:     "default",
			cfg:      checksConfig("tidy -q -e {{page}}"),
			expected: false,
		},
		{
			name: "enabled",
			cfg: &config.Config{
				Checks: &config.ChecksCfg{
					Commands:       "tidy -q -e {{page}}",
					ContinueOnFail: true,
				},
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(tt.cfg, "/tmp")
			assert.Equal(t, tt.expected, runner.ContinueOnFail())
		})
	}
}

func TestRunner_Run_AllPass(t *testing.T) {
	calls := mockExecutor(t, func(call checkCall) ([]byte, error) {
		return []byte("ok\n"), nil
	})

	cfg := checksConfig("tidy -q -e {{page}}\nhtmlhint {{page}}")
	runner := NewRunner(cfg, "/srv/site")
	result := runner.Run()

	require.NotNil(t, result)
	assert.Equal(t, PhaseCommands, result.Phase)
	assert.True(t, result.Passed())
	require.Len(t, result.Checks, 2)

	assert.Equal(t, "tidy -q -e index.html", result.Checks[0].Name)
	assert.Equal(t, "htmlhint index.html", result.Checks[1].Name)
	assert.True(t, result.Checks[0].Passed)
	assert.True(t, result.Checks[1].Passed)
	assert.Equal(t, "ok\n", result.Checks[0].Output)

	require.Len(t, *calls, 2)
	assert.Equal(t, "/srv/site", (*calls)[0].dir)
	assert.Equal(t, config.DefaultChecksTimeoutSeconds, (*calls)[0].timeout)
}

func TestRunner_Run_Failure(t *testing.T) {
	calls := mockExecutor(t, func(call checkCall) ([]byte, error) {
		if call.expanded == "linkchecker index.html" {
			return []byte("broken link: /deals/archive\n"), fmt.Errorf("exit status 1")
		}
		return []byte("ok\n"), nil
	})

	cfg := checksConfig("tidy -q -e {{page}}\nlinkchecker {{page}}")
	runner := NewRunner(cfg, "/srv/site")
	result := runner.Run()

	require.Len(t, *calls, 2)
	require.Len(t, result.Checks, 2)
	assert.False(t, result.Passed())
	assert.Equal(t, 1, result.PassedCount())
	assert.Equal(t, 1, result.FailedCount())

	failed := result.Checks[1]
	assert.False(t, failed.Passed)
	require.Error(t, failed.Error)
	assert.Contains(t, failed.Error.Error(), "linkchecker index.html")
	assert.Contains(t, failed.Error.Error(), "exit status 1")
	assert.Equal(t, "broken link: /deals/archive\n", failed.Output)
}

func TestRunner_Run_NoChecks(t *testing.T) {
	mockExecutor(t, func(call checkCall) ([]byte, error) {
		t.Fatalf("no command should run, got %q", call.expanded)
		return nil, nil
	})

	runner := NewRunner(&config.Config{}, "/tmp")
	result := runner.Run()

	require.NotNil(t, result)
	assert.Equal(t, PhaseCommands, result.Phase)
	assert.Empty(t, result.Checks)
	assert.True(t, result.Passed())
}

func TestRunner_Run_PagePlaceholder(t *testing.T) {
	calls := mockExecutor(t, func(call checkCall) ([]byte, error) {
		return nil, nil
	})

	cfg := checksConfig("htmlhint {{page}}")
	cfg.Output.Page = "public/deals.html"
	runner := NewRunner(cfg, "/srv/site")
	result := runner.Run()

	require.Len(t, *calls, 1)
	require.Len(t, result.Checks, 1)
	// The raw command goes to the executor, which owns the replacement.
	assert.Equal(t, "htmlhint {{page}}", (*calls)[0].commands)
	assert.Equal(t, "htmlhint public/deals.html", (*calls)[0].expanded)
	assert.Equal(t, "htmlhint public/deals.html", result.Checks[0].Name)
}

func TestRunner_Run_Timeouts(t *testing.T) {
	t.Run("configured timeout", func(t *testing.T) {
		calls := mockExecutor(t, func(call checkCall) ([]byte, error) {
			return nil, nil
		})

		cfg := checksConfig("tidy -q -e {{page}}")
		cfg.Checks.TimeoutSeconds = 60
		NewRunner(cfg, "/tmp").Run()

		require.Len(t, *calls, 1)
		assert.Equal(t, 60, (*calls)[0].timeout)
	})

	t.Run("no timeout", func(t *testing.T) {
		calls := mockExecutor(t, func(call checkCall) ([]byte, error) {
			return nil, nil
		})

		cfg := checksConfig("tidy -q -e {{page}}")
		cfg.NoTimeout = true
		NewRunner(cfg, "/tmp").Run()

		require.Len(t, *calls, 1)
		assert.Equal(t, 0, (*calls)[0].timeout)
	})
}

func TestRunner_Run_Env(t *testing.T) {
	calls := mockExecutor(t, func(call checkCall) ([]byte, error) {
		return nil, nil
	})

	cfg := &config.Config{
		Checks: &config.ChecksCfg{
			Commands: "validate-page {{page}}",
			Env:      map[string]string{"VALIDATOR_STRICT": "1"},
		},
	}
	NewRunner(cfg, "/tmp").Run()

	require.Len(t, *calls, 1)
	assert.Equal(t, "1", (*calls)[0].env["VALIDATOR_STRICT"])
}

// tickCounter counts progress ticks for progress reporting tests.
type tickCounter struct {
	ticks int
}

func (c *tickCounter) Increment() {
	c.ticks++
}

func TestRunner_Progress(t *testing.T) {
	mockExecutor(t, func(call checkCall) ([]byte, error) {
		return nil, nil
	})

	t.Run("ticks once per check", func(t *testing.T) {
		cfg := checksConfig("tidy -q -e {{page}}\nhtmlhint {{page}}\ngrep -q deals {{page}}")
		runner := NewRunner(cfg, "/tmp")
		counter := &tickCounter{}
		runner.SetProgress(counter)

		result := runner.Run()

		assert.Equal(t, 3, counter.ticks)
		assert.Len(t, result.Checks, 3)
	})

	t.Run("nil reporter is fine", func(t *testing.T) {
		runner := NewRunner(checksConfig("tidy -q -e {{page}}"), "/tmp")
		runner.SetProgress(nil)

		result := runner.Run()

		assert.Len(t, result.Checks, 1)
	})

	t.Run("command count matches runnable lines", func(t *testing.T) {
		cfg := checksConfig("# comment\n\ntidy -q -e {{page}}\nhtmlhint {{page}}\n")
		assert.Equal(t, 2, NewRunner(cfg, "/tmp").CommandCount())
		assert.Equal(t, 0, NewRunner(nil, "/tmp").CommandCount())
	})
}

func TestSplitCommands(t *testing.T) {
	tests := []struct {
		name     string
		commands string
		expected []string
	}{
		{
			name:     "single command",
			commands: "tidy -q -e {{page}}",
			expected: []string{"tidy -q -e {{page}}"},
		},
		{
			name:     "one command per line",
			commands: "tidy -q -e {{page}}\nlinkchecker {{page}}",
			expected: []string{"tidy -q -e {{page}}", "linkchecker {{page}}"},
		},
		{
			name:     "comments and blank lines skipped",
			commands: "# markup must validate\n\ntidy -q -e {{page}}\n",
			expected: []string{"tidy -q -e {{page}}"},
		},
		{
			name:     "pipes stay in their line",
			commands: "cat {{page}} | grep -c deal-card",
			expected: []string{"cat {{page}} | grep -c deal-card"},
		},
		{
			name:     "continuation lines join",
			commands: "tidy -q \\\n  -e {{page}}\nhtmlhint {{page}}",
			expected: []string{"tidy -q -e {{page}}", "htmlhint {{page}}"},
		},
		{
			name:     "continuation at end of block",
			commands: "echo checked \\",
			expected: []string{"echo checked"},
		},
		{
			name:     "CRLF line endings",
			commands: "tidy -q -e {{page}}\r\nhtmlhint {{page}}\r\n",
			expected: []string{"tidy -q -e {{page}}", "htmlhint {{page}}"},
		},
		{
			name:     "empty block",
			commands: "",
			expected: nil,
		},
		{
			name:     "whitespace only",
			commands: "   \n\t\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitCommands(tt.commands))
		})
	}
}
