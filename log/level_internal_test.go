package log

import (
	"testing"

	charmlog "charm.land/log/v2"
	"github.com/stretchr/testify/assert"
)

func TestLevelCharm(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level Level
		want  charmlog.Level
	}{
		"error":   {level: LevelError, want: charmlog.ErrorLevel},
		"warn":    {level: LevelWarn, want: charmlog.WarnLevel},
		"info":    {level: LevelInfo, want: charmlog.InfoLevel},
		"debug":   {level: LevelDebug, want: charmlog.DebugLevel},
		"unknown": {level: "loud", want: charmlog.InfoLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.level.charm())
		})
	}
}
