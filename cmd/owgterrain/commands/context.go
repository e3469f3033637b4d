package commands

import (
	"context"

	"github.com/openwebglobe/terrain/internal/config"
)

type defaultsKey struct{}

func withDefaults(ctx context.Context, d config.Defaults) context.Context {
	return context.WithValue(ctx, defaultsKey{}, d)
}

// defaultsFrom returns the tool-wide YAML defaults loaded by the root
// command's --config flag, falling back to config.Default() if none
// were loaded (e.g. when a command is invoked directly in tests).
func defaultsFrom(ctx context.Context) config.Defaults {
	if d, ok := ctx.Value(defaultsKey{}).(config.Defaults); ok {
		return d
	}
	return config.Default()
}
