package inject

import (
	"context"

	"go.uber.org/multierr"

	"stylekit/registry"
)

type multi []registry.Injector

// Multi fans every call out to all injectors. All of them are called even
// if some fail, failures are combined.
func Multi(injectors ...registry.Injector) registry.Injector {
	return multi(injectors)
}

func (m multi) InjectScoped(ctx context.Context, css, className string) (err error) {
	for _, inj := range m {
		err = multierr.Append(err, inj.InjectScoped(ctx, css, className))
	}
	return
}

func (m multi) ClearRule(ctx context.Context, className string) (err error) {
	for _, inj := range m {
		err = multierr.Append(err, inj.ClearRule(ctx, className))
	}
	return
}

func (m multi) ClearAll(ctx context.Context) (err error) {
	for _, inj := range m {
		err = multierr.Append(err, inj.ClearAll(ctx))
	}
	return
}
