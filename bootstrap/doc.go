// Package bootstrap runs a service through a uniform lifecycle:
// start components, run configure callbacks and hooks, serve or run a
// finite task, then stop components in reverse order.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RegisterComponent(store)
//	app.RegisterComponent(viewModel)
//	err = app.RunTask(ctx, func(ctx context.Context) error { ... })
package bootstrap
