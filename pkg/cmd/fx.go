package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(diffCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(renamesCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
