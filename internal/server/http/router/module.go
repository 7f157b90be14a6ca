package router

import "go.uber.org/fx"

// Module exposes the gin engine built by Setup.
var Module = fx.Provide(Setup)
