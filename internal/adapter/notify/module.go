package notify

import "go.uber.org/fx"

// Module provides the e-mail Sender.
var Module = fx.Provide(NewSender)
