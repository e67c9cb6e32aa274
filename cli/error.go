package cli

import "github.com/ardnew/reflex/reflex"

// ErrReadConfig reports an unreadable configuration file.
var ErrReadConfig = reflex.NewError("read configuration")
