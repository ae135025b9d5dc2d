package intents

import (
	"github.com/go-resty/resty/v2"
	"github.com/intentkit/effect/pkg/effect"
)

// Table returns a handler table performing every intent in this package
// for real: filesystem access, sleeping, the system clock, random UUIDs,
// and HTTP via a default resty client.
//
// Register over any entry to replace its strategy, or Merge the result
// into an application table.
func Table() *effect.Table {
	t := effect.NewTable()
	effect.RegisterFor(t, performReadFile)
	effect.RegisterFor(t, performWriteFile)
	effect.RegisterFor(t, performDelay)
	effect.RegisterFor(t, performNow)
	effect.RegisterFor(t, performNewUUID)
	t.Register(HTTPRequest{}, NewHTTPHandler(resty.New()))
	return t
}
