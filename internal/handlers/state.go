package handlers

import (
	"musicmarket/internal/market"
)

// Market is the shared in-memory registry served by all handlers. It is
// assigned once at startup via Init, before the router starts accepting
// requests.
var Market *market.Registry

// Init wires the registry into the handler package.
func Init(registry *market.Registry) {
	Market = registry
}
