package pairing_fx

import (
	"os"

	"go.uber.org/fx"
	"hostpanel/pkg/pairing"
)

var Module = fx.Provide(
	providePairingClient)

func providePairingClient() pairing.Client {
	return pairing.NewHTTPClient(os.Getenv("PAIRING_API_URL"))
}
