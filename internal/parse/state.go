package parse

import (
	"fmt"
	"strings"

	"github.com/Ferxas/chris-hotel-web-app/internal/model"
)

var stateAliases = map[string]model.RoomState{
	"SE":       model.RoomStateService,
	"SERVICE":  model.RoomStateService,
	"CO":       model.RoomStateCheckout,
	"CHECKOUT": model.RoomStateCheckout,
	"CLEAN":    model.RoomStateClean,
}

// RoomState accepts the short codes and the long names, in any case.
func RoomState(raw string) (model.RoomState, error) {
	s, ok := stateAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown room state: %q", raw)
	}
	return s, nil
}

// ManualKind parses the kind of a manual history registration.
func ManualKind(raw string) (model.ManualKind, error) {
	switch model.ManualKind(strings.ToLower(strings.TrimSpace(raw))) {
	case model.ManualClean:
		return model.ManualClean, nil
	case model.ManualMaintenance:
		return model.ManualMaintenance, nil
	}
	return "", fmt.Errorf("unknown registration kind: %q", raw)
}
