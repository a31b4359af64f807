// Package version pins the identity this process presents to the desktop
// session: the application ID used to derive its well-known bus name, and
// the version string reported during registration.
package version

import "strings"

const (
	// AppID identifies this application to the session service.
	AppID = "mimesummon"

	// Number is the version string reported alongside the AppID.
	Number = "0.1.0"

	// busNamePrefix is the reverse-domain prefix under which the
	// application claims its well-known name on the session bus.
	busNamePrefix = "com.github.vk."
)

// BusName returns the well-known bus name for the given application ID.
// Hyphens are not valid in bus name elements and are flattened to
// underscores.
func BusName(appID string) string {
	return busNamePrefix + strings.ReplaceAll(appID, "-", "_")
}
