// Package model defines the data structures for URL mutation runs.
package model

import (
	"fmt"
	"strings"
)

// Component identifies one addressable part of a URL. The zero value is
// ComponentURL, the whole serialized URL.
type Component int

const (
	// ComponentURL is the complete URL, synthesized from the other parts.
	ComponentURL Component = iota
	// ComponentScheme is the protocol part, e.g. "https".
	ComponentScheme
	// ComponentUser is the username part of the userinfo.
	ComponentUser
	// ComponentPassword is the password part of the userinfo.
	ComponentPassword
	// ComponentOptions is the ";options" part of the userinfo, recognized
	// for a handful of schemes such as imap and smtp.
	ComponentOptions
	// ComponentHost is the hostname, an IPv6 literal kept without brackets.
	ComponentHost
	// ComponentPort is the port number as a decimal string.
	ComponentPort
	// ComponentPath is the path, "/" included.
	ComponentPath
	// ComponentQuery is everything after "?" and before "#".
	ComponentQuery
	// ComponentFragment is everything after "#".
	ComponentFragment
	// ComponentZoneID is the IPv6 zone identifier.
	ComponentZoneID

	// NumComponents is the size of the component registry.
	NumComponents = int(iota)
)

// componentNames holds the registry names in declaration order. Lookup and
// listing both iterate this table so the two can never disagree.
var componentNames = [NumComponents]string{
	ComponentURL:      "url",
	ComponentScheme:   "scheme",
	ComponentUser:     "user",
	ComponentPassword: "password",
	ComponentOptions:  "options",
	ComponentHost:     "host",
	ComponentPort:     "port",
	ComponentPath:     "path",
	ComponentQuery:    "query",
	ComponentFragment: "fragment",
	ComponentZoneID:   "zoneid",
}

// String returns the registry name of the component.
func (c Component) String() string {
	if c < 0 || int(c) >= NumComponents {
		return fmt.Sprintf("component(%d)", int(c))
	}

	return componentNames[c]
}

// Settable reports whether the component is a valid --set target. The url
// pseudo component is read only; whole URLs enter via base input or redirect.
func (c Component) Settable() bool {
	return c != ComponentURL && c >= 0 && int(c) < NumComponents
}

// Appendable reports whether the component is a valid --append target.
func (c Component) Appendable() bool {
	return c == ComponentPath || c == ComponentQuery
}

// Components returns all registry entries in declaration order.
func Components() []Component {
	all := make([]Component, 0, NumComponents)
	for c := ComponentURL; int(c) < NumComponents; c++ {
		all = append(all, c)
	}

	return all
}

// LookupComponent resolves a component name case-insensitively. The length
// check runs first so a prefix or extension of a valid name never matches.
func LookupComponent(name string) (Component, bool) {
	for c := ComponentURL; int(c) < NumComponents; c++ {
		known := componentNames[c]
		if len(known) == len(name) && strings.EqualFold(known, name) {
			return c, true
		}
	}

	return 0, false
}
