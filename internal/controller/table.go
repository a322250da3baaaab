package controller

import (
	"bytes"

	"github.com/olekukonko/tablewriter"

	m "github.com/curl/urler/internal/model"
)

// componentHelp holds the one line description shown for each registry
// entry, indexed by component.
var componentHelp = [m.NumComponents]string{
	m.ComponentURL:      "the complete URL, rebuilt from the parts",
	m.ComponentScheme:   "protocol, e.g. https",
	m.ComponentUser:     "username in the userinfo",
	m.ComponentPassword: "password in the userinfo",
	m.ComponentOptions:  "userinfo options for imap, pop3, smtp and ldap",
	m.ComponentHost:     "hostname, IP address or IPv6 literal",
	m.ComponentPort:     "decimal port number",
	m.ComponentPath:     "path, leading slash included",
	m.ComponentQuery:    "query string, question mark excluded",
	m.ComponentFragment: "fragment, hash mark excluded",
	m.ComponentZoneID:   "IPv6 zone id",
}

// ComponentTable renders the component registry as a table for the
// components command.
func ComponentTable() string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Component", "Set", "Append", "Description"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, c := range m.Components() {
		table.Append([]string{c.String(), yesNo(c.Settable()), yesNo(c.Appendable()), componentHelp[c]})
	}

	table.Render()

	return tableBuffer.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
