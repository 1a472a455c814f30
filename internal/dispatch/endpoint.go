package dispatch

import (
	"strings"

	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
)

// EndpointURL builds the autoscaler inputs URL for a.
// Values are concatenated verbatim; the alerting engine is trusted to
// supply URL-safe text.
func EndpointURL(a *alert.Alert) string {
	var b strings.Builder

	b.WriteString(a.Endpoint)
	b.WriteString("/")
	b.WriteString(string(a.EventType))
	b.WriteString("?source=")
	b.WriteString(a.Source)
	b.WriteString("&resource_name=")
	b.WriteString(a.ResourceName)

	if a.DesiredStateName != "" {
		b.WriteString("&desired-state-name=")
		b.WriteString(a.DesiredStateName)
	}

	return b.String()
}
