package dispatch

import (
	"github.com/ab0utbla-k/zabbix-autoscaler-webhook/internal/alert"
)

const (
	titleLimit       = 256
	descriptionLimit = 2048
	fieldValueLimit  = 1024
	footerLimit      = 2048
)

// Message is the JSON body posted to the webhook.
type Message struct {
	Embeds []Embed `json:"embeds"`
}

// Embed is a rich message block.
type Embed struct {
	Color       int     `json:"color"`
	URL         string  `json:"url,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      *Footer `json:"footer,omitempty"`
}

// Field is a named entry within an Embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Footer is the trailing text of an Embed.
type Footer struct {
	Text string `json:"text"`
}

// BuildMessage formats a into the single-embed webhook body.
func BuildMessage(a *alert.Alert) *Message {
	embed := Embed{
		Color: a.Severity.Color(),
		URL:   eventURL(a),
	}

	if a.UseDefaultMessage || !a.IsTrigger() {
		embed.Title = alert.Truncate(a.AlertSubject, titleLimit)
		embed.Description = alert.Truncate(a.AlertMessage, descriptionLimit)
	} else {
		buildTriggerEmbed(&embed, a)
	}

	return &Message{Embeds: []Embed{embed}}
}

func buildTriggerEmbed(embed *Embed, a *alert.Alert) {
	embed.Fields = append(embed.Fields, Field{
		Name:  "Host",
		Value: a.HostName + " [" + a.HostIP + "]",
	})

	switch {
	case a.IsResolved():
		embed.Title = alert.Truncate("OK: "+a.EventName, titleLimit)
		embed.Fields = append(embed.Fields, Field{
			Name:   "Recovery time",
			Value:  a.RecoveryTime + " " + a.RecoveryDate,
			Inline: true,
		})
	case a.IsProblem():
		embed.Title = alert.Truncate("PROBLEM: "+a.EventName, titleLimit)
		embed.Fields = append(embed.Fields, Field{
			Name:   "Event time",
			Value:  a.EventTime + " " + a.EventDate,
			Inline: true,
		})
	case a.IsUpdate():
		embed.Title = alert.Truncate("UPDATE: "+a.EventName, titleLimit)

		description := a.UpdateUser + " " + a.UpdateAction + "."
		if a.UpdateMessage != "" {
			description += " Comment:\n>>> " + a.UpdateMessage
		}
		embed.Description = alert.Truncate(description, descriptionLimit)

		embed.Fields = append(embed.Fields, Field{
			Name:   "Event update time",
			Value:  a.UpdateTime + " " + a.UpdateDate,
			Inline: true,
		})
	}

	embed.Fields = append(embed.Fields, Field{
		Name:   "Severity",
		Value:  a.EventSeverity,
		Inline: true,
	})

	if a.OpData != "" {
		embed.Fields = append(embed.Fields, Field{
			Name:   "Operational data",
			Value:  alert.Truncate(a.OpData, fieldValueLimit),
			Inline: true,
		})
	}

	if a.IsProblem() && a.TriggerDescription != "" {
		embed.Fields = append(embed.Fields, Field{
			Name:  "Trigger description",
			Value: alert.Truncate(a.TriggerDescription, fieldValueLimit),
		})
	}

	footer := "Event ID: " + a.EventID
	if a.Tags != "" {
		footer += "\nEvent tags: " + a.Tags
	}
	embed.Footer = &Footer{Text: alert.Truncate(footer, footerLimit)}
}

func eventURL(a *alert.Alert) string {
	if !a.IsTrigger() {
		return a.ZabbixURL
	}
	return a.ZabbixURL + "/tr_events.php?triggerid=" + a.TriggerID + "&eventid=" + a.EventID
}
