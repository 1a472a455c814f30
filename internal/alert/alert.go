package alert

import (
	"strconv"
	"strings"
)

// EventType selects the autoscaler webhook path.
type EventType string

const (
	EventTypeUp   EventType = "up"
	EventTypeDown EventType = "down"
)

// EventSource is the Zabbix {EVENT.SOURCE} value.
type EventSource int

const (
	SourceTrigger EventSource = iota
	SourceDiscovery
	SourceAutoregistration
	SourceInternal
)

const defaultName = "default"

// Alert is a validated set of parameters. Values are only ever produced by
// Validate, so builders may rely on every enumerated field being in range.
type Alert struct {
	Endpoint         string
	EventType        EventType
	Source           string
	ResourceName     string
	DesiredStateName string

	ZabbixURL         string
	EventSource       EventSource
	EventValue        string
	UpdateStatus      string
	Severity          Severity
	UseDefaultMessage bool

	AlertSubject string
	AlertMessage string

	EventID            string
	EventName          string
	EventSeverity      string
	OpData             string
	Tags               string
	EventTime          string
	EventDate          string
	RecoveryTime       string
	RecoveryDate       string
	UpdateUser         string
	UpdateAction       string
	UpdateMessage      string
	UpdateTime         string
	UpdateDate         string
	HostName           string
	HostIP             string
	TriggerID          string
	TriggerDescription string

	HTTPProxy string
}

// Validate checks p and returns the Alert it describes. The first failing
// check aborts validation; the error wraps ErrMissingParameter or
// ErrInvalidParameter.
func Validate(p Params) (*Alert, error) {
	a := &Alert{
		Endpoint:           strings.TrimSuffix(p.Get(ParamEndpoint), "/"),
		EventType:          EventType(p.Get(ParamEventType)),
		Source:             orDefault(p.Get(ParamSource)),
		ResourceName:       orDefault(p.Get(ParamResourceName)),
		DesiredStateName:   p.Get(ParamDesiredStateName),
		ZabbixURL:          strings.TrimSuffix(p.Get(ParamZabbixURL), "/"),
		EventValue:         p.Get(ParamEventValue),
		UpdateStatus:       p.Get(ParamEventUpdateStatus),
		UseDefaultMessage:  strings.EqualFold(p.Get(ParamUseDefaultMessage), "true"),
		AlertSubject:       p.Get(ParamAlertSubject),
		AlertMessage:       p.Get(ParamAlertMessage),
		EventID:            p.Get(ParamEventID),
		EventName:          p.Get(ParamEventName),
		EventSeverity:      p.Get(ParamEventSeverity),
		OpData:             p.Get(ParamEventOpData),
		Tags:               p.Get(ParamEventTags),
		EventTime:          p.Get(ParamEventTime),
		EventDate:          p.Get(ParamEventDate),
		RecoveryTime:       p.Get(ParamEventRecoveryTime),
		RecoveryDate:       p.Get(ParamEventRecoveryDate),
		UpdateUser:         p.Get(ParamEventUpdateUser),
		UpdateAction:       p.Get(ParamEventUpdateAction),
		UpdateMessage:      p.Get(ParamEventUpdateMessage),
		UpdateTime:         p.Get(ParamEventUpdateTime),
		UpdateDate:         p.Get(ParamEventUpdateDate),
		HostName:           p.Get(ParamHostName),
		HostIP:             p.Get(ParamHostIP),
		TriggerID:          p.Get(ParamTriggerID),
		TriggerDescription: p.Get(ParamTriggerDescription),
		HTTPProxy:          strings.TrimSpace(p.Get(ParamHTTPProxy)),
	}

	if p.Get(ParamEndpoint) == "" {
		return nil, missing(ParamEndpoint)
	}

	if a.EventType != EventTypeUp && a.EventType != EventTypeDown {
		return nil, invalid(ParamEventType, string(a.EventType), `"up" or "down"`)
	}

	if p.Get(ParamZabbixURL) == "" {
		return nil, missing(ParamZabbixURL)
	}

	rawSource := p.Get(ParamEventSource)
	source, err := strconv.Atoi(strings.TrimSpace(rawSource))
	if err != nil || source < int(SourceTrigger) || source > int(SourceInternal) {
		return nil, invalid(ParamEventSource, rawSource, "0-3")
	}
	a.EventSource = EventSource(source)

	rawSeverity := p.Get(ParamEventNSeverity)
	// Only trigger events carry a meaningful layout choice and severity.
	if a.EventSource != SourceTrigger {
		a.UseDefaultMessage = true
		rawSeverity = "0"
	}

	if (a.EventSource == SourceTrigger || a.EventSource == SourceInternal) && !isBinary(a.EventValue) {
		return nil, invalid(ParamEventValue, a.EventValue, "0 or 1")
	}

	if a.EventSource == SourceTrigger && !isBinary(a.UpdateStatus) {
		return nil, invalid(ParamEventUpdateStatus, a.UpdateStatus, "0 or 1")
	}

	if a.EventID == "" {
		return nil, missing(ParamEventID)
	}

	if a.EventValue == "0" {
		rawSeverity = strconv.Itoa(int(SeverityResolved))
	}

	severity, err := strconv.Atoi(rawSeverity)
	if err != nil || !Severity(severity).Valid() {
		return nil, invalid(ParamEventNSeverity, rawSeverity, "0-5")
	}
	a.Severity = Severity(severity)

	return a, nil
}

// IsTrigger reports whether the alert originates from a trigger.
func (a *Alert) IsTrigger() bool {
	return a.EventSource == SourceTrigger
}

// IsResolved reports a trigger recovery that is not an acknowledgement update.
func (a *Alert) IsResolved() bool {
	return a.EventValue == "0" && a.UpdateStatus == "0"
}

// IsProblem reports a new trigger problem that is not an acknowledgement update.
func (a *Alert) IsProblem() bool {
	return a.EventValue == "1" && a.UpdateStatus == "0"
}

// IsUpdate reports a problem update such as an acknowledgement or comment.
func (a *Alert) IsUpdate() bool {
	return a.UpdateStatus == "1"
}

func isBinary(s string) bool {
	return s == "0" || s == "1"
}

func orDefault(s string) string {
	if s == "" {
		return defaultName
	}
	return s
}
