// Package alert parses and validates the parameters Zabbix hands to the
// autoscaler webhook media type.
package alert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Parameter names understood by the webhook.
const (
	ParamEndpoint           = "autoscaler_endpoint"
	ParamEventType          = "autoscaler_event_type"
	ParamSource             = "autoscaler_source"
	ParamResourceName       = "autoscaler_resource_name"
	ParamDesiredStateName   = "autoscaler_desired_state_name"
	ParamZabbixURL          = "zabbix_url"
	ParamUseDefaultMessage  = "use_default_message"
	ParamAlertSubject       = "alert_subject"
	ParamAlertMessage       = "alert_message"
	ParamEventSource        = "event_source"
	ParamEventValue         = "event_value"
	ParamEventUpdateStatus  = "event_update_status"
	ParamEventNSeverity     = "event_nseverity"
	ParamEventSeverity      = "event_severity"
	ParamEventID            = "event_id"
	ParamEventName          = "event_name"
	ParamEventOpData        = "event_opdata"
	ParamEventTags          = "event_tags"
	ParamEventTime          = "event_time"
	ParamEventDate          = "event_date"
	ParamEventRecoveryTime  = "event_recovery_time"
	ParamEventRecoveryDate  = "event_recovery_date"
	ParamEventUpdateUser    = "event_update_user"
	ParamEventUpdateAction  = "event_update_action"
	ParamEventUpdateMessage = "event_update_message"
	ParamEventUpdateTime    = "event_update_time"
	ParamEventUpdateDate    = "event_update_date"
	ParamHostName           = "host_name"
	ParamHostIP             = "host_ip"
	ParamTriggerID          = "trigger_id"
	ParamTriggerDescription = "trigger_description"
	ParamHTTPProxy          = "HTTPProxy"
)

// Params is the flat name/value mapping supplied by the alerting engine.
type Params map[string]string

// ParseParams decodes a single JSON object into Params.
// Numbers and booleans are kept in their textual form; null, arrays and
// objects are rejected.
func ParseParams(data []byte) (Params, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("cannot parse parameters: %w", errors.Join(ErrMalformedParameters, err))
	}
	if raw == nil {
		return nil, fmt.Errorf("cannot parse parameters: %w: expected a JSON object", ErrMalformedParameters)
	}

	params := make(Params, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			params[k] = val
		case json.Number:
			params[k] = val.String()
		case bool:
			params[k] = fmt.Sprint(val)
		default:
			return nil, fmt.Errorf("cannot parse parameters: %w: %q must be a string, got %T", ErrMalformedParameters, k, v)
		}
	}

	return params, nil
}

// Get returns the value of name, or an empty string when it is absent.
func (p Params) Get(name string) string {
	return p[name]
}
