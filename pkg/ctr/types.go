package ctr

import (
	"time"

	"github.com/fivetwenty-io/threatresponse/internal/constants"
)

// Observable is a typed value such as an IP address, domain or file hash.
type Observable struct {
	Type  string `json:"type"  yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Entity is an intel entity document. Entities are schema-rich and are
// exchanged as generic JSON objects.
type Entity map[string]interface{}

// ID returns the entity's "id" field.
func (e Entity) ID() string {
	id, _ := e["id"].(string)

	return id
}

// ErrorDetail describes one module failure in an enrichment response.
type ErrorDetail struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Type    string `json:"type"    yaml:"type"`
	Module  string `json:"module"  yaml:"module"`
}

// ModuleResult is the contribution of one integration module to an
// enrichment response.
type ModuleResult struct {
	Module           string                 `json:"module"             yaml:"module"`
	ModuleInstanceID string                 `json:"module_instance_id" yaml:"module_instance_id"`
	ModuleTypeID     string                 `json:"module_type_id"     yaml:"module_type_id"`
	Data             map[string]interface{} `json:"data"               yaml:"data"`
}

// EnrichResponse is returned by the observe and deliberate endpoints.
type EnrichResponse struct {
	Data   []ModuleResult `json:"data"             yaml:"data"`
	Errors []ErrorDetail  `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ReferLink is a pivot link into a module's own console.
type ReferLink struct {
	Module      string   `json:"module"      yaml:"module"`
	ID          string   `json:"id"          yaml:"id"`
	Title       string   `json:"title"       yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Categories  []string `json:"categories"  yaml:"categories"`
	URL         string   `json:"url"         yaml:"url"`
}

// ReferResponse is returned by the refer endpoint.
type ReferResponse struct {
	Data   []ReferLink   `json:"data"             yaml:"data"`
	Errors []ErrorDetail `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// ResponseAction is an action a response module offers for an observable.
type ResponseAction struct {
	ID         string            `json:"id"           yaml:"id"`
	Title      string            `json:"title"        yaml:"title"`
	Module     string            `json:"module"       yaml:"module"`
	ModuleType string            `json:"module-type"  yaml:"module-type"`
	Query      map[string]string `json:"query-params" yaml:"query-params"`
}

// ActionsResponse is returned by the respond/observables endpoint.
type ActionsResponse struct {
	Data   []ResponseAction `json:"data"             yaml:"data"`
	Errors []ErrorDetail    `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// TriggerResult is returned by the respond/trigger endpoint.
type TriggerResult struct {
	Data map[string]interface{} `json:"data" yaml:"data"`
}

// Verdict is the disposition one module reached for one observable.
type Verdict struct {
	Module          string     `json:"module"           yaml:"module"`
	ObservableType  string     `json:"observable_type"  yaml:"observable_type"`
	ObservableValue string     `json:"observable_value" yaml:"observable_value"`
	Disposition     int        `json:"disposition"      yaml:"disposition"`
	DispositionName string     `json:"disposition_name" yaml:"disposition_name"`
	JudgementID     string     `json:"judgement_id"     yaml:"judgement_id"`
	ValidUntil      *time.Time `json:"valid_until"      yaml:"valid_until"`
}

// VerdictResult is returned by the verdict command.
type VerdictResult struct {
	Verdicts []Verdict     `json:"verdicts"         yaml:"verdicts"`
	Errors   []ErrorDetail `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Target is an asset on which a module observed sightings.
type Target struct {
	Type        string       `json:"type"         yaml:"type"`
	Observables []Observable `json:"observables"  yaml:"observables"`
	OS          string       `json:"os,omitempty" yaml:"os,omitempty"`
}

// ModuleTargets groups the targets reported by one module.
type ModuleTargets struct {
	Module  string   `json:"module"  yaml:"module"`
	Targets []Target `json:"targets" yaml:"targets"`
}

// TargetsResult is returned by the targets command.
type TargetsResult struct {
	Modules []ModuleTargets `json:"modules"          yaml:"modules"`
	Errors  []ErrorDetail   `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Profile is the authenticated caller's identity.
type Profile struct {
	Name    string   `json:"user-name"  yaml:"user-name"`
	Email   string   `json:"user-email" yaml:"user-email"`
	OrgID   string   `json:"org-id"     yaml:"org-id"`
	OrgName string   `json:"org-name"   yaml:"org-name"`
	Scopes  []string `json:"scopes"     yaml:"scopes"`
}

// DispositionName returns the name of a disposition number.
func DispositionName(disposition int) string {
	if name, ok := constants.DispositionNames[disposition]; ok {
		return name
	}

	return constants.DispositionNames[constants.DispositionUnknown]
}
