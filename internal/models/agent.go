package models

// * AgentEvent is the action-group invocation sent by a Bedrock agent
type AgentEvent struct {
	MessageVersion          string            `json:"messageVersion"`
	Agent                   AgentInfo         `json:"agent"`
	InputText               string            `json:"inputText,omitempty"`
	SessionID               string            `json:"sessionId,omitempty"`
	ActionGroup             string            `json:"actionGroup"`
	APIPath                 string            `json:"apiPath"`
	HTTPMethod              string            `json:"httpMethod"`
	Parameters              []AgentParameter  `json:"parameters,omitempty"`
	SessionAttributes       map[string]string `json:"sessionAttributes,omitempty"`
	PromptSessionAttributes map[string]string `json:"promptSessionAttributes,omitempty"`
}

type AgentInfo struct {
	Name    string `json:"name"`
	ID      string `json:"id"`
	Alias   string `json:"alias"`
	Version string `json:"version"`
}

type AgentParameter struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// * Param returns the named parameter value, if present
func (e AgentEvent) Param(name string) (string, bool) {
	for _, p := range e.Parameters {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

type AgentResponse struct {
	MessageVersion string              `json:"messageVersion"`
	Response       AgentActionResponse `json:"response"`
}

type AgentActionResponse struct {
	ActionGroup    string                  `json:"actionGroup"`
	APIPath        string                  `json:"apiPath"`
	HTTPMethod     string                  `json:"httpMethod"`
	HTTPStatusCode int                     `json:"httpStatusCode"`
	ResponseBody   map[string]AgentContent `json:"responseBody"`
}

type AgentContent struct {
	Body string `json:"body"`
}

const AgentContentType = "application/json"
