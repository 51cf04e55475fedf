package gcs

import "fmt"

// CollectionID is fixed for Agentspace engines.
const CollectionID = "default_collection"

// DefaultAssistantID is the assistant used when the caller names none.
const DefaultAssistantID = "default_assistant"

// ValidLocation reports whether location is a supported multi-region.
func ValidLocation(location string) bool {
	switch location {
	case "us", "eu", "global":
		return true
	}
	return false
}

// BaseURL returns the regional Discovery Engine endpoint. The global location
// uses the bare host, regional locations are prefixed.
func BaseURL(location string) string {
	if location == "global" {
		return "https://discoveryengine.googleapis.com"
	}
	return fmt.Sprintf("https://%s-discoveryengine.googleapis.com", location)
}

// CollectionPath returns the default collection resource name.
func CollectionPath(project, location string) string {
	return fmt.Sprintf("projects/%s/locations/%s/collections/%s", project, location, CollectionID)
}

// EnginePath returns an engine resource name.
func EnginePath(project, location, engineID string) string {
	return CollectionPath(project, location) + "/engines/" + engineID
}

// ServingConfigPath returns the default search serving config of an engine.
func ServingConfigPath(project, location, engineID string) string {
	return EnginePath(project, location, engineID) + "/servingConfigs/default_search"
}

// AssistantPath returns an assistant resource name.
func AssistantPath(project, location, engineID, assistantID string) string {
	return EnginePath(project, location, engineID) + "/assistants/" + assistantID
}

// AgentPath returns an agent resource name within an assistant.
func AgentPath(project, location, engineID, assistantID, agentName string) string {
	return AssistantPath(project, location, engineID, assistantID) + "/agents/" + agentName
}

// SessionPath returns a session resource name. Pass "-" for a new session.
func SessionPath(project, location, engineID, sessionID string) string {
	return EnginePath(project, location, engineID) + "/sessions/" + sessionID
}

// ConversationPath returns a conversation resource name scoped to a data store.
func ConversationPath(project, location, engineID, conversationID string) string {
	return fmt.Sprintf("%s/dataStores/%s/conversations/%s", CollectionPath(project, location), engineID, conversationID)
}

// DataStorePath returns a data store resource name.
func DataStorePath(project, location, dataStoreID string) string {
	return CollectionPath(project, location) + "/dataStores/" + dataStoreID
}

// NotebookURL returns the browser URL for a notebook. Google identity tenants
// use the .com domain, third-party identity the bare one.
func NotebookURL(project, location, notebookID string, useGoogleIdentity bool) string {
	domain := "notebooklm.cloud.google"
	if useGoogleIdentity {
		domain = "notebooklm.cloud.google.com"
	}
	return fmt.Sprintf("https://%s/%s/notebook/%s?project=%s", domain, location, notebookID, project)
}
