package sysprompt

import "embed"

//go:embed templates/*
var TemplateFS embed.FS

const (
	// SystemTemplate renders the full per-round system message.
	SystemTemplate = "templates/system.tmpl"

	// DefaultBasePrompt is used when no base instructions are configured.
	DefaultBasePrompt = "You are a helpful AI assistant with access to skills."
)
