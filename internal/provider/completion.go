// Package provider holds what every text-completion backend shares: the
// mentor persona and the way a prompt and its context are framed.
package provider

import "fmt"

// Persona is the system instruction sent with every completion.
const Persona = "You are a helpful AI mentor at the Design Maker Lab. You help students understand lesson plans, " +
	"provide career advice in design/engineering, and explain technical concepts simply. " +
	"Keep responses concise and inspiring."

// DefaultTemperature is the sampling temperature used when none is configured.
const DefaultTemperature = 0.7

// Contents frames a user prompt with lab context the way every backend
// receives it.
func Contents(prompt, context string) string {
	return fmt.Sprintf("Context about Design Maker Lab: %s\n\nUser Question: %s", context, prompt)
}
