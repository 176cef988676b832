// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Connector: Enumerates and reads corpus files
//   - ConnectorFactory: Creates a connector for a corpus root
//   - Normaliser: Turns raw bytes into a Document
//   - PostProcessor: Cuts a Document into Chunks
//   - IndexStore: Snapshot persistence
//   - ConfigStore: Application settings
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Answers questions. Without it, ask is unavailable.
//   - PromptStore: Customisable prompts. Without it, built-in prompts are used.
//   - Stemmer: Term stemming. Without it, terms are matched verbatim.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
