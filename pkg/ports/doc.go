/*
Package ports defines the driven ports (interfaces) for the Marquee engine.

These interfaces decouple the chunking core from external implementations,
allowing the engine to persist its settings and text in various backends and
to render the current chunk on any display surface.

# Key Interfaces

  - SettingsStore: Loads and saves the layout record (width, lines, interval, indent).
  - TextStore: Loads and saves the source text blob.
  - Display: Accepts the current chunk for a named slot.
  - Engine: The operations exposed to transport adapters (HTTP, MCP).
*/
package ports
