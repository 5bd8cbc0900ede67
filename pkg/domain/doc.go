/*
Package domain contains the core models of the Marquee chunking engine.

It defines the layout parameters, the word stream fed to the chunker, the
chunks themselves and the rotation state exposed to a display. This package is
kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Layout: Width, lines per chunk, indent and rotation interval.
  - Token: A word or an explicit paragraph break in the word stream.
  - Chunk: A block of indented, wrapped lines shown together on a display.
  - RotationState: A snapshot of the rotator (chunks, index, phase).
  - Submission / View: The request and response of the settings form.
*/
package domain
