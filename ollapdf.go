// Package ollapdf provides a local PDF question-answering assistant.
// It indexes a folder of PDF files into a SQLite store with embedded
// vectors and answers natural language questions by combining retrieved
// passages with a locally hosted LLM backend. Concurrent questions are
// serialized through a bounded FIFO request queue because the backend
// can only efficiently serve one generation at a time.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, ollama/, pdf/).
package ollapdf
