// Package driven defines the interfaces the core requires from
// infrastructure (driven adapters): persistence, reference fetching,
// archive extraction and external tool execution.
//
// Implementations live under internal/adapters/driven and
// internal/connectors. The core services depend only on these
// interfaces, never on concrete adapters.
package driven
