// Package services implements the core use cases behind the driving
// ports: fetching reference sources, running the organelle taxonomy
// supplementer and driving the downstream external-tool steps.
//
// Services depend only on domain types and driven-port interfaces;
// adapters are injected at wiring time.
package services
