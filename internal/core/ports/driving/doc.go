// Package driving defines the interfaces the CLI adapter calls into the
// core: fetching references, building the organelle-extended database
// and driving the downstream external-tool steps.
package driving
