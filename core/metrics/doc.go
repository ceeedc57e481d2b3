// Package metrics exposes per-run Prometheus collectors.
//
// The monitor is run-to-completion, so nothing is scraped. Instead every command
// builds a private registry, instruments the probers it hands to region adapters,
// and pushes the registry to a Prometheus Pushgateway when one is configured.
//
//	m := metrics.New()
//	p := m.Instrument(client, "JP")
//	...
//	_ = m.Push(ctx, cfg.Metrics)
package metrics
