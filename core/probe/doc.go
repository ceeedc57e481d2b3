// Package probe issues the single idempotent requests used to discover versions and
// fetch manifests and asset bundles.
//
// A Prober reports the status code of one GET or POST and, when asked, the body.
// It does not retry. A transport failure is returned as an error and callers decide
// whether that is a miss (version search) or a failed prerequisite (CDN lookup,
// maintenance status).
//
// # Targets
//
// Requests are described by a Request holding scheme, host, path, method and headers,
// mirroring how the regional backends are addressed: fixed hostnames and templated paths.
//
// # Usage
//
//	client := probe.NewClient(cfg.Probe)
//	res, err := client.Probe(ctx, probe.Get("http", host, path))
//	if err == nil && res.OK() {
//	    // version exists
//	}
package probe
