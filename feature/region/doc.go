// Package region holds one adapter per regional game server.
//
// Each region is described by an immutable Settings value (host, default version,
// step, bound, resource path tokens, conversion codec). Adapters combine the
// settings with a search strategy:
//
//   - JP, EN, TH probe linearly from the stored version.
//   - TW narrows a zero-padded version digit by digit.
//   - KR looks up its CDN address first and only probes when it changed.
//   - CN reads its version from the maintenance status endpoint.
//
// Locate resolves the master database bundle of a stored state by walking
// manifest_assetmanifest to the masterdata entry and reading its hash. CN uses
// a mirror instead.
package region
