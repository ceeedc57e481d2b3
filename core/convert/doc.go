// Package convert turns a downloaded raw asset bundle into a usable database file.
//
// Each region ships its master database differently:
//   - Brotli: a brotli compressed SQLite file (CN mirror).
//   - Exec: an external program is run with the raw and output paths, used for the
//     proprietary decryptor (JP) and the Unity bundle deserializer (EN, KR, TH, TW).
//   - Passthrough: the bundle already is the database.
//
// Converters never touch the version documents. A failure is reported as an error
// wrapping ErrConversion and only fails the region being converted.
package convert
