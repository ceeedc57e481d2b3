package region

import (
	"fmt"
	"strings"
)

const masterdataToken = "masterdata"

// masterdataLine returns the first line mentioning masterdata, split by comma.
func masterdataLine(body string) ([]string, bool) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.Contains(line, masterdataToken) {
			return strings.Split(line, ","), true
		}
	}
	return nil, false
}

// FindAssetPath returns the asset path of the master database listed in a
// manifest_assetmanifest body.
func FindAssetPath(body string) (string, error) {
	fields, ok := masterdataLine(body)
	if !ok || fields[0] == "" {
		return "", fmt.Errorf("no masterdata entry: %w", ErrManifest)
	}
	return fields[0], nil
}

// ExtractHash returns the content hash of the masterdata entry. The hash is the
// second field, or the third when the second is a non-hash token and the third
// is a hash.
func ExtractHash(body string) (string, error) {
	fields, ok := masterdataLine(body)
	if !ok || len(fields) < 2 {
		return "", fmt.Errorf("no masterdata hash: %w", ErrManifest)
	}

	hash := fields[1]
	if !isHash(hash) && len(fields) > 2 && isHash(fields[2]) {
		hash = fields[2]
	}
	if hash == "" {
		return "", fmt.Errorf("empty masterdata hash: %w", ErrManifest)
	}
	return hash, nil
}

func isHash(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// poolPath returns the pool path of a bundle hash.
func poolPath(prefix, hash string) (string, error) {
	if len(hash) < 2 {
		return "", fmt.Errorf("hash %q too short: %w", hash, ErrManifest)
	}
	return fmt.Sprintf("%s/dl/pool/AssetBundles/%s/%s", prefix, hash[:2], hash), nil
}
