package region

import (
	"fmt"

	"masterdata-monitor/core/convert"
)

const (
	defaultStep   = 10
	defaultLocale = "Jpn"
	platformIOS   = "iOS"

	manifestFile   = "manifest/manifest_assetmanifest"
	masterdataFile = "manifest/masterdata_assetmanifest"
)

// Lookup endpoints.
const (
	cnMaintenanceURL = "https://le1-prod-all-gs-gzlj.bilibiligame.net/source_ini/get_maintenance_status?format=json"
	cnResKey         = "ab00a0a6dd915a052a2ef7fd649083e5"
	cnMirrorVersion  = "https://redive.estertion.win/last_version_cn.json"
	cnMirrorDatabase = "https://redive.estertion.win/db/redive_cn.db.br"

	krInfodeskURL = "https://infodesk-zinny3.game.kakao.com/v2/app?appId=235375&appVer=2.0.11&market=googlePlay&sdkVer=3.10.2&os=android&lang=ko&osVer=6.0.1&country=kr"
	krHost        = "patch.pcr.kakaogame.com"
)

var table = map[string]Settings{
	CN: {
		Code:           CN,
		Scheme:         "https",
		DefaultVersion: -1,
		Kind:           KindLookup,
		Codec:          convert.CodecBrotli,
		RawExt:         ".db.br",
		UsesCDN:        true,
	},
	EN: {
		Code:           EN,
		Scheme:         "http",
		Host:           "assets-priconne-redive-us.akamaized.net",
		Locale:         defaultLocale,
		Platform:       platformIOS,
		ProbeFile:      masterdataFile,
		DefaultVersion: 10000000,
		Step:           defaultStep,
		MaxTries:       20,
		Kind:           KindLinear,
		Codec:          convert.CodecUnity,
		RawExt:         ".unity3d",
		Retired:        true,
		HashOnly:       true,
	},
	JP: {
		Code:           JP,
		Scheme:         "http",
		Host:           "prd-priconne-redive.akamaized.net",
		Locale:         defaultLocale,
		Platform:       platformIOS,
		ProbeFile:      masterdataFile,
		DefaultVersion: 10010800,
		Step:           defaultStep,
		MaxTries:       20,
		Kind:           KindLinear,
		Codec:          convert.CodecConeshell,
		RawExt:         ".cdb",
	},
	KR: {
		Code:           KR,
		Scheme:         "https",
		Host:           krHost,
		Locale:         "Kor",
		Platform:       platformIOS,
		ProbeFile:      manifestFile,
		DefaultVersion: 10000000,
		Step:           defaultStep,
		MaxTries:       1000,
		LogEvery:       1000,
		Kind:           KindLinear,
		Codec:          convert.CodecUnity,
		RawExt:         ".unity3d",
		UsesCDN:        true,
	},
	TH: {
		Code:           TH,
		Scheme:         "https",
		Host:           "patch.i3play.com",
		PathPrefix:     "/PCC/Live",
		Locale:         "Tha",
		Platform:       platformIOS,
		ProbeFile:      manifestFile,
		DefaultVersion: 10026400,
		Step:           defaultStep,
		MaxTries:       200,
		LogEvery:       500,
		Kind:           KindLinear,
		Codec:          convert.CodecUnity,
		RawExt:         ".unity3d",
		Retired:        true,
	},
	TW: {
		Code:           TW,
		Scheme:         "https",
		Host:           "img-pc.so-net.tw",
		Locale:         defaultLocale,
		Platform:       platformIOS,
		ProbeFile:      manifestFile,
		DefaultVersion: 0,
		VersionWidth:   8,
		Kind:           KindDigit,
		Codec:          convert.CodecUnity,
		RawExt:         ".unity3d",
	},
}

// Lookup returns the settings of a region.
func Lookup(code string) (Settings, error) {
	s, ok := table[code]
	if !ok {
		return Settings{}, fmt.Errorf("%s: %w", code, ErrUnknownRegion)
	}
	return s, nil
}
