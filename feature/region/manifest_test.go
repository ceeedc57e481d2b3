package region_test

import (
	"testing"

	"masterdata-monitor/feature/region"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHash(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"SecondField", "foo,aaa\nmasterdata,deadbeef,every\nbar,ccc", "deadbeef", false},
		{"SentinelShift", "a/masterdata_master.cdb,every,0f1e2d3c\n", "0f1e2d3c", false},
		{"FirstMatchWins", "a/masterdata_a,11aa,1\na/masterdata_b,22bb,1", "11aa", false},
		{"CRLF", "foo,aaa\r\nmasterdata,cafe\r\n", "cafe", false},
		{"NoMasterdata", "foo,aaa\nbar,bbb", "", true},
		{"NoHashField", "masterdata", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := region.ExtractHash(tt.body)
			if tt.wantErr {
				assert.ErrorIs(t, err, region.ErrManifest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAssetPath(t *testing.T) {
	body := "a/all_assetmanifest,111,group,1\nmanifest/masterdata_assetmanifest,222,group,2\n"
	got, err := region.FindAssetPath(body)
	require.NoError(t, err)
	assert.Equal(t, "manifest/masterdata_assetmanifest", got)

	_, err = region.FindAssetPath("a/sound,1\n")
	assert.ErrorIs(t, err, region.ErrManifest)
}
