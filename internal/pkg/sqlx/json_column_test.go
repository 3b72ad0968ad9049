package sqlx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attempt struct {
	Channel string `json:"channel"`
	Status  string `json:"status"`
}

func TestJSONColumn_Value(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		col     JSONColumn[[]attempt]
		wantVal any
	}{
		{
			name:    "无效值写入 NULL",
			col:     JSONColumn[[]attempt]{},
			wantVal: nil,
		},
		{
			name:    "切片",
			col:     NewJSONColumn([]attempt{{Channel: "sms", Status: "sent"}}),
			wantVal: `[{"channel":"sms","status":"sent"}]`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			val, err := tc.col.Value()
			require.NoError(t, err)
			assert.Equal(t, tc.wantVal, val)
		})
	}
}

func TestJSONColumn_Scan(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     any
		want    JSONColumn[map[string]int64]
		wantErr bool
	}{
		{
			name: "nil",
			src:  nil,
			want: JSONColumn[map[string]int64]{},
		},
		{
			name: "bytes",
			src:  []byte(`{"sms":3}`),
			want: NewJSONColumn(map[string]int64{"sms": 3}),
		},
		{
			name: "string",
			src:  `{"email":1}`,
			want: NewJSONColumn(map[string]int64{"email": 1}),
		},
		{
			name:    "不支持的类型",
			src:     12,
			wantErr: true,
		},
		{
			name:    "非法 JSON",
			src:     `{`,
			wantErr: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var col JSONColumn[map[string]int64]
			err := col.Scan(tc.src)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, col)
		})
	}
}
